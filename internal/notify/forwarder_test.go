package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/agristack/farmdash/internal/domain"
)

type capturePublisher struct {
	events []domain.Event
	err    error
}

func (p *capturePublisher) Publish(ctx context.Context, companyID int64, event domain.Event) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

type captureInvalidator struct {
	calls int
	err   error
}

func (c *captureInvalidator) InvalidateAll(ctx context.Context, companyID int64) error {
	c.calls++
	return c.err
}

func int64ptr(v int64) *int64 { return &v }

func TestProjectCreatedEmitsEventPair(t *testing.T) {
	pub := &capturePublisher{}
	inv := &captureInvalidator{}
	fwd := NewForwarder(pub, inv)

	fwd.ProjectCreated(context.Background(), &domain.Project{ID: 5, Name: "Corn North", State: domain.StateDraft, CompanyID: 2})

	if len(pub.events) != 2 {
		t.Fatalf("got %d events, want 2", len(pub.events))
	}
	if pub.events[0].Type != domain.EventProjectCreated {
		t.Errorf("first event = %q, want project_created", pub.events[0].Type)
	}
	if pub.events[1].Type != domain.EventInvalidateCache {
		t.Errorf("second event = %q, want invalidate_cache", pub.events[1].Type)
	}
	if inv.calls != 1 {
		t.Errorf("cache invalidated %d times, want 1", inv.calls)
	}
}

func TestPublishFailureDoesNotPanic(t *testing.T) {
	pub := &capturePublisher{err: errors.New("redis down")}
	fwd := NewForwarder(pub, &captureInvalidator{err: errors.New("redis down")})

	// Must not panic or surface the error.
	fwd.ProjectDeleted(context.Background(), 5, 2)
}

func TestStockMoveFiltering(t *testing.T) {
	tests := []struct {
		name string
		move domain.StockMove
		want int
	}{
		{"report-linked move forwarded", domain.StockMove{ID: 1, DailyReportID: int64ptr(3), CompanyID: 1}, 2},
		{"farm origin forwarded", domain.StockMove{ID: 2, Origin: "Farm West transfer", CompanyID: 1}, 2},
		{"unrelated move dropped", domain.StockMove{ID: 3, Origin: "WH/OUT/0042", CompanyID: 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &capturePublisher{}
			fwd := NewForwarder(pub, nil)

			fwd.StockMoveValidated(context.Background(), &tt.move)

			if len(pub.events) != tt.want {
				t.Errorf("got %d events, want %d", len(pub.events), tt.want)
			}
		})
	}
}

func TestAnalyticLineFiltering(t *testing.T) {
	pub := &capturePublisher{}
	fwd := NewForwarder(pub, nil)

	fwd.AnalyticLineCreated(context.Background(), &domain.AnalyticLine{ID: 1, CompanyID: 1})
	if len(pub.events) != 0 {
		t.Fatalf("unlinked line forwarded %d events", len(pub.events))
	}

	fwd.AnalyticLineCreated(context.Background(), &domain.AnalyticLine{ID: 2, DailyReportID: int64ptr(7), CompanyID: 1})
	if len(pub.events) != 2 {
		t.Fatalf("linked line forwarded %d events, want 2", len(pub.events))
	}
}

func TestTaskStageFiltering(t *testing.T) {
	pub := &capturePublisher{}
	fwd := NewForwarder(pub, nil)

	fwd.TaskStageChanged(context.Background(), &domain.ProjectTask{ID: 1, ProjectName: "Website Redesign", CompanyID: 1})
	if len(pub.events) != 0 {
		t.Fatalf("non-farm task forwarded %d events", len(pub.events))
	}

	fwd.TaskStageChanged(context.Background(), &domain.ProjectTask{ID: 2, ProjectName: "Cultivation Season 2026", CompanyID: 1})
	if len(pub.events) != 2 {
		t.Fatalf("farm task forwarded %d events, want 2", len(pub.events))
	}
}
