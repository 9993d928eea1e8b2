package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agristack/farmdash/internal/domain"
	"github.com/agristack/farmdash/internal/notify"
	"github.com/agristack/farmdash/internal/repository"
	"github.com/agristack/farmdash/internal/repository/postgres"
	"github.com/agristack/farmdash/internal/service"
	"github.com/gin-gonic/gin"
)

type stubPublisher struct{}

func (stubPublisher) Publish(ctx context.Context, companyID int64, event domain.Event) error {
	return nil
}
func (stubPublisher) Close() error { return nil }

type stubProjectRepo struct {
	project *domain.Project
}

func (f *stubProjectRepo) ListProjects(ctx context.Context, companyID int64, filter *domain.DashboardFilter) ([]domain.Project, error) {
	return nil, nil
}
func (f *stubProjectRepo) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	if f.project == nil || f.project.ID != id {
		return nil, postgres.ErrNotFound
	}
	clone := *f.project
	return &clone, nil
}
func (f *stubProjectRepo) CreateProject(ctx context.Context, in repository.CreateProjectInput) (*domain.Project, error) {
	f.project = &domain.Project{ID: 1, Name: in.Name, Code: "CP00001", State: in.State, CompanyID: in.CompanyID}
	return f.GetProject(ctx, 1)
}
func (f *stubProjectRepo) UpdateProject(ctx context.Context, id int64, in repository.UpdateProjectInput) error {
	return nil
}
func (f *stubProjectRepo) UpdateProjectState(ctx context.Context, id int64, state string, actualEndDate *time.Time) error {
	f.project.State = state
	return nil
}
func (f *stubProjectRepo) DeleteProject(ctx context.Context, id int64) error { return nil }

type stubCatalogRepo struct{}

func (stubCatalogRepo) GetFarm(ctx context.Context, id int64) (*domain.Farm, error) {
	if id != 1 {
		return nil, postgres.ErrNotFound
	}
	return &domain.Farm{ID: 1, Name: "Green Valley", CompanyID: 1}, nil
}
func (stubCatalogRepo) GetField(ctx context.Context, id int64) (*domain.Field, error) {
	if id != 10 {
		return nil, postgres.ErrNotFound
	}
	return &domain.Field{ID: 10, Name: "North", FarmID: 1, Area: 8}, nil
}
func (stubCatalogRepo) GetCrop(ctx context.Context, id int64) (*domain.Crop, error) {
	if id != 5 {
		return nil, postgres.ErrNotFound
	}
	return &domain.Crop{ID: 5, Name: "Corn"}, nil
}
func (stubCatalogRepo) GetCropBOM(ctx context.Context, id int64) (*domain.CropBOM, error) {
	if id != 20 {
		return nil, postgres.ErrNotFound
	}
	return &domain.CropBOM{ID: 20, Name: "Corn Standard", CropID: 5, Budget: 25000}, nil
}
func (stubCatalogRepo) ListCrops(ctx context.Context) ([]domain.Crop, error) { return nil, nil }
func (stubCatalogRepo) CreateCrop(ctx context.Context, name string) (*domain.Crop, error) {
	return &domain.Crop{ID: 99, Name: name}, nil
}

type stubReportRepo struct{}

func (stubReportRepo) RecentReports(ctx context.Context, projectIDs []int64, since time.Time, limit int) ([]domain.DailyReport, error) {
	return nil, nil
}
func (stubReportRepo) ProjectReports(ctx context.Context, projectID int64) ([]domain.DailyReport, error) {
	return nil, nil
}
func (stubReportRepo) CostByOperation(ctx context.Context, companyID int64, from, to time.Time) (map[string]float64, error) {
	return nil, nil
}
func (stubReportRepo) CountByState(ctx context.Context, companyID int64, from, to time.Time) (map[string]int, error) {
	return nil, nil
}

func newProjectRouter(repo *stubProjectRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	forwarder := notify.NewForwarder(stubPublisher{}, nil)
	svc := service.NewProjectService(repo, stubCatalogRepo{}, stubReportRepo{}, forwarder)
	handler := NewProjectHandler(svc)

	router := gin.New()
	router.POST("/projects", handler.Create)
	router.POST("/projects/:id/status", handler.UpdateStatus)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return rec, decoded
}

func TestCreateProjectResponseEnvelope(t *testing.T) {
	router := newProjectRouter(&stubProjectRepo{})

	rec, body := postJSON(t, router, "/projects", `{
		"name": "Corn North", "farm_id": 1, "field_id": 10, "crop_id": 5,
		"crop_bom_id": 20, "start_date": "2026-03-01", "planned_end_date": "2026-09-01"
	}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if body["success"] != true {
		t.Error("create response must carry success: true")
	}
	if body["id"] != float64(1) {
		t.Errorf("id = %v, want 1", body["id"])
	}
}

func TestCreateProjectValidationEnvelope(t *testing.T) {
	router := newProjectRouter(&stubProjectRepo{})

	rec, body := postJSON(t, router, "/projects", `{
		"name": "Corn North", "farm_id": 99, "field_id": 10, "crop_id": 5,
		"crop_bom_id": 20, "start_date": "2026-03-01", "planned_end_date": "2026-09-01"
	}`)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if body["success"] != false {
		t.Error("rejected create must carry success: false")
	}
	if msg, _ := body["error"].(string); msg == "" {
		t.Error("rejected create must carry an error message")
	}
}

func TestUpdateStatusResponseEnvelope(t *testing.T) {
	repo := &stubProjectRepo{project: &domain.Project{ID: 1, Name: "Corn North", State: domain.StateHarvest, CompanyID: 1}}
	router := newProjectRouter(repo)

	rec, body := postJSON(t, router, "/projects/1/status", `{"new_state": "done"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if body["success"] != true {
		t.Error("status response must carry success: true")
	}
	if body["old_status"] != domain.StateHarvest || body["new_status"] != domain.StateDone {
		t.Errorf("old_status/new_status = %v/%v", body["old_status"], body["new_status"])
	}
	if body["progress"] != float64(100) {
		t.Errorf("progress = %v, want 100", body["progress"])
	}
}
