package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/agristack/farmdash/internal/domain"
	"github.com/agristack/farmdash/internal/repository"
	"github.com/agristack/farmdash/internal/storage"
	"github.com/rs/zerolog/log"
)

// ErrExportDisabled is returned when no storage backend is configured.
var ErrExportDisabled = errors.New("export storage not configured")

// ExportResult describes an uploaded export file.
type ExportResult struct {
	Key         string `json:"key"`
	Rows        int    `json:"rows"`
	DownloadURL string `json:"download_url"`
}

// ExportService writes filtered project data as CSV to object storage.
// Access requires the export_data capability.
type ExportService struct {
	projects repository.ProjectRepository
	resolver PermissionResolver
	store    storage.ObjectStorage
}

func NewExportService(projects repository.ProjectRepository, resolver PermissionResolver, store storage.ObjectStorage) *ExportService {
	return &ExportService{projects: projects, resolver: resolver, store: store}
}

var exportHeader = []string{
	"code", "name", "farm", "crop", "state", "start_date", "planned_end_date",
	"budget", "actual_cost", "revenue", "profit", "field_area",
}

func exportRow(p *domain.Project) []string {
	start, planned := "", ""
	if p.StartDate != nil {
		start = p.StartDate.Format(dateLayout)
	}
	if p.PlannedEndDate != nil {
		planned = p.PlannedEndDate.Format(dateLayout)
	}
	return []string{
		p.Code, p.Name, p.FarmName, p.CropName, p.State, start, planned,
		strconv.FormatFloat(p.Budget, 'f', 2, 64),
		strconv.FormatFloat(p.ActualCost, 'f', 2, 64),
		strconv.FormatFloat(p.Revenue, 'f', 2, 64),
		strconv.FormatFloat(p.Profit(), 'f', 2, 64),
		strconv.FormatFloat(p.FieldArea, 'f', 2, 64),
	}
}

// ExportProjects renders the filtered project list as CSV and uploads it.
func (s *ExportService) ExportProjects(ctx context.Context, userID, companyID int64, filter *domain.DashboardFilter) (*ExportResult, error) {
	if s.store == nil {
		return nil, ErrExportDisabled
	}

	perms, err := s.resolver.Resolve(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	if !perms.Permissions.ExportData {
		return nil, ErrAccessDenied
	}

	projects, err := s.projects.ListProjects(ctx, companyID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects for export: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write export header: %w", err)
	}
	for i := range projects {
		if err := w.Write(exportRow(&projects[i])); err != nil {
			return nil, fmt.Errorf("failed to write export row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to render export: %w", err)
	}

	key := fmt.Sprintf("exports/%d/projects-%s.csv", companyID, time.Now().UTC().Format("20060102-150405"))
	if err := s.store.UploadObject(ctx, key, buf.Bytes(), "text/csv"); err != nil {
		return nil, fmt.Errorf("failed to upload export: %w", err)
	}

	result := &ExportResult{Key: key, Rows: len(projects)}
	if url, err := s.store.PresignedURL(ctx, key, time.Hour); err == nil {
		result.DownloadURL = url
	} else {
		log.Warn().Err(err).Str("key", key).Msg("presigned url unavailable")
	}

	log.Info().Str("key", key).Int("rows", result.Rows).Msg("project export uploaded")

	return result, nil
}
