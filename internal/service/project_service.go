package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agristack/farmdash/internal/domain"
	"github.com/agristack/farmdash/internal/notify"
	"github.com/agristack/farmdash/internal/repository"
	"github.com/agristack/farmdash/internal/repository/postgres"
	"github.com/rs/zerolog/log"
)

// ErrNotFound is the service-level missing record error.
var ErrNotFound = errors.New("record not found")

// ValidationError carries a user-facing message for a rejected write.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

const dateLayout = "2006-01-02"

// CreateProjectRequest is the write payload for a new cultivation project.
type CreateProjectRequest struct {
	Name           string `json:"name"`
	FarmID         int64  `json:"farm_id"`
	FieldID        int64  `json:"field_id"`
	CropID         int64  `json:"crop_id"`
	CropBOMID      int64  `json:"crop_bom_id"`
	StartDate      string `json:"start_date"`
	PlannedEndDate string `json:"planned_end_date"`
	Description    string `json:"description"`
}

// UpdateProjectRequest carries optional project updates.
type UpdateProjectRequest struct {
	Name           *string `json:"name"`
	FarmID         *int64  `json:"farm_id"`
	CropID         *int64  `json:"crop_id"`
	StartDate      *string `json:"start_date"`
	PlannedEndDate *string `json:"planned_end_date"`
	Description    *string `json:"description"`
}

// StatusChange is the result of a state transition.
type StatusChange struct {
	ProjectID  int64  `json:"project_id"`
	OldState   string `json:"old_status"`
	NewState   string `json:"new_status"`
	StateLabel string `json:"state_label"`
	Progress   int    `json:"progress"`
}

// ProjectDetails bundles a project with its computed fields.
type ProjectDetails struct {
	domain.Project
	StateLabel         string   `json:"state_label"`
	Profit             float64  `json:"profit"`
	ProgressPercentage int      `json:"progress_percentage"`
	Overdue            bool     `json:"overdue"`
	AllowedTransitions []string `json:"allowed_transitions"`
}

// ProjectService owns cultivation project writes and detail reads. Every
// successful write notifies the dashboard bus.
type ProjectService struct {
	projects  repository.ProjectRepository
	catalog   repository.CatalogRepository
	reports   repository.ReportRepository
	forwarder *notify.Forwarder
}

func NewProjectService(
	projects repository.ProjectRepository,
	catalog repository.CatalogRepository,
	reports repository.ReportRepository,
	forwarder *notify.Forwarder,
) *ProjectService {
	return &ProjectService{projects: projects, catalog: catalog, reports: reports, forwarder: forwarder}
}

func (s *ProjectService) validateCreate(ctx context.Context, req *CreateProjectRequest) (*repository.CreateProjectInput, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, validationErrorf("project name is required")
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, validationErrorf("invalid start_date %q, expected YYYY-MM-DD", req.StartDate)
	}
	plannedEnd, err := time.Parse(dateLayout, req.PlannedEndDate)
	if err != nil {
		return nil, validationErrorf("invalid planned_end_date %q, expected YYYY-MM-DD", req.PlannedEndDate)
	}
	if !plannedEnd.After(startDate) {
		return nil, validationErrorf("planned_end_date must be after start_date")
	}

	farm, err := s.catalog.GetFarm(ctx, req.FarmID)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, validationErrorf("farm %d does not exist", req.FarmID)
		}
		return nil, err
	}

	field, err := s.catalog.GetField(ctx, req.FieldID)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, validationErrorf("field %d does not exist", req.FieldID)
		}
		return nil, err
	}
	if field.FarmID != farm.ID {
		return nil, validationErrorf("field %d does not belong to farm %d", req.FieldID, req.FarmID)
	}

	if _, err := s.catalog.GetCrop(ctx, req.CropID); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, validationErrorf("crop %d does not exist", req.CropID)
		}
		return nil, err
	}

	bom, err := s.catalog.GetCropBOM(ctx, req.CropBOMID)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, validationErrorf("crop BOM %d does not exist", req.CropBOMID)
		}
		return nil, err
	}
	if bom.CropID != req.CropID {
		return nil, validationErrorf("crop BOM %d does not belong to crop %d", req.CropBOMID, req.CropID)
	}

	return &repository.CreateProjectInput{
		Name:           strings.TrimSpace(req.Name),
		FarmID:         req.FarmID,
		FieldID:        req.FieldID,
		CropID:         req.CropID,
		CropBOMID:      req.CropBOMID,
		StartDate:      startDate,
		PlannedEndDate: plannedEnd,
		State:          domain.StateDraft,
		Description:    req.Description,
		CompanyID:      farm.CompanyID,
	}, nil
}

// CreateProject validates the request and creates the project in draft state.
func (s *ProjectService) CreateProject(ctx context.Context, req *CreateProjectRequest) (*domain.Project, error) {
	input, err := s.validateCreate(ctx, req)
	if err != nil {
		return nil, err
	}

	project, err := s.projects.CreateProject(ctx, *input)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	log.Info().Int64("project_id", project.ID).Str("code", project.Code).Msg("project created")
	s.forwarder.ProjectCreated(ctx, project)

	return project, nil
}

// UpdateProject applies partial updates to a project.
func (s *ProjectService) UpdateProject(ctx context.Context, id int64, req *UpdateProjectRequest) (*domain.Project, error) {
	input := repository.UpdateProjectInput{
		Name:        req.Name,
		FarmID:      req.FarmID,
		CropID:      req.CropID,
		Description: req.Description,
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, validationErrorf("project name cannot be empty")
	}
	if req.StartDate != nil {
		t, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			return nil, validationErrorf("invalid start_date %q, expected YYYY-MM-DD", *req.StartDate)
		}
		input.StartDate = &t
	}
	if req.PlannedEndDate != nil {
		t, err := time.Parse(dateLayout, *req.PlannedEndDate)
		if err != nil {
			return nil, validationErrorf("invalid planned_end_date %q, expected YYYY-MM-DD", *req.PlannedEndDate)
		}
		input.PlannedEndDate = &t
	}
	if req.FarmID != nil {
		if _, err := s.catalog.GetFarm(ctx, *req.FarmID); err != nil {
			if errors.Is(err, postgres.ErrNotFound) {
				return nil, validationErrorf("farm %d does not exist", *req.FarmID)
			}
			return nil, err
		}
	}
	if req.CropID != nil {
		if _, err := s.catalog.GetCrop(ctx, *req.CropID); err != nil {
			if errors.Is(err, postgres.ErrNotFound) {
				return nil, validationErrorf("crop %d does not exist", *req.CropID)
			}
			return nil, err
		}
	}

	if err := s.projects.UpdateProject(ctx, id, input); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update project %d: %w", id, err)
	}

	project, err := s.projects.GetProject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload project %d: %w", id, err)
	}

	s.forwarder.ProjectFinancialUpdated(ctx, project)

	return project, nil
}

// UpdateProjectStatus moves a project along the lifecycle graph. Invalid
// transitions are rejected; reaching done stamps the actual end date.
func (s *ProjectService) UpdateProjectStatus(ctx context.Context, id int64, newState string) (*StatusChange, error) {
	if !domain.IsValidProjectState(newState) {
		return nil, validationErrorf("unknown state %q", newState)
	}

	project, err := s.projects.GetProject(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load project %d: %w", id, err)
	}

	if !domain.CanTransition(project.State, newState) {
		return nil, validationErrorf("cannot move project from %s to %s", project.State, newState)
	}

	var actualEnd *time.Time
	if newState == domain.StateDone {
		now := time.Now().UTC()
		actualEnd = &now
	}

	if err := s.projects.UpdateProjectState(ctx, id, newState, actualEnd); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to change project %d state: %w", id, err)
	}

	oldState := project.State
	project.State = newState
	project.ActualEndDate = actualEnd

	log.Info().Int64("project_id", id).Str("from", oldState).Str("to", newState).Msg("project state changed")
	s.forwarder.ProjectStateChanged(ctx, project, oldState)

	return &StatusChange{
		ProjectID:  id,
		OldState:   oldState,
		NewState:   newState,
		StateLabel: domain.ProjectStateLabel(newState),
		Progress:   domain.ProjectProgress(newState),
	}, nil
}

// DeleteProject removes a project and notifies listeners.
func (s *ProjectService) DeleteProject(ctx context.Context, id int64) error {
	project, err := s.projects.GetProject(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.projects.DeleteProject(ctx, id); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete project %d: %w", id, err)
	}

	s.forwarder.ProjectDeleted(ctx, id, project.CompanyID)

	return nil
}

// GetProjectDetails returns one project with its derived fields.
func (s *ProjectService) GetProjectDetails(ctx context.Context, id int64) (*ProjectDetails, error) {
	project, err := s.projects.GetProject(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load project %d: %w", id, err)
	}

	return &ProjectDetails{
		Project:            *project,
		StateLabel:         domain.ProjectStateLabel(project.State),
		Profit:             project.Profit(),
		ProgressPercentage: domain.ProjectProgress(project.State),
		Overdue:            project.IsOverdue(time.Now().UTC()),
		AllowedTransitions: domain.StateTransitions(project.State),
	}, nil
}

// GetProjectReports lists the daily reports of one project.
func (s *ProjectService) GetProjectReports(ctx context.Context, id int64) ([]domain.DailyReport, error) {
	if _, err := s.projects.GetProject(ctx, id); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	reports, err := s.reports.ProjectReports(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load reports for project %d: %w", id, err)
	}
	return reports, nil
}

// CreateCrop adds a crop to the catalog.
func (s *ProjectService) CreateCrop(ctx context.Context, name string) (*domain.Crop, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationErrorf("crop name is required")
	}

	crop, err := s.catalog.CreateCrop(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create crop: %w", err)
	}

	log.Info().Int64("crop_id", crop.ID).Str("name", crop.Name).Msg("crop created")

	return crop, nil
}

// ListCrops returns the crop catalog.
func (s *ProjectService) ListCrops(ctx context.Context) ([]domain.Crop, error) {
	return s.catalog.ListCrops(ctx)
}
