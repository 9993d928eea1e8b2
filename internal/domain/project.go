package domain

import "time"

// Cultivation project lifecycle states.
const (
	StateDraft       = "draft"
	StatePlanning    = "planning"
	StatePreparation = "preparation"
	StateSowing      = "sowing"
	StateGrowing     = "growing"
	StateHarvest     = "harvest"
	StateSales       = "sales"
	StateDone        = "done"
	StateCancel      = "cancel"
)

var projectStateLabels = map[string]string{
	StateDraft:       "Draft",
	StatePlanning:    "Planning",
	StatePreparation: "Land Preparation",
	StateSowing:      "Sowing",
	StateGrowing:     "Growing",
	StateHarvest:     "Harvest",
	StateSales:       "Sales",
	StateDone:        "Done",
	StateCancel:      "Cancelled",
}

// stateProgress maps each state to its completion percentage.
var stateProgress = map[string]int{
	StateDraft:       0,
	StatePlanning:    10,
	StatePreparation: 20,
	StateSowing:      35,
	StateGrowing:     60,
	StateHarvest:     80,
	StateSales:       95,
	StateDone:        100,
	StateCancel:      0,
}

// stateTransitions is the allowed forward graph. Done and cancel are terminal.
var stateTransitions = map[string][]string{
	StateDraft:       {StatePlanning, StateCancel},
	StatePlanning:    {StatePreparation, StateCancel},
	StatePreparation: {StateSowing, StateCancel},
	StateSowing:      {StateGrowing, StateCancel},
	StateGrowing:     {StateHarvest, StateCancel},
	StateHarvest:     {StateSales, StateDone, StateCancel},
	StateSales:       {StateDone, StateCancel},
	StateDone:        {},
	StateCancel:      {},
}

// activeStates are the in-progress field states counted as active projects.
var activeStates = map[string]bool{
	StatePreparation: true,
	StateSowing:      true,
	StateGrowing:     true,
	StateHarvest:     true,
	StateSales:       true,
}

// ProjectStateLabel returns the display label for a state, or the raw value
// when the state is unknown.
func ProjectStateLabel(state string) string {
	if label, ok := projectStateLabels[state]; ok {
		return label
	}
	return state
}

func IsValidProjectState(state string) bool {
	_, ok := projectStateLabels[state]
	return ok
}

// ProjectProgress returns the completion percentage for a state. Unknown
// states report zero.
func ProjectProgress(state string) int {
	return stateProgress[state]
}

func IsActiveState(state string) bool {
	return activeStates[state]
}

// CanTransition reports whether moving from one state to another is allowed.
func CanTransition(from, to string) bool {
	for _, next := range stateTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// StateTransitions returns the allowed next states for a given state.
func StateTransitions(from string) []string {
	return stateTransitions[from]
}

// Project is a cultivation project row enriched with farm and crop names.
type Project struct {
	ID             int64      `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	Code           string     `json:"code" db:"code"`
	FarmID         int64      `json:"farm_id" db:"farm_id"`
	FarmName       string     `json:"farm_name" db:"farm_name"`
	FieldID        int64      `json:"field_id" db:"field_id"`
	CropID         int64      `json:"crop_id" db:"crop_id"`
	CropName       string     `json:"crop_name" db:"crop_name"`
	CropBOMID      int64      `json:"crop_bom_id" db:"crop_bom_id"`
	State          string     `json:"state" db:"state"`
	StartDate      *time.Time `json:"start_date" db:"start_date"`
	PlannedEndDate *time.Time `json:"planned_end_date" db:"planned_end_date"`
	ActualEndDate  *time.Time `json:"actual_end_date" db:"actual_end_date"`
	Budget         float64    `json:"budget" db:"budget"`
	ActualCost     float64    `json:"actual_cost" db:"actual_cost"`
	Revenue        float64    `json:"revenue" db:"revenue"`
	FieldArea      float64    `json:"field_area" db:"field_area"`
	AreaUnit       string     `json:"area_unit" db:"area_unit"`
	PlannedYield   float64    `json:"planned_yield" db:"planned_yield"`
	ActualYield    float64    `json:"actual_yield" db:"actual_yield"`
	CompanyID      int64      `json:"company_id" db:"company_id"`
}

func (p *Project) Profit() float64 {
	return p.Revenue - p.ActualCost
}

// IsOverdue reports whether the project ran or is running past its planned
// end date. Completed projects compare actual against planned end; cancelled
// projects are never overdue.
func (p *Project) IsOverdue(today time.Time) bool {
	if p.PlannedEndDate == nil {
		return false
	}
	switch p.State {
	case StateCancel:
		return false
	case StateDone:
		return p.ActualEndDate != nil && p.ActualEndDate.After(*p.PlannedEndDate)
	default:
		return today.After(*p.PlannedEndDate)
	}
}

// Duration returns the project length in days, using the actual end date when
// set and today otherwise. Projects without a start date report zero.
func (p *Project) Duration(today time.Time) float64 {
	if p.StartDate == nil {
		return 0
	}
	end := today
	if p.ActualEndDate != nil {
		end = *p.ActualEndDate
	}
	days := end.Sub(*p.StartDate).Hours() / 24
	if days < 0 {
		return 0
	}
	return days
}
