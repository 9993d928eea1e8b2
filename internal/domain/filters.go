package domain

// DashboardFilter is the generic filter payload accepted by every tab.
// FarmIDs takes precedence over FarmID when both are present. FarmID and
// CropID arrive as strings because the front end sends raw select values;
// unparseable values are ignored, not errored.
type DashboardFilter struct {
	DateFrom  string   `json:"date_from" form:"date_from"`
	DateTo    string   `json:"date_to" form:"date_to"`
	FarmIDs   []int64  `json:"farm_ids" form:"farm_ids"`
	FarmID    string   `json:"farm_id" form:"farm_id"`
	CropID    string   `json:"crop_id" form:"crop_id"`
	Stage     string   `json:"stage" form:"stage"`
	Search    string   `json:"search" form:"search"`
	BudgetMin *float64 `json:"budget_min" form:"budget_min"`
	BudgetMax *float64 `json:"budget_max" form:"budget_max"`
}

// IsZero reports whether no filter key is set.
func (f *DashboardFilter) IsZero() bool {
	if f == nil {
		return true
	}
	return f.DateFrom == "" && f.DateTo == "" && len(f.FarmIDs) == 0 &&
		f.FarmID == "" && f.CropID == "" && f.Stage == "" && f.Search == "" &&
		f.BudgetMin == nil && f.BudgetMax == nil
}
