package postgres

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agristack/farmdash/internal/domain"
	"github.com/rs/zerolog/log"
)

// buildProjectFilterClause translates a dashboard filter payload into SQL
// clauses against the cultivation project table. It is pure: the same filter
// always yields the same clause and args, and absent keys contribute nothing.
// The returned clause starts with " AND " so it can be appended to a WHERE
// that already has at least one condition.
func buildProjectFilterClause(filter *domain.DashboardFilter, alias string, startIndex int) (string, []interface{}) {
	if filter == nil {
		return "", nil
	}

	var (
		clauses []string
		args    []interface{}
	)
	idx := startIndex

	if filter.DateFrom != "" {
		clauses = append(clauses, fmt.Sprintf("%sstart_date >= $%d", alias, idx))
		args = append(args, filter.DateFrom)
		idx++
	}
	if filter.DateTo != "" {
		clauses = append(clauses, fmt.Sprintf("%sstart_date <= $%d", alias, idx))
		args = append(args, filter.DateTo)
		idx++
	}

	// farm_ids wins over the singular farm_id when both are present.
	if len(filter.FarmIDs) > 0 {
		placeholders := make([]string, len(filter.FarmIDs))
		for i, id := range filter.FarmIDs {
			placeholders[i] = fmt.Sprintf("$%d", idx)
			args = append(args, id)
			idx++
		}
		clauses = append(clauses, fmt.Sprintf("%sfarm_id IN (%s)", alias, strings.Join(placeholders, ",")))
	} else if filter.FarmID != "" {
		if farmID, err := strconv.ParseInt(strings.TrimSpace(filter.FarmID), 10, 64); err == nil {
			clauses = append(clauses, fmt.Sprintf("%sfarm_id = $%d", alias, idx))
			args = append(args, farmID)
			idx++
		} else {
			log.Warn().Str("farm_id", filter.FarmID).Msg("invalid farm_id filter value, ignoring")
		}
	}

	if filter.CropID != "" {
		if cropID, err := strconv.ParseInt(strings.TrimSpace(filter.CropID), 10, 64); err == nil {
			clauses = append(clauses, fmt.Sprintf("%scrop_id = $%d", alias, idx))
			args = append(args, cropID)
			idx++
		} else {
			log.Warn().Str("crop_id", filter.CropID).Msg("invalid crop_id filter value, ignoring")
		}
	}

	if filter.Stage != "" {
		clauses = append(clauses, fmt.Sprintf("%sstate = $%d", alias, idx))
		args = append(args, filter.Stage)
		idx++
	}

	if filter.Search != "" {
		clauses = append(clauses, fmt.Sprintf("(%[1]sname ILIKE $%[2]d OR %[1]scode ILIKE $%[3]d)", alias, idx, idx+1))
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
		idx += 2
	}

	if filter.BudgetMin != nil {
		clauses = append(clauses, fmt.Sprintf("%sbudget >= $%d", alias, idx))
		args = append(args, *filter.BudgetMin)
		idx++
	}
	if filter.BudgetMax != nil {
		clauses = append(clauses, fmt.Sprintf("%sbudget <= $%d", alias, idx))
		args = append(args, *filter.BudgetMax)
		idx++
	}

	if len(clauses) == 0 {
		return "", nil
	}

	return " AND " + strings.Join(clauses, " AND "), args
}
