package postgres

import (
	"database/sql"
	"fmt"
	"strings"

	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/flexprice/rvpark/internal/types"
)

// whereClause collects AND-ed conditions written with ? placeholders.
// Queries are rebound to $n placeholders by the querier before execution.
type whereClause struct {
	conds []string
	args  []any
}

func (w *whereClause) add(cond string, args ...any) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

func (w *whereClause) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// orderAndPage renders ORDER BY, LIMIT and OFFSET for filter. Only columns in
// sortable are accepted, anything else falls back to fallback.
func orderAndPage(filter *types.QueryFilter, sortable map[string]bool, fallback string) (string, []any) {
	column := filter.GetSort()
	if !sortable[column] {
		column = fallback
	}

	direction := "DESC"
	if filter.GetOrder() == types.OrderAsc {
		direction = "ASC"
	}

	clause := fmt.Sprintf(" ORDER BY %s %s, id %s", column, direction, direction)
	if filter.IsUnlimited() {
		return clause + " OFFSET ?", []any{filter.GetOffset()}
	}
	return clause + " LIMIT ? OFFSET ?", []any{filter.GetLimit(), filter.GetOffset()}
}

// expectOneRow turns an update or delete that matched nothing into ErrNotFound
func expectOneRow(result sql.Result, entity, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	if n == 0 {
		return ierr.NewErrorf("%s %s not found", entity, id).
			WithHintf("%s not found", entity).
			WithReportableDetails(map[string]any{
				"id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
