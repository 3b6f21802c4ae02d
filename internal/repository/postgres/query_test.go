package postgres

import (
	"testing"

	"github.com/flexprice/rvpark/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestWhereClause(t *testing.T) {
	w := &whereClause{}
	assert.Equal(t, "", w.String())

	w.add("rental_id = ?", "rent_1")
	w.add("period = ?", "2024-02")
	assert.Equal(t, " WHERE rental_id = ? AND period = ?", w.String())
	assert.Equal(t, []any{"rent_1", "2024-02"}, w.args)
}

func TestOrderAndPage(t *testing.T) {
	sortable := map[string]bool{"start_date": true}

	clause, args := orderAndPage(types.NewDefaultQueryFilter(), sortable, "start_date")
	assert.Equal(t, " ORDER BY start_date DESC, id DESC LIMIT ? OFFSET ?", clause)
	assert.Equal(t, []any{types.FILTER_DEFAULT_LIMIT, 0}, args)

	f := &types.QueryFilter{Sort: lo.ToPtr("start_date; DROP TABLE rentals"), Order: lo.ToPtr(types.OrderAsc)}
	clause, args = orderAndPage(f, sortable, "start_date")
	assert.Equal(t, " ORDER BY start_date ASC, id ASC OFFSET ?", clause)
	assert.Equal(t, []any{0}, args)
}
