package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsEmbedded(t *testing.T) {
	migrations, err := Migrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	schema := migrations[0].SQL
	assert.True(t, strings.Contains(schema, "idx_rentals_active_spot"))
	assert.True(t, strings.Contains(schema, "idx_payments_rental_period"))
}
