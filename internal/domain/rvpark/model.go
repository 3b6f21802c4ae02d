package rvpark

import (
	"strings"

	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/flexprice/rvpark/internal/types"
)

// RvPark is a park that owns spots
type RvPark struct {
	ID      string `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Address string `db:"address" json:"address"`
	Phone   string `db:"phone" json:"phone"`
	Email   string `db:"email" json:"email"`

	types.BaseModel
}

func (p *RvPark) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ierr.NewError("rv park name is required").
			WithHint("Please provide a name for the RV park").
			Mark(ierr.ErrValidation)
	}
	return nil
}
