package person

import (
	"strings"

	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/flexprice/rvpark/internal/types"
)

// Person is a tenant or a staff member
type Person struct {
	ID          string            `db:"id" json:"id"`
	Name        string            `db:"name" json:"name"`
	Phone       string            `db:"phone" json:"phone"`
	Email       string            `db:"email" json:"email"`
	VehicleType types.VehicleType `db:"vehicle_type" json:"vehicle_type"`
	Address     string            `db:"address" json:"address"`

	types.BaseModel
}

func (p *Person) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ierr.NewError("person name is required").
			WithHint("Please provide a name").
			Mark(ierr.ErrValidation)
	}
	return p.VehicleType.Validate()
}
