package types

import (
	ierr "github.com/flexprice/rvpark/internal/errors"
)

// AuditAction names the mutation recorded in the audit trail
type AuditAction string

const (
	AuditActionLogin           AuditAction = "LOGIN"
	AuditActionCreateUser      AuditAction = "CREAR_USUARIO"
	AuditActionCreateRvPark    AuditAction = "CREAR_RV_PARK"
	AuditActionUpdateRvPark    AuditAction = "ACTUALIZAR_RV_PARK"
	AuditActionDeleteRvPark    AuditAction = "ELIMINAR_RV_PARK"
	AuditActionCreateSpot      AuditAction = "CREAR_SPOT"
	AuditActionUpdateSpot      AuditAction = "ACTUALIZAR_SPOT"
	AuditActionDeleteSpot      AuditAction = "ELIMINAR_SPOT"
	AuditActionCreatePerson    AuditAction = "CREAR_PERSONA"
	AuditActionUpdatePerson    AuditAction = "ACTUALIZAR_PERSONA"
	AuditActionDeletePerson    AuditAction = "ELIMINAR_PERSONA"
	AuditActionCreateRental    AuditAction = "CREAR_RENTA"
	AuditActionUpdateRental    AuditAction = "ACTUALIZAR_RENTA"
	AuditActionDeleteRental    AuditAction = "ELIMINAR_RENTA"
	AuditActionRegisterPayment AuditAction = "REGISTRAR_PAGO"
	AuditActionUpdatePayment   AuditAction = "ACTUALIZAR_PAGO"
	AuditActionDeletePayment   AuditAction = "ELIMINAR_PAGO"
)

// Tables referenced by audit entries
const (
	AuditTableUsers    = "usuarios"
	AuditTableRvParks  = "rv_parks"
	AuditTableSpots    = "spots"
	AuditTablePersons  = "persona"
	AuditTableRentals  = "rentas"
	AuditTablePayments = "pagos"
)

type AuditLogFilter struct {
	*QueryFilter

	UserID    *string      `json:"user_id,omitempty" form:"user_id"`
	Action    *AuditAction `json:"action,omitempty" form:"action"`
	TableName *string      `json:"table_name,omitempty" form:"table_name"`
}

func NewAuditLogFilter() *AuditLogFilter {
	return &AuditLogFilter{QueryFilter: NewDefaultQueryFilter()}
}

func (f *AuditLogFilter) Validate() error {
	if f == nil {
		return nil
	}
	if err := f.QueryFilter.Validate(); err != nil {
		return ierr.WithError(err).WithHint(err.Error()).Mark(ierr.ErrValidation)
	}
	return nil
}
