package handler

import (
	"strings"

	id "credipet/pkg/domain"
	"credipet/pkg/validation"
)

// PrincipalRequest names the account a record operation applies to, or the
// new address in an authority or ownership change.
type PrincipalRequest struct {
	Principal string `json:"principal" validate:"required,principal"`

	principal id.Principal
}

func (r *PrincipalRequest) Normalize() {
	r.Principal = strings.TrimSpace(r.Principal)
}

func (r *PrincipalRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	r.principal = id.MustParsePrincipal(r.Principal)
	return nil
}

// ParameterRequest sets one tier's threshold, ratio or rate. Bounds are
// enforced by the service.
type ParameterRequest struct {
	Value *uint64 `json:"value" validate:"required"`
}

func (r *ParameterRequest) Normalize() {}

func (r *ParameterRequest) Validate() error {
	return validation.Validate(r)
}
