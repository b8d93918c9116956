package handler

import (
	"strings"

	"credipet/internal/badge/models"
	id "credipet/pkg/domain"
	"credipet/pkg/validation"
)

// Request DTOs validate with struct tags, then parse principals into the
// unexported fields the handlers pass to the service.

type EvolveRequest struct {
	Owner string  `json:"owner" validate:"required,principal"`
	Stage *uint64 `json:"stage" validate:"required"`

	owner id.Principal
	stage models.Stage
}

func (r *EvolveRequest) Normalize() {
	r.Owner = strings.TrimSpace(r.Owner)
}

func (r *EvolveRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	stage, err := models.ParseStage(*r.Stage)
	if err != nil {
		return err
	}
	r.owner = id.MustParsePrincipal(r.Owner)
	r.stage = stage
	return nil
}

type HealthRequest struct {
	Owner    string `json:"owner" validate:"required,principal"`
	Weakened *bool  `json:"weakened" validate:"required"`

	owner id.Principal
}

func (r *HealthRequest) Normalize() {
	r.Owner = strings.TrimSpace(r.Owner)
}

func (r *HealthRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	r.owner = id.MustParsePrincipal(r.Owner)
	return nil
}

// ApproveRequest sets the approved principal; the zero address clears it.
type ApproveRequest struct {
	To string `json:"to" validate:"required,principal"`

	to id.Principal
}

func (r *ApproveRequest) Normalize() {
	r.To = strings.TrimSpace(r.To)
}

func (r *ApproveRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	r.to = id.MustParsePrincipal(r.To)
	return nil
}

type OperatorRequest struct {
	Operator string `json:"operator" validate:"required,principal"`
	Approved *bool  `json:"approved" validate:"required"`

	operator id.Principal
}

func (r *OperatorRequest) Normalize() {
	r.Operator = strings.TrimSpace(r.Operator)
}

func (r *OperatorRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	r.operator = id.MustParsePrincipal(r.Operator)
	return nil
}

type TransferRequest struct {
	From string  `json:"from" validate:"required,principal"`
	To   string  `json:"to" validate:"required,principal"`
	Data *string `json:"data,omitempty"`

	from id.Principal
	to   id.Principal
}

func (r *TransferRequest) Normalize() {
	r.From = strings.TrimSpace(r.From)
	r.To = strings.TrimSpace(r.To)
}

func (r *TransferRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	r.from = id.MustParsePrincipal(r.From)
	r.to = id.MustParsePrincipal(r.To)
	return nil
}

type BaseURIRequest struct {
	BaseURI string `json:"base_uri" validate:"required,notblank"`
}

func (r *BaseURIRequest) Normalize() {
	r.BaseURI = strings.TrimSpace(r.BaseURI)
}

func (r *BaseURIRequest) Validate() error {
	return validation.Validate(r)
}

// PrincipalRequest carries a single address for authority and ownership
// changes. The zero address is rejected by the service, not here.
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
