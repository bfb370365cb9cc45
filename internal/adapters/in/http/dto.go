package http

import (
	"encoding/json"
	"time"

	"labflow/internal/core/application/usecases/commands"
	"labflow/internal/core/domain/model/kernel"
	"labflow/internal/core/domain/model/order"
	"labflow/internal/core/domain/model/user"

	"github.com/shopspring/decimal"
)

// Request bodies. Struct tags carry the shape checks; the domain enforces the rest.
type (
	CredentialsRequest struct {
		Email    string `json:"email"    validate:"required,email,max=100"`
		Password string `json:"password" validate:"required,min=8,max=100"`
	}

	NewServiceRequest struct {
		Name  string           `json:"name"  validate:"required,min=3,max=100"`
		Value *decimal.Decimal `json:"value" validate:"required"`
	}

	CreateOrderRequest struct {
		LabName     string              `json:"labName"     validate:"required,min=3,max=100"`
		PatientName string              `json:"patientName" validate:"required,min=3,max=100"`
		ClinicName  string              `json:"clinicName"  validate:"required,min=3,max=100"`
		ExpiresAt   *time.Time          `json:"expiresAt"   validate:"required"`
		Services    []NewServiceRequest `json:"services"    validate:"required,min=1,dive"`
	}

	ServicePatchRequest struct {
		Name   *string          `json:"name"   validate:"omitempty,min=3,max=100"`
		Value  *decimal.Decimal `json:"value"`
		Status *string          `json:"status" validate:"omitempty,oneof=pending done cancelled"`
	}

	ServiceUpdateRequest struct {
		ID string `json:"id" validate:"required,uuid"`
		ServicePatchRequest
	}

	UpdateOrderRequest struct {
		LabName     *string                `json:"labName"     validate:"omitempty,min=3,max=100"`
		PatientName *string                `json:"patientName" validate:"omitempty,min=3,max=100"`
		ClinicName  *string                `json:"clinicName"  validate:"omitempty,min=3,max=100"`
		ExpiresAt   *time.Time             `json:"expiresAt"`
		Stage       *string                `json:"stage"       validate:"omitempty,oneof=created analysis completed"`
		Status      *string                `json:"status"      validate:"omitempty,oneof=active deleted"`
		Services    []ServiceUpdateRequest `json:"services"    validate:"dive"`
	}
)

// Query parameters of GET /api/orders.
type GetOrdersParams struct {
	Page  *int    `form:"page"  json:"page,omitempty"`
	Limit *int    `form:"limit" json:"limit,omitempty"`
	Stage *string `form:"stage" json:"stage,omitempty"`
}

// Response bodies.
type (
	ErrorResponse struct {
		Error string `json:"error"`
	}

	UserResponse struct {
		ID        string    `json:"id"`
		Email     string    `json:"email"`
		CreatedAt time.Time `json:"createdAt"`
		UpdatedAt time.Time `json:"updatedAt"`
	}

	AuthResponse struct {
		Token     string       `json:"token"`
		ExpiresAt time.Time    `json:"expiresAt"`
		User      UserResponse `json:"user"`
	}

	ServiceResponse struct {
		ID        string      `json:"id"`
		Name      string      `json:"name"`
		Value     json.Number `json:"value"`
		Status    string      `json:"status"`
		CreatedAt time.Time   `json:"createdAt"`
		UpdatedAt time.Time   `json:"updatedAt"`
	}

	OrderResponse struct {
		ID          string            `json:"id"`
		UserID      string            `json:"userId"`
		LabName     string            `json:"labName"`
		PatientName string            `json:"patientName"`
		ClinicName  string            `json:"clinicName"`
		Stage       string            `json:"stage"`
		Status      string            `json:"status"`
		Services    []ServiceResponse `json:"services"`
		Total       json.Number       `json:"total"`
		ExpiresAt   time.Time         `json:"expiresAt"`
		CreatedAt   time.Time         `json:"createdAt"`
		UpdatedAt   time.Time         `json:"updatedAt"`
	}

	OrderPageResponse struct {
		Orders          []OrderResponse `json:"orders"`
		Total           int64           `json:"total"`
		Page            int             `json:"page"`
		Limit           int             `json:"limit"`
		TotalPages      int             `json:"totalPages"`
		HasNextPage     bool            `json:"hasNextPage"`
		HasPreviousPage bool            `json:"hasPreviousPage"`
	}
)

func (r CreateOrderRequest) details() order.Details {
	return order.Details{
		LabName:     r.LabName,
		PatientName: r.PatientName,
		ClinicName:  r.ClinicName,
	}
}

func (r CreateOrderRequest) serviceSpecs() ([]commands.NewServiceSpec, error) {
	specs := make([]commands.NewServiceSpec, 0, len(r.Services))
	for _, s := range r.Services {
		spec, err := s.spec()
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func (r NewServiceRequest) spec() (commands.NewServiceSpec, error) {
	value, err := kernel.NewMoney(*r.Value)
	if err != nil {
		return commands.NewServiceSpec{}, err
	}
	return commands.NewServiceSpec{Name: r.Name, Value: value}, nil
}

func (r ServicePatchRequest) patch() (order.ServicePatch, error) {
	patch := order.ServicePatch{Name: r.Name}

	if r.Value != nil {
		value, err := kernel.NewMoney(*r.Value)
		if err != nil {
			return order.ServicePatch{}, err
		}
		patch.Value = &value
	}

	if r.Status != nil {
		status, err := order.ParseServiceStatus(*r.Status)
		if err != nil {
			return order.ServicePatch{}, err
		}
		patch.Status = &status
	}

	return patch, nil
}

func (r UpdateOrderRequest) patch() (order.Patch, error) {
	patch := order.Patch{
		LabName:     r.LabName,
		PatientName: r.PatientName,
		ClinicName:  r.ClinicName,
		ExpiresAt:   r.ExpiresAt,
	}

	if r.Stage != nil {
		stage, err := order.ParseStage(*r.Stage)
		if err != nil {
			return order.Patch{}, err
		}
		patch.Stage = &stage
	}

	if r.Status != nil {
		status, err := order.ParseStatus(*r.Status)
		if err != nil {
			return order.Patch{}, err
		}
		patch.Status = &status
	}

	// nil stays nil: an omitted list is rejected by the command.
	if r.Services != nil {
		patch.Services = make([]order.ServiceUpdate, 0, len(r.Services))
		for _, s := range r.Services {
			id, err := kernel.UUIDFromString(s.ID)
			if err != nil {
				return order.Patch{}, err
			}
			servicePatch, err := s.ServicePatchRequest.patch()
			if err != nil {
				return order.Patch{}, err
			}
			patch.Services = append(patch.Services, order.ServiceUpdate{ID: id, Patch: servicePatch})
		}
	}

	return patch, nil
}

func newUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID().String(),
		Email:     u.Email(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}

func newAuthResponse(result commands.AuthResult) AuthResponse {
	return AuthResponse{
		Token:     result.Token.Value,
		ExpiresAt: result.Token.ExpiresAt,
		User:      newUserResponse(result.User),
	}
}

func newServiceResponse(s *order.Service) ServiceResponse {
	return ServiceResponse{
		ID:        s.ID().String(),
		Name:      s.Name(),
		Value:     json.Number(s.Value().String()),
		Status:    s.Status().String(),
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
	}
}

func newOrderResponse(o *order.Order) OrderResponse {
	services := make([]ServiceResponse, 0, len(o.Services()))
	for _, s := range o.Services() {
		services = append(services, newServiceResponse(s))
	}

	return OrderResponse{
		ID:          o.ID().String(),
		UserID:      o.OwnerID().String(),
		LabName:     o.LabName(),
		PatientName: o.PatientName(),
		ClinicName:  o.ClinicName(),
		Stage:       o.Stage().String(),
		Status:      o.Status().String(),
		Services:    services,
		Total:       json.Number(o.Total().String()),
		ExpiresAt:   o.ExpiresAt(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
	}
}

func newOrderPageResponse(p kernel.Page[*order.Order]) OrderPageResponse {
	mapped := kernel.MapPage(p, newOrderResponse)
	return OrderPageResponse{
		Orders:          mapped.Items,
		Total:           mapped.Total,
		Page:            mapped.Page,
		Limit:           mapped.Limit,
		TotalPages:      mapped.TotalPages,
		HasNextPage:     mapped.HasNextPage,
		HasPreviousPage: mapped.HasPreviousPage,
	}
}
