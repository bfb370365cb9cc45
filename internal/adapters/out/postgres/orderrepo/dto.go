// Package orderrepo persists order aggregates and their services in two tables,
// orders and order_services, and maps rows back to domain objects.
package orderrepo

import (
	"time"

	"labflow/internal/core/domain/model/kernel"
	"labflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the row of the orders table. Timestamps are owned by the domain,
// so gorm's automatic create/update time tracking is disabled.
type OrderDTO struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID    `gorm:"type:uuid;not null;index:idx_orders_owner_status_created,priority:1"`
	LabName     string       `gorm:"type:varchar(100);not null"`
	PatientName string       `gorm:"type:varchar(100);not null"`
	ClinicName  string       `gorm:"type:varchar(100);not null"`
	Stage       string       `gorm:"type:varchar(16);not null;index"`
	Status      string       `gorm:"type:varchar(16);not null;index:idx_orders_owner_status_created,priority:2"`
	ExpiresAt   time.Time    `gorm:"not null;index"`
	CreatedAt   time.Time    `gorm:"not null;autoCreateTime:false;index:idx_orders_owner_status_created,priority:3"`
	UpdatedAt   time.Time    `gorm:"not null;autoUpdateTime:false"`
	Services    []ServiceDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// ServiceDTO is one row of order_services, keyed by (order_id, id).
// Position keeps the order in which services were added.
type ServiceDTO struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position  int             `gorm:"not null"`
	Name      string          `gorm:"type:varchar(100);not null"`
	Value     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status    string          `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time       `gorm:"not null;autoUpdateTime:false"`
}

func (ServiceDTO) TableName() string {
	return "order_services"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()
	services := make([]ServiceDTO, 0, len(aggregate.Services()))

	for position, s := range aggregate.Services() {
		services = append(services, serviceFromDomain(orderID, position, s))
	}

	return OrderDTO{
		ID:          orderID,
		OwnerID:     aggregate.OwnerID().Bytes(),
		LabName:     aggregate.LabName(),
		PatientName: aggregate.PatientName(),
		ClinicName:  aggregate.ClinicName(),
		Stage:       aggregate.Stage().String(),
		Status:      aggregate.Status().String(),
		ExpiresAt:   aggregate.ExpiresAt().UTC(),
		CreatedAt:   aggregate.CreatedAt().UTC(),
		UpdatedAt:   aggregate.UpdatedAt().UTC(),
		Services:    services,
	}
}

func serviceFromDomain(orderID uuid.UUID, position int, s *order.Service) ServiceDTO {
	return ServiceDTO{
		OrderID:   orderID,
		ID:        s.ID().Bytes(),
		Position:  position,
		Name:      s.Name(),
		Value:     s.Value().Decimal(),
		Status:    s.Status().String(),
		CreatedAt: s.CreatedAt().UTC(),
		UpdatedAt: s.UpdatedAt().UTC(),
	}
}

// toDomain rebuilds the aggregate with RestoreOrder. Stored rows are trusted for
// the total, so a legacy order with a zero total still loads.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	stage, err := order.ParseStage(dto.Stage)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	services := make([]*order.Service, 0, len(dto.Services))
	for _, serviceDTO := range dto.Services {
		s, serviceErr := serviceToDomain(serviceDTO)
		if serviceErr != nil {
			return nil, serviceErr
		}
		services = append(services, s)
	}

	return order.RestoreOrder(
		id,
		ownerID,
		order.Details{
			LabName:     dto.LabName,
			PatientName: dto.PatientName,
			ClinicName:  dto.ClinicName,
		},
		stage,
		status,
		services,
		dto.ExpiresAt.UTC(),
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
	)
}

func serviceToDomain(dto ServiceDTO) (*order.Service, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	value, err := kernel.NewMoney(dto.Value)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseServiceStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreService(id, dto.Name, value, status, dto.CreatedAt.UTC(), dto.UpdatedAt.UTC())
}
