package orderrepo

import (
	"context"
	"errors"

	"labflow/internal/core/domain/model/kernel"
	"labflow/internal/core/domain/model/order"
	"labflow/internal/core/ports"
	"labflow/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order row and all its service rows.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update rewrites the order row and upserts the aggregate's services in one
// transaction. Stored services the aggregate does not carry are left in place.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
			"lab_name":     dto.LabName,
			"patient_name": dto.PatientName,
			"clinic_name":  dto.ClinicName,
			"stage":        dto.Stage,
			"status":       dto.Status,
			"expires_at":   dto.ExpiresAt,
			"updated_at":   dto.UpdatedAt,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}, {Name: "id"}},
			UpdateAll: true,
		}).Create(&dto.Services).Error
	})
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateStage writes only the stage and updatedAt of the stored order.
func (r *GormOrderRepository) UpdateStage(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(map[string]any{
			"stage":      aggregate.Stage().String(),
			"updated_at": aggregate.UpdatedAt().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads an order with its services in insertion order.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).Preload("Services", byPosition).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindAll returns the requested page ordered by creation time, newest first,
// with id as tie breaker, and the total number of matching orders.
func (r *GormOrderRepository) FindAll(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, int64, error) {
	if err := errors.Join(filter.OwnerID.Validate(), filter.Page.Validate()); err != nil {
		return nil, 0, err
	}

	matching := func(db *gorm.DB) *gorm.DB {
		db = db.Where("owner_id = ? AND status = ?", filter.OwnerID.Bytes(), filter.Status.String())
		if filter.Stage != nil {
			db = db.Where("stage = ?", filter.Stage.String())
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Scopes(matching).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Scopes(matching).
		Preload("Services", byPosition).
		Order("created_at DESC, id").
		Offset(filter.Page.Offset()).
		Limit(filter.Page.Limit()).
		Find(&dtos).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}

	return orders, total, nil
}

// AddService inserts one service row and bumps the order's updatedAt. The
// aggregate must already contain service.
func (r *GormOrderRepository) AddService(ctx context.Context, aggregate *order.Order, service *order.Service) error {
	if err := errors.Join(aggregate.Validate(), service.Validate()); err != nil {
		return err
	}

	position, err := positionOf(aggregate, service.ID())
	if err != nil {
		return err
	}

	orderID := aggregate.ID().Bytes()
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := touchOrder(tx, aggregate); err != nil {
			return err
		}
		dto := serviceFromDomain(orderID, position, service)
		return tx.Create(&dto).Error
	})
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateService overwrites the row addressed by (order id, service id) and bumps
// the order's updatedAt.
func (r *GormOrderRepository) UpdateService(ctx context.Context, aggregate *order.Order, service *order.Service) error {
	if err := errors.Join(aggregate.Validate(), service.Validate()); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&ServiceDTO{}).
			Where("order_id = ? AND id = ?", aggregate.ID().Bytes(), service.ID().Bytes()).
			Updates(map[string]any{
				"name":       service.Name(),
				"value":      service.Value().Decimal(),
				"status":     service.Status().String(),
				"updated_at": service.UpdatedAt().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("service", service.ID().String())
		}
		return touchOrder(tx, aggregate)
	})
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func touchOrder(tx *gorm.DB, aggregate *order.Order) error {
	result := tx.Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Update("updated_at", aggregate.UpdatedAt().UTC())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return nil
}

func positionOf(aggregate *order.Order, serviceID kernel.UUID) (int, error) {
	for i, s := range aggregate.Services() {
		if s.ID().IsEqual(serviceID) {
			return i, nil
		}
	}
	return 0, errs.NewObjectNotFoundError("service", serviceID.String())
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
