package postgres

import (
	"labflow/internal/adapters/out/postgres/orderrepo"
	"labflow/internal/adapters/out/postgres/userrepo"

	"gorm.io/gorm"
)

// Migrate creates or alters the users, orders and order_services tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&userrepo.UserDTO{}, &orderrepo.OrderDTO{}, &orderrepo.ServiceDTO{})
}
