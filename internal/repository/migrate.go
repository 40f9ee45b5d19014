package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates every table this package owns. Used by the
// seed binary and by tests running against sqlite.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&clientModel{},
		&adminModel{},
		&sessionModel{},
		&passwordResetModel{},
		&categoryModel{},
		&productModel{},
		&variantModel{},
		&cartModel{},
		&cartItemModel{},
		&orderModel{},
		&orderItemModel{},
	)
}
