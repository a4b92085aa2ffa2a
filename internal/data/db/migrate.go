package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/pestops-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(types.AllModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return EnsureAppointmentIndexes(db)
}

// EnsureAppointmentIndexes adds the composite indexes gorm tags cannot express.
// The statements are valid on both Postgres and SQLite.
func EnsureAppointmentIndexes(db *gorm.DB) error {
	// Previous-appointment resolution walks this order.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_appointment_project_order
		ON appointment (project_id, due_date, created_at, id);
	`).Error; err != nil {
		return fmt.Errorf("create idx_appointment_project_order: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_treatment_product_owner_position
		ON treatment_product (appointment_id, position);
	`).Error; err != nil {
		return fmt.Errorf("create idx_treatment_product_owner_position: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_rodent_area_owner_position
		ON rodent_area (rodent_register_id, position);
	`).Error; err != nil {
		return fmt.Errorf("create idx_rodent_area_owner_position: %w", err)
	}
	return nil
}
