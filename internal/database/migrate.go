package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/phananhtu1998/AI-Agent/internal/model"
)

// AutoMigrate Tự động migrate cấu trúc bảng
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Conversation{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}

	return nil
}
