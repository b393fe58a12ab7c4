package models

import (
	"time"

	"github.com/userdesk/userdesk-backend/pkg/enums"
)

// User is the managed entity. Soft deletion is an explicit flag rather than
// gorm.DeletedAt: deleted rows stay addressable for includeDeleted reads and
// restore, and visibility is owned by the list query pipeline.
type User struct {
	ID            uint          `gorm:"primaryKey"`
	FullName      string        `gorm:"column:full_name;type:varchar(255);not null"`
	Email         string        `gorm:"type:varchar(255);not null;uniqueIndex"`
	ContactNumber *string       `gorm:"column:contact_number;type:varchar(50)"`
	Gender        *enums.Gender `gorm:"type:varchar(10)"`
	IsDeleted     bool          `gorm:"column:is_deleted;not null;default:false"`
	CreatedAt     time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table name regardless of pluralization settings.
func (User) TableName() string { return "users" }
