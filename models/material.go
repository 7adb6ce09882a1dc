package models

import (
	"time"

	"gorm.io/gorm"
)

// Material types.
const (
	MaterialTypeVideo       = "VIDEO"
	MaterialTypeArticle     = "ARTICLE"
	MaterialTypeCodeExample = "CODE_EXAMPLE"
	MaterialTypeInteractive = "INTERACTIVE"
)

type Material struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	ModuleID  uint           `json:"moduleId" gorm:"not null;index"`
	Title     string         `json:"title" gorm:"not null"`
	Type      string         `json:"type" gorm:"not null"`
	Content   string         `json:"content" gorm:"not null"` // URL for VIDEO/INTERACTIVE, body otherwise
	Duration  *int           `json:"duration"`                // minutes, required for VIDEO
	Order     int            `json:"order" gorm:"not null"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Module *Module `json:"module,omitempty"`
}
