package models

import (
	"time"

	"gorm.io/gorm"
)

type ProgrammingLanguage struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null"`
	Slug      string         `json:"slug" gorm:"not null;uniqueIndex"`
	Icon      string         `json:"icon"`
	IsActive  bool           `json:"isActive" gorm:"not null;default:true"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Modules []Module `json:"modules,omitempty" gorm:"foreignKey:LanguageID"`
}
