package models

import (
	"time"

	"gorm.io/gorm"
)

type Quiz struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	ModuleID     uint           `json:"moduleId" gorm:"not null;index"`
	Title        string         `json:"title" gorm:"not null"`
	Description  string         `json:"description"`
	PassingScore int            `json:"passingScore" gorm:"not null;default:70"` // percent
	TimeLimit    *int           `json:"timeLimit"`                               // minutes
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Module    *Module    `json:"module,omitempty"`
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID"`

	// Aggregate counts, filled by the service on reads.
	QuestionCount int64 `json:"questionCount" gorm:"-"`
	AttemptCount  int64 `json:"attemptCount" gorm:"-"`
}
