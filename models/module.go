package models

import (
	"time"

	"gorm.io/gorm"
)

type Module struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	LanguageID  uint           `json:"languageId" gorm:"not null;index"`
	Title       string         `json:"title" gorm:"not null"`
	Slug        string         `json:"slug" gorm:"not null;index"`
	Description string         `json:"description"`
	Syllabus    string         `json:"syllabus"`
	Order       int            `json:"order" gorm:"not null"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Language  *ProgrammingLanguage `json:"language,omitempty" gorm:"foreignKey:LanguageID"`
	Materials []Material           `json:"materials,omitempty" gorm:"foreignKey:ModuleID"`
	Quizzes   []Quiz               `json:"quizzes,omitempty" gorm:"foreignKey:ModuleID"`

	// Aggregate counts, filled by the service on reads.
	MaterialCount int64 `json:"materialCount" gorm:"-"`
	QuizCount     int64 `json:"quizCount" gorm:"-"`
}
