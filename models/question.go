package models

import (
	"time"

	"gorm.io/gorm"
)

type Question struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	QuizID      uint           `json:"quizId" gorm:"not null;index"`
	Question    string         `json:"question" gorm:"not null"`
	Explanation string         `json:"explanation"` // shown after answering
	Order       int            `json:"order" gorm:"not null"`
	Points      int            `json:"points" gorm:"not null;default:1"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Options []Option `json:"options,omitempty" gorm:"foreignKey:QuestionID"`
}
