package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// GradedAnswer records how a single question was answered and scored.
type GradedAnswer struct {
	QuestionID     uint   `json:"questionId"`
	SelectedIDs    []uint `json:"selectedIds"`
	Correct        bool   `json:"correct"`
	PointsEarned   int    `json:"pointsEarned"`
	PointsPossible int    `json:"pointsPossible"`
}

// GradedAnswers is stored as a JSON column.
type GradedAnswers []GradedAnswer

func (a GradedAnswers) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *GradedAnswers) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	case nil:
		*a = nil
		return nil
	default:
		return errors.New("unsupported type for GradedAnswers")
	}
}

type QuizAttempt struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	PublicID  string         `json:"publicId" gorm:"not null;uniqueIndex"`
	QuizID    uint           `json:"quizId" gorm:"not null;index"`
	UserID    uint           `json:"userId" gorm:"not null;index"`
	Score     int            `json:"score"`
	MaxScore  int            `json:"maxScore"`
	Percent   int            `json:"percent"`
	Passed    bool           `json:"passed"`
	Answers   GradedAnswers  `json:"answers" gorm:"type:text"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
