package services

import (
	"context"

	"codezest/models"

	"gorm.io/gorm"
)

type LanguageService struct {
	db *gorm.DB
}

func NewLanguageService(db *gorm.DB) *LanguageService {
	return &LanguageService{db: db}
}

// ListActive returns the languages offered for dropdown selection.
func (s *LanguageService) ListActive(ctx context.Context) ([]models.ProgrammingLanguage, error) {
	languages := make([]models.ProgrammingLanguage, 0)
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&languages).Error
	if err != nil {
		return nil, persistence("list languages", err)
	}
	return languages, nil
}
