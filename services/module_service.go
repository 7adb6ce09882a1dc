package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"codezest/models"

	"gorm.io/gorm"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

type ModuleService struct {
	db *gorm.DB
}

func NewModuleService(db *gorm.DB) *ModuleService {
	return &ModuleService{db: db}
}

type ModuleInput struct {
	LanguageID  uint   `json:"languageId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
	Syllabus    string `json:"syllabus"`
	Order       int    `json:"order" binding:"required"`
}

type ModuleFilter struct {
	LanguageID uint
	Search     string
}

func validateModuleInput(in *ModuleInput) error {
	errs := fieldErrors{}

	if in.LanguageID == 0 {
		errs.add("languageId", "Please select a valid programming language")
	}
	title := strings.TrimSpace(in.Title)
	if len(title) < 3 {
		errs.add("title", "Title must be at least 3 characters")
	} else if len(title) > 100 {
		errs.add("title", "Title must not exceed 100 characters")
	}
	if len(in.Slug) < 3 {
		errs.add("slug", "Slug must be at least 3 characters")
	} else if len(in.Slug) > 100 {
		errs.add("slug", "Slug must not exceed 100 characters")
	} else if !slugPattern.MatchString(in.Slug) {
		errs.add("slug", "Slug must contain only lowercase letters, numbers, and hyphens")
	}
	if len(in.Description) > 500 {
		errs.add("description", "Description must not exceed 500 characters")
	}
	if in.Order <= 0 {
		errs.add("order", "Order must be a positive number")
	}

	return errs.err()
}

func (s *ModuleService) Create(ctx context.Context, req *ModuleInput) (*models.Module, error) {
	if err := validateModuleInput(req); err != nil {
		return nil, err
	}
	if err := s.checkLanguage(ctx, req.LanguageID); err != nil {
		return nil, err
	}
	if err := s.checkSlug(ctx, req.LanguageID, req.Slug, 0); err != nil {
		return nil, err
	}

	module := models.Module{
		LanguageID:  req.LanguageID,
		Title:       strings.TrimSpace(req.Title),
		Slug:        req.Slug,
		Description: req.Description,
		Syllabus:    req.Syllabus,
		Order:       req.Order,
	}

	if err := s.db.WithContext(ctx).Create(&module).Error; err != nil {
		return nil, persistence("create module", err)
	}

	return s.Get(ctx, module.ID)
}

func (s *ModuleService) Get(ctx context.Context, moduleID uint) (*models.Module, error) {
	var module models.Module
	err := s.db.WithContext(ctx).Preload("Language").First(&module, moduleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("module")
		}
		return nil, persistence("fetch module", err)
	}

	if err := s.fillCounts(ctx, &module); err != nil {
		return nil, err
	}
	return &module, nil
}

func (s *ModuleService) List(ctx context.Context, filter ModuleFilter) ([]models.Module, error) {
	q := s.db.WithContext(ctx).Model(&models.Module{}).Preload("Language")
	if filter.LanguageID != 0 {
		q = q.Where("language_id = ?", filter.LanguageID)
	}
	if filter.Search != "" {
		needle := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", needle, needle)
	}

	modules := make([]models.Module, 0)
	if err := q.Order(`"order" ASC, created_at DESC`).Find(&modules).Error; err != nil {
		return nil, persistence("list modules", err)
	}

	for i := range modules {
		if err := s.fillCounts(ctx, &modules[i]); err != nil {
			return nil, err
		}
	}
	return modules, nil
}

func (s *ModuleService) Update(ctx context.Context, moduleID uint, req *ModuleInput) (*models.Module, error) {
	if err := validateModuleInput(req); err != nil {
		return nil, err
	}

	var module models.Module
	if err := s.db.WithContext(ctx).First(&module, moduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("module")
		}
		return nil, persistence("load module", err)
	}

	if err := s.checkLanguage(ctx, req.LanguageID); err != nil {
		return nil, err
	}
	if err := s.checkSlug(ctx, req.LanguageID, req.Slug, moduleID); err != nil {
		return nil, err
	}

	module.LanguageID = req.LanguageID
	module.Title = strings.TrimSpace(req.Title)
	module.Slug = req.Slug
	module.Description = req.Description
	module.Syllabus = req.Syllabus
	module.Order = req.Order

	if err := s.db.WithContext(ctx).Save(&module).Error; err != nil {
		return nil, persistence("update module", err)
	}

	return s.Get(ctx, moduleID)
}

func (s *ModuleService) SoftDelete(ctx context.Context, moduleID uint) error {
	var module models.Module
	if err := s.db.WithContext(ctx).First(&module, moduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("module")
		}
		return persistence("load module", err)
	}

	if err := s.db.WithContext(ctx).Delete(&models.Module{}, moduleID).Error; err != nil {
		return persistence("delete module", err)
	}
	return nil
}

func (s *ModuleService) checkLanguage(ctx context.Context, languageID uint) error {
	var lang models.ProgrammingLanguage
	err := s.db.WithContext(ctx).First(&lang, languageID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("programming language")
		}
		return persistence("load language", err)
	}
	return nil
}

// checkSlug enforces slug uniqueness per language among live modules.
// excludeID skips the module being updated.
func (s *ModuleService) checkSlug(ctx context.Context, languageID uint, slug string, excludeID uint) error {
	q := s.db.WithContext(ctx).Model(&models.Module{}).
		Where("language_id = ? AND slug = ?", languageID, slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return persistence("check slug", err)
	}
	if count > 0 {
		return &ConflictError{Message: "A module with this slug already exists for this language"}
	}
	return nil
}

func (s *ModuleService) fillCounts(ctx context.Context, module *models.Module) error {
	if err := s.db.WithContext(ctx).Model(&models.Material{}).
		Where("module_id = ?", module.ID).Count(&module.MaterialCount).Error; err != nil {
		return persistence("count materials", err)
	}
	if err := s.db.WithContext(ctx).Model(&models.Quiz{}).
		Where("module_id = ?", module.ID).Count(&module.QuizCount).Error; err != nil {
		return persistence("count quizzes", err)
	}
	return nil
}
