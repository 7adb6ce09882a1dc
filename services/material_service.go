package services

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"codezest/models"

	"gorm.io/gorm"
)

var materialTypes = map[string]bool{
	models.MaterialTypeVideo:       true,
	models.MaterialTypeArticle:     true,
	models.MaterialTypeCodeExample: true,
	models.MaterialTypeInteractive: true,
}

type MaterialService struct {
	db *gorm.DB
}

func NewMaterialService(db *gorm.DB) *MaterialService {
	return &MaterialService{db: db}
}

type MaterialInput struct {
	ModuleID uint   `json:"moduleId" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Type     string `json:"type" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Duration *int   `json:"duration"`
	Order    int    `json:"order" binding:"required"`
}

type MaterialFilter struct {
	ModuleID uint
	Search   string
}

func validateMaterialInput(in *MaterialInput) error {
	errs := fieldErrors{}

	if in.ModuleID == 0 {
		errs.add("moduleId", "Please select a valid module")
	}
	title := strings.TrimSpace(in.Title)
	if len(title) < 3 {
		errs.add("title", "Title must be at least 3 characters")
	} else if len(title) > 200 {
		errs.add("title", "Title must not exceed 200 characters")
	}
	if !materialTypes[in.Type] {
		errs.add("type", "Please select a material type")
	}
	if strings.TrimSpace(in.Content) == "" {
		errs.add("content", "Content is required")
	}
	if in.Duration != nil && *in.Duration <= 0 {
		errs.add("duration", "Duration must be positive")
	}
	if in.Order <= 0 {
		errs.add("order", "Order must be a positive number")
	}

	// Videos need a duration; video and interactive content must be a URL.
	if in.Type == models.MaterialTypeVideo && in.Duration == nil {
		errs.add("duration", "Duration is required for video materials")
	}
	if in.Type == models.MaterialTypeVideo || in.Type == models.MaterialTypeInteractive {
		if u, err := url.Parse(in.Content); err != nil || u.Scheme == "" || u.Host == "" {
			errs.add("content", "Content must be a valid URL for video and interactive materials")
		}
	}

	return errs.err()
}

func (s *MaterialService) Create(ctx context.Context, req *MaterialInput) (*models.Material, error) {
	if err := validateMaterialInput(req); err != nil {
		return nil, err
	}
	if err := s.checkModule(ctx, req.ModuleID); err != nil {
		return nil, err
	}

	material := models.Material{
		ModuleID: req.ModuleID,
		Title:    strings.TrimSpace(req.Title),
		Type:     req.Type,
		Content:  req.Content,
		Duration: req.Duration,
		Order:    req.Order,
	}

	if err := s.db.WithContext(ctx).Create(&material).Error; err != nil {
		return nil, persistence("create material", err)
	}

	return s.Get(ctx, material.ID)
}

func (s *MaterialService) Get(ctx context.Context, materialID uint) (*models.Material, error) {
	var material models.Material
	err := s.db.WithContext(ctx).Preload("Module").First(&material, materialID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("material")
		}
		return nil, persistence("fetch material", err)
	}
	return &material, nil
}

func (s *MaterialService) List(ctx context.Context, filter MaterialFilter) ([]models.Material, error) {
	q := s.db.WithContext(ctx).Model(&models.Material{}).Preload("Module")
	if filter.ModuleID != 0 {
		q = q.Where("module_id = ?", filter.ModuleID)
	}
	if filter.Search != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	materials := make([]models.Material, 0)
	if err := q.Order(`"order" ASC, created_at DESC`).Find(&materials).Error; err != nil {
		return nil, persistence("list materials", err)
	}
	return materials, nil
}

func (s *MaterialService) Update(ctx context.Context, materialID uint, req *MaterialInput) (*models.Material, error) {
	if err := validateMaterialInput(req); err != nil {
		return nil, err
	}

	var material models.Material
	if err := s.db.WithContext(ctx).First(&material, materialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("material")
		}
		return nil, persistence("load material", err)
	}

	if err := s.checkModule(ctx, req.ModuleID); err != nil {
		return nil, err
	}

	material.ModuleID = req.ModuleID
	material.Title = strings.TrimSpace(req.Title)
	material.Type = req.Type
	material.Content = req.Content
	material.Duration = req.Duration
	material.Order = req.Order

	if err := s.db.WithContext(ctx).Save(&material).Error; err != nil {
		return nil, persistence("update material", err)
	}

	return s.Get(ctx, materialID)
}

func (s *MaterialService) SoftDelete(ctx context.Context, materialID uint) error {
	var material models.Material
	if err := s.db.WithContext(ctx).First(&material, materialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("material")
		}
		return persistence("load material", err)
	}

	if err := s.db.WithContext(ctx).Delete(&models.Material{}, materialID).Error; err != nil {
		return persistence("delete material", err)
	}
	return nil
}

func (s *MaterialService) checkModule(ctx context.Context, moduleID uint) error {
	var module models.Module
	err := s.db.WithContext(ctx).First(&module, moduleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("module")
		}
		return persistence("load module", err)
	}
	return nil
}
