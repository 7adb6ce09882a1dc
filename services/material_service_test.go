package services

import (
	"testing"

	"codezest/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func articleInput(moduleID uint) *MaterialInput {
	return &MaterialInput{
		ModuleID: moduleID,
		Title:    "Understanding Slices",
		Type:     models.MaterialTypeArticle,
		Content:  "Slices are views over arrays...",
		Order:    1,
	}
}

func TestCreateMaterial(t *testing.T) {
	db := newTestDB(t)
	module := seedModule(t, db)
	svc := NewMaterialService(db)

	material, err := svc.Create(testCtx, articleInput(module.ID))
	require.NoError(t, err)
	assert.Equal(t, models.MaterialTypeArticle, material.Type)
	require.NotNil(t, material.Module)
	assert.Equal(t, module.ID, material.Module.ID)
}

func TestCreateMaterial_VideoRules(t *testing.T) {
	db := newTestDB(t)
	module := seedModule(t, db)
	svc := NewMaterialService(db)

	input := articleInput(module.ID)
	input.Type = models.MaterialTypeVideo
	input.Content = "not a url"

	_, err := svc.Create(testCtx, input)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "duration")
	assert.Contains(t, verr.Fields, "content")

	input.Content = "https://videos.example.com/slices.mp4"
	input.Duration = intPtr(12)
	material, err := svc.Create(testCtx, input)
	require.NoError(t, err)
	require.NotNil(t, material.Duration)
	assert.Equal(t, 12, *material.Duration)
}

func TestCreateMaterial_UnknownType(t *testing.T) {
	db := newTestDB(t)
	module := seedModule(t, db)
	svc := NewMaterialService(db)

	input := articleInput(module.ID)
	input.Type = "PODCAST"

	_, err := svc.Create(testCtx, input)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "type")
}

func TestUpdateMaterial(t *testing.T) {
	db := newTestDB(t)
	module := seedModule(t, db)
	svc := NewMaterialService(db)

	material, err := svc.Create(testCtx, articleInput(module.ID))
	require.NoError(t, err)

	input := articleInput(module.ID)
	input.Title = "Understanding Slices, Revised"
	updated, err := svc.Update(testCtx, material.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Understanding Slices, Revised", updated.Title)
}

func TestMaterialList_FilterByModule(t *testing.T) {
	db := newTestDB(t)
	module := seedModule(t, db)
	svc := NewMaterialService(db)

	_, err := svc.Create(testCtx, articleInput(module.ID))
	require.NoError(t, err)

	other := models.Module{LanguageID: module.LanguageID, Title: "Maps", Slug: "maps", Order: 2}
	require.NoError(t, db.Create(&other).Error)

	byModule, err := svc.List(testCtx, MaterialFilter{ModuleID: module.ID})
	require.NoError(t, err)
	assert.Len(t, byModule, 1)

	empty, err := svc.List(testCtx, MaterialFilter{ModuleID: other.ID})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMaterialSoftDelete(t *testing.T) {
	db := newTestDB(t)
	module := seedModule(t, db)
	svc := NewMaterialService(db)

	material, err := svc.Create(testCtx, articleInput(module.ID))
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(testCtx, material.ID))

	_, err = svc.Get(testCtx, material.ID)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}
