package services

import (
	"testing"

	"codezest/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func moduleInput(languageID uint) *ModuleInput {
	return &ModuleInput{
		LanguageID: languageID,
		Title:      "Control Flow",
		Slug:       "control-flow",
		Order:      1,
	}
}

func TestCreateModule(t *testing.T) {
	db := newTestDB(t)
	lang := seedLanguage(t, db)
	svc := NewModuleService(db)

	module, err := svc.Create(testCtx, moduleInput(lang.ID))
	require.NoError(t, err)
	assert.Equal(t, "Control Flow", module.Title)
	require.NotNil(t, module.Language)
	assert.Equal(t, "Go", module.Language.Name)
}

func TestCreateModule_SlugConflict(t *testing.T) {
	db := newTestDB(t)
	lang := seedLanguage(t, db)
	svc := NewModuleService(db)

	_, err := svc.Create(testCtx, moduleInput(lang.ID))
	require.NoError(t, err)

	input := moduleInput(lang.ID)
	input.Title = "Control Flow II"
	_, err = svc.Create(testCtx, input)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)

	// Same slug under another language is fine.
	other := models.ProgrammingLanguage{Name: "Rust", Slug: "rust", IsActive: true}
	require.NoError(t, db.Create(&other).Error)
	input.LanguageID = other.ID
	_, err = svc.Create(testCtx, input)
	require.NoError(t, err)
}

func TestCreateModule_Validation(t *testing.T) {
	db := newTestDB(t)
	lang := seedLanguage(t, db)
	svc := NewModuleService(db)

	input := moduleInput(lang.ID)
	input.Title = "ab"
	input.Slug = "Bad Slug!"
	input.Order = 0

	_, err := svc.Create(testCtx, input)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "slug")
	assert.Contains(t, verr.Fields, "order")
}

func TestUpdateModule_KeepOwnSlug(t *testing.T) {
	db := newTestDB(t)
	lang := seedLanguage(t, db)
	svc := NewModuleService(db)

	module, err := svc.Create(testCtx, moduleInput(lang.ID))
	require.NoError(t, err)

	// Re-submitting its own slug must not count as a conflict.
	input := moduleInput(lang.ID)
	input.Title = "Control Flow Revised"
	updated, err := svc.Update(testCtx, module.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Control Flow Revised", updated.Title)
}

func TestModuleList_SearchAndCounts(t *testing.T) {
	db := newTestDB(t)
	lang := seedLanguage(t, db)
	svc := NewModuleService(db)

	module, err := svc.Create(testCtx, moduleInput(lang.ID))
	require.NoError(t, err)

	quizzes := NewQuizService(db, nil)
	_, err = quizzes.Create(testCtx, arraysQuizInput(module.ID))
	require.NoError(t, err)

	found, err := svc.List(testCtx, ModuleFilter{Search: "CONTROL"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, int64(1), found[0].QuizCount)
	assert.Equal(t, int64(0), found[0].MaterialCount)

	none, err := svc.List(testCtx, ModuleFilter{Search: "generics"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestModuleSoftDelete(t *testing.T) {
	db := newTestDB(t)
	lang := seedLanguage(t, db)
	svc := NewModuleService(db)

	module, err := svc.Create(testCtx, moduleInput(lang.ID))
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(testCtx, module.ID))

	_, err = svc.Get(testCtx, module.ID)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	err = svc.SoftDelete(testCtx, module.ID)
	require.ErrorAs(t, err, &nf)
}
