package services

import (
	"testing"

	"codezest/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func arraysQuizInput(moduleID uint) *QuizInput {
	return &QuizInput{
		ModuleID:     moduleID,
		Title:        "Arrays 101",
		PassingScore: intPtr(70),
		Questions: []QuestionInput{
			{
				Question: "What is index 0?",
				Order:    1,
				Options: []OptionInput{
					{OptionText: "First element", IsCorrect: true, Order: 1},
					{OptionText: "Second element", IsCorrect: false, Order: 2},
				},
			},
		},
	}
}

func TestCreateQuiz(t *testing.T) {
	db := newTestDB(t)
	module := seedModule(t, db)
	svc := NewQuizService(db, nil)

	quiz, err := svc.Create(testCtx, arraysQuizInput(module.ID))
	require.NoError(t, err)
	require.NotZero(t, quiz.ID)

	fetched, err := svc.Fetch(testCtx, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, "Arrays 101", fetched.Title)
	assert.Equal(t, 70, fetched.PassingScore)
	require.Len(t, fetched.Questions, 1)
	assert.Equal(t, int64(1), fetched.QuestionCount)

	question := fetched.Questions[0]
	assert.Equal(t, "What is index 0?", question.Question)
	assert.Equal(t, 1, question.Points) // default
	require.Len(t, question.Options, 2)
	assert.Equal(t, "First element", question.Options[0].OptionText)
	assert.True(t, question.Options[0].IsCorrect)
	assert.False(t, question.Options[1].IsCorrect)
}

func TestCreateQuiz_DefaultsApplied(t *testing.T) {
	db := newTestDB(t)
	module := seedModule(t, db)
	svc := NewQuizService(db, nil)

	input := arraysQuizInput(module.ID)
	input.PassingScore = nil
	input.Questions[0].Points = nil

	quiz, err := svc.Create(testCtx, input)
	require.NoError(t, err)
	assert.Equal(t, 70, quiz.PassingScore)
	assert.Equal(t, 1, quiz.Questions[0].Points)
}

func TestCreateQuiz_ModuleNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db, nil)

	_, err := svc.Create(testCtx, arraysQuizInput(999))
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "module", nf.Resource)
}

func TestCreateQuiz_OptionCountRejected(t *testing.T) {
	db := newTestDB(t)
	module := seedModule(t, db)
	svc := NewQuizService(db, nil)

	cases := map[string]int{
		"one option":    1,
		"seven options": 7,
	}
	for name, count := range cases {
		t.Run(name, func(t *testing.T) {
			input := arraysQuizInput(module.ID)
			opts := make([]OptionInput, count)
			for i := range opts {
				opts[i] = OptionInput{OptionText: "Option", IsCorrect: i == 0, Order: i + 1}
			}
			input.Questions[0].Options = opts

			_, err := svc.Create(testCtx, input)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, "questions[0].options")

			// Nothing was persisted.
			var quizzes, questions, options int64
			require.NoError(t, db.Model(&models.Quiz{}).Count(&quizzes).Error)
			require.NoError(t, db.Model(&models.Question{}).Count(&questions).Error)
			require.NoError(t, db.Model(&models.Option{}).Count(&options).Error)
			assert.Zero(t, quizzes)
			assert.Zero(t, questions)
			assert.Zero(t, options)
		})
	}
}

func TestCreateQuiz_NoCorrectOptionRejected(t *testing.T) {
	db := newTestDB(t)
	module := seedModule(t, db)
	svc := NewQuizService(db, nil)

	input := arraysQuizInput(module.ID)
	for i := range input.Questions[0].Options {
		input.Questions[0].Options[i].IsCorrect = false
	}

	_, err := svc.Create(testCtx, input)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "At least one option must be marked as correct", verr.Fields["questions[0].options"])
}

func TestCreateQuiz_MultipleCorrectAllowed(t *testing.T) {
	db := newTestDB(t)
	module := seedModule(t, db)
	svc := NewQuizService(db, nil)

	input := arraysQuizInput(module.ID)
	input.Questions[0].Options[1].IsCorrect = true

	quiz, err := svc.Create(testCtx, input)
	require.NoError(t, err)
	assert.True(t, quiz.Questions[0].Options[0].IsCorrect)
	assert.True(t, quiz.Questions[0].Options[1].IsCorrect)
}

func TestCreateQuiz_FieldRanges(t *testing.T) {
	db := newTestDB(t)
	module := seedModule(t, db)
	svc := NewQuizService(db, nil)

	input := arraysQuizInput(module.ID)
	input.Title = "ab"
	input.PassingScore = intPtr(101)
	input.TimeLimit = intPtr(0)
	input.Questions[0].Question = "hey"
	input.Questions[0].Points = intPtr(0)

	_, err := svc.Create(testCtx, input)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "passingScore")
	assert.Contains(t, verr.Fields, "timeLimit")
	assert.Contains(t, verr.Fields, "questions[0].question")
	assert.Contains(t, verr.Fields, "questions[0].points")
}

func TestReplaceQuiz(t *testing.T) {
	db := newTestDB(t)
	module := seedModule(t, db)
	svc := NewQuizService(db, nil)

	quiz, err := svc.Create(testCtx, arraysQuizInput(module.ID))
	require.NoError(t, err)

	replacement := &QuizInput{
		ModuleID:     module.ID,
		Title:        "Arrays 102",
		Description:  "Slices edition",
		PassingScore: intPtr(80),
		TimeLimit:    intPtr(15),
		Questions: []QuestionInput{
			{
				Question: "What does len return?",
				Order:    1,
				Points:   intPtr(2),
				Options: []OptionInput{
					{OptionText: "Element count", IsCorrect: true, Order: 1},
					{OptionText: "Capacity", IsCorrect: false, Order: 2},
					{OptionText: "Byte size", IsCorrect: false, Order: 3},
				},
			},
			{
				Question: "What does cap return?",
				Order:    2,
				Options: []OptionInput{
					{OptionText: "Capacity", IsCorrect: true, Order: 1},
					{OptionText: "Element count", IsCorrect: false, Order: 2},
				},
			},
		},
	}

	updated, err := svc.Replace(testCtx, quiz.ID, replacement)
	require.NoError(t, err)
	assert.Equal(t, quiz.ID, updated.ID)
	assert.Equal(t, "Arrays 102", updated.Title)
	assert.Equal(t, 80, updated.PassingScore)
	require.NotNil(t, updated.TimeLimit)
	assert.Equal(t, 15, *updated.TimeLimit)

	// The old tree is gone entirely; only the new questions remain.
	fetched, err := svc.Fetch(testCtx, quiz.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Questions, 2)
	assert.Equal(t, "What does len return?", fetched.Questions[0].Question)
	assert.Equal(t, 2, fetched.Questions[0].Points)
	assert.Len(t, fetched.Questions[0].Options, 3)
	assert.Equal(t, "What does cap return?", fetched.Questions[1].Question)

	for _, q := range fetched.Questions {
		assert.NotEqual(t, "What is index 0?", q.Question)
	}
}

func TestReplaceQuiz_EmptyQuestionsRejected(t *testing.T) {
	db := newTestDB(t)
	module := seedModule(t, db)
	svc := NewQuizService(db, nil)

	quiz, err := svc.Create(testCtx, arraysQuizInput(module.ID))
	require.NoError(t, err)

	input := arraysQuizInput(module.ID)
	input.Questions = nil

	_, err = svc.Replace(testCtx, quiz.ID, input)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Quiz must have at least 1 question", verr.Fields["questions"])

	// Original tree untouched.
	fetched, err := svc.Fetch(testCtx, quiz.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Questions, 1)
	assert.Equal(t, "What is index 0?", fetched.Questions[0].Question)
}

func TestReplaceQuiz_BadModuleRollsBack(t *testing.T) {
	db := newTestDB(t)
	module := seedModule(t, db)
	svc := NewQuizService(db, nil)

	quiz, err := svc.Create(testCtx, arraysQuizInput(module.ID))
	require.NoError(t, err)

	input := arraysQuizInput(module.ID)
	input.ModuleID = 999
	input.Title = "Should not stick"

	_, err = svc.Replace(testCtx, quiz.ID, input)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	fetched, err := svc.Fetch(testCtx, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, "Arrays 101", fetched.Title)
	require.Len(t, fetched.Questions, 1)
}

func TestReplaceQuiz_NotFound(t *testing.T) {
	db := newTestDB(t)
	module := seedModule(t, db)
	svc := NewQuizService(db, nil)

	_, err := svc.Replace(testCtx, 42, arraysQuizInput(module.ID))
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "quiz", nf.Resource)
}

func TestOrderPreservation(t *testing.T) {
	db := newTestDB(t)
	module := seedModule(t, db)
	svc := NewQuizService(db, nil)

	input := &QuizInput{
		ModuleID: module.ID,
		Title:    "Ordering",
		Questions: []QuestionInput{
			{
				Question: "Third question here",
				Order:    30,
				Options: []OptionInput{
					{OptionText: "B", Order: 20},
					{OptionText: "A", IsCorrect: true, Order: 10},
				},
			},
			{
				Question: "First question here",
				Order:    10,
				Options: []OptionInput{
					{OptionText: "Yes", IsCorrect: true, Order: 1},
					{OptionText: "No", Order: 2},
				},
			},
			// Same order value as the first submitted question: insertion
			// sequence decides, so this one sorts after it.
			{
				Question: "Fourth question here",
				Order:    30,
				Options: []OptionInput{
					{OptionText: "Yes", IsCorrect: true, Order: 1},
					{OptionText: "No", Order: 2},
				},
			},
		},
	}

	quiz, err := svc.Create(testCtx, input)
	require.NoError(t, err)

	fetched, err := svc.Fetch(testCtx, quiz.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Questions, 3)
	assert.Equal(t, "First question here", fetched.Questions[0].Question)
	assert.Equal(t, "Third question here", fetched.Questions[1].Question)
	assert.Equal(t, "Fourth question here", fetched.Questions[2].Question)

	opts := fetched.Questions[1].Options
	require.Len(t, opts, 2)
	assert.Equal(t, "A", opts[0].OptionText)
	assert.Equal(t, "B", opts[1].OptionText)
}

func TestSoftDelete(t *testing.T) {
	db := newTestDB(t)
	module := seedModule(t, db)
	svc := NewQuizService(db, nil)

	quiz, err := svc.Create(testCtx, arraysQuizInput(module.ID))
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(testCtx, quiz.ID))

	_, err = svc.Fetch(testCtx, quiz.ID)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	quizzes, err := svc.List(testCtx, QuizFilter{})
	require.NoError(t, err)
	assert.Empty(t, quizzes)

	// Second delete: a soft-deleted quiz is indistinguishable from a
	// missing one.
	err = svc.SoftDelete(testCtx, quiz.ID)
	require.ErrorAs(t, err, &nf)

	// Child rows stay in storage.
	var questions int64
	require.NoError(t, db.Unscoped().Model(&models.Question{}).Count(&questions).Error)
	assert.Equal(t, int64(1), questions)
}

func TestListQuizzes(t *testing.T) {
	db := newTestDB(t)
	module := seedModule(t, db)
	svc := NewQuizService(db, nil)

	other := models.Module{LanguageID: module.LanguageID, Title: "Maps", Slug: "maps", Order: 2}
	require.NoError(t, db.Create(&other).Error)

	first, err := svc.Create(testCtx, arraysQuizInput(module.ID))
	require.NoError(t, err)

	input := arraysQuizInput(other.ID)
	input.Title = "Map Basics"
	second, err := svc.Create(testCtx, input)
	require.NoError(t, err)

	all, err := svc.List(testCtx, QuizFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Newest first.
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
	// Summary view: counts but no tree.
	assert.Equal(t, int64(1), all[0].QuestionCount)
	assert.Empty(t, all[0].Questions)

	byModule, err := svc.List(testCtx, QuizFilter{ModuleID: other.ID})
	require.NoError(t, err)
	require.Len(t, byModule, 1)
	assert.Equal(t, "Map Basics", byModule[0].Title)

	bySearch, err := svc.List(testCtx, QuizFilter{Search: "aRrAyS"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "Arrays 101", bySearch[0].Title)

	none, err := svc.List(testCtx, QuizFilter{Search: "pointers"})
	require.NoError(t, err)
	assert.Empty(t, none)
}
