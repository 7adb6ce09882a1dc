package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"codezest/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const quizCacheTTL = 5 * time.Minute

// QuizService owns the Quiz/Question/Option aggregate. All multi-row writes
// go through a single transaction so a reader never observes a quiz with a
// partially written question tree.
type QuizService struct {
	db  *gorm.DB
	rdb *redis.Client // optional; nil disables the fetch cache
}

func NewQuizService(db *gorm.DB, rdb *redis.Client) *QuizService {
	return &QuizService{db: db, rdb: rdb}
}

type QuizInput struct {
	ModuleID     uint            `json:"moduleId" binding:"required"`
	Title        string          `json:"title" binding:"required"`
	Description  string          `json:"description"`
	PassingScore *int            `json:"passingScore"`
	TimeLimit    *int            `json:"timeLimit"`
	Questions    []QuestionInput `json:"questions" binding:"required"`
}

type QuestionInput struct {
	Question    string        `json:"question" binding:"required"`
	Explanation string        `json:"explanation"`
	Order       int           `json:"order"`
	Points      *int          `json:"points"`
	Options     []OptionInput `json:"options" binding:"required"`
}

type OptionInput struct {
	OptionText string `json:"optionText" binding:"required"`
	IsCorrect  bool   `json:"isCorrect"`
	Order      int    `json:"order"`
}

type QuizFilter struct {
	ModuleID uint
	Search   string
}

// validateQuizInput re-checks everything the HTTP boundary should have
// checked. Runs before the transaction opens, so a rejected input leaves no
// rows behind.
func validateQuizInput(in *QuizInput) error {
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
	if len(in.Description) > 500 {
		errs.add("description", "Description must not exceed 500 characters")
	}
	if in.PassingScore != nil && (*in.PassingScore < 0 || *in.PassingScore > 100) {
		errs.add("passingScore", "Passing score must be between 0 and 100")
	}
	if in.TimeLimit != nil && *in.TimeLimit <= 0 {
		errs.add("timeLimit", "Time limit must be positive")
	}
	if len(in.Questions) < 1 {
		errs.add("questions", "Quiz must have at least 1 question")
	}

	for i, q := range in.Questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		text := strings.TrimSpace(q.Question)
		if len(text) < 5 {
			errs.add(prefix+".question", "Question must be at least 5 characters")
		} else if len(text) > 500 {
			errs.add(prefix+".question", "Question must not exceed 500 characters")
		}
		if len(q.Explanation) > 1000 {
			errs.add(prefix+".explanation", "Explanation must not exceed 1000 characters")
		}
		if q.Points != nil && *q.Points <= 0 {
			errs.add(prefix+".points", "Points must be positive")
		}
		if len(q.Options) < 2 {
			errs.add(prefix+".options", "Each question must have at least 2 options")
		} else if len(q.Options) > 6 {
			errs.add(prefix+".options", "Each question can have at most 6 options")
		}

		hasCorrect := false
		for j, opt := range q.Options {
			if strings.TrimSpace(opt.OptionText) == "" {
				errs.add(fmt.Sprintf("%s.options[%d].optionText", prefix, j), "Option text is required")
			}
			if opt.IsCorrect {
				hasCorrect = true
			}
		}
		if len(q.Options) > 0 && !hasCorrect {
			errs.add(prefix+".options", "At least one option must be marked as correct")
		}
	}

	return errs.err()
}

func (s *QuizService) Create(ctx context.Context, req *QuizInput) (*models.Quiz, error) {
	if err := validateQuizInput(req); err != nil {
		return nil, err
	}
	if err := s.checkModule(ctx, s.db, req.ModuleID); err != nil {
		return nil, err
	}

	// Start transaction
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, persistence("begin transaction", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	quiz := models.Quiz{
		ModuleID:     req.ModuleID,
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		PassingScore: passingScoreOrDefault(req.PassingScore),
		TimeLimit:    req.TimeLimit,
	}

	if err := tx.Create(&quiz).Error; err != nil {
		tx.Rollback()
		return nil, persistence("create quiz", err)
	}

	if err := insertQuestionTree(tx, quiz.ID, req.Questions); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, persistence("commit quiz", err)
	}

	return s.Fetch(ctx, quiz.ID)
}

// Replace updates the quiz scalars and swaps the whole question/option tree
// for the submitted one. Callers resubmit the complete tree on every edit;
// there is no per-question patching.
func (s *QuizService) Replace(ctx context.Context, quizID uint, req *QuizInput) (*models.Quiz, error) {
	if err := validateQuizInput(req); err != nil {
		return nil, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, persistence("begin transaction", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var quiz models.Quiz
	if err := tx.First(&quiz, quizID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("quiz")
		}
		return nil, persistence("load quiz", err)
	}

	if err := s.checkModule(ctx, tx, req.ModuleID); err != nil {
		tx.Rollback()
		return nil, err
	}

	quiz.ModuleID = req.ModuleID
	quiz.Title = strings.TrimSpace(req.Title)
	quiz.Description = req.Description
	quiz.PassingScore = passingScoreOrDefault(req.PassingScore)
	quiz.TimeLimit = req.TimeLimit

	if err := tx.Save(&quiz).Error; err != nil {
		tx.Rollback()
		return nil, persistence("update quiz", err)
	}

	// Remove the old tree. Options go first, while their questions are
	// still visible to the soft-delete subquery.
	liveQuestions := tx.Session(&gorm.Session{NewDB: true}).
		Model(&models.Question{}).Select("id").Where("quiz_id = ?", quizID)
	if err := tx.Where("question_id IN (?)", liveQuestions).Delete(&models.Option{}).Error; err != nil {
		tx.Rollback()
		return nil, persistence("delete options", err)
	}
	if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Question{}).Error; err != nil {
		tx.Rollback()
		return nil, persistence("delete questions", err)
	}

	if err := insertQuestionTree(tx, quiz.ID, req.Questions); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, persistence("commit quiz", err)
	}

	s.invalidate(ctx, quizID)
	return s.Fetch(ctx, quizID)
}

func (s *QuizService) Fetch(ctx context.Context, quizID uint) (*models.Quiz, error) {
	if cached := s.cacheGet(ctx, quizID); cached != nil {
		return cached, nil
	}

	var quiz models.Quiz
	err := s.db.WithContext(ctx).
		Preload("Module").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order(`"order", id`)
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order(`"order", id`)
		}).
		First(&quiz, quizID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("quiz")
		}
		return nil, persistence("fetch quiz", err)
	}

	quiz.QuestionCount = int64(len(quiz.Questions))
	if err := s.db.WithContext(ctx).Model(&models.QuizAttempt{}).
		Where("quiz_id = ?", quizID).Count(&quiz.AttemptCount).Error; err != nil {
		return nil, persistence("count attempts", err)
	}

	s.cacheSet(ctx, &quiz)
	return &quiz, nil
}

// List returns non-deleted quizzes newest first, without question trees.
func (s *QuizService) List(ctx context.Context, filter QuizFilter) ([]models.Quiz, error) {
	q := s.db.WithContext(ctx).Model(&models.Quiz{}).Preload("Module")
	if filter.ModuleID != 0 {
		q = q.Where("module_id = ?", filter.ModuleID)
	}
	if filter.Search != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	quizzes := make([]models.Quiz, 0)
	if err := q.Order("created_at DESC, id DESC").Find(&quizzes).Error; err != nil {
		return nil, persistence("list quizzes", err)
	}

	for i := range quizzes {
		if err := s.db.WithContext(ctx).Model(&models.Question{}).
			Where("quiz_id = ?", quizzes[i].ID).Count(&quizzes[i].QuestionCount).Error; err != nil {
			return nil, persistence("count questions", err)
		}
		if err := s.db.WithContext(ctx).Model(&models.QuizAttempt{}).
			Where("quiz_id = ?", quizzes[i].ID).Count(&quizzes[i].AttemptCount).Error; err != nil {
			return nil, persistence("count attempts", err)
		}
	}
	return quizzes, nil
}

// SoftDelete marks the quiz deleted without touching child rows. A second
// call reports not-found: a soft-deleted quiz looks exactly like a missing
// one to callers.
func (s *QuizService) SoftDelete(ctx context.Context, quizID uint) error {
	var quiz models.Quiz
	if err := s.db.WithContext(ctx).First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("quiz")
		}
		return persistence("load quiz", err)
	}

	if err := s.db.WithContext(ctx).Delete(&models.Quiz{}, quizID).Error; err != nil {
		return persistence("delete quiz", err)
	}

	s.invalidate(ctx, quizID)
	return nil
}

func (s *QuizService) checkModule(ctx context.Context, db *gorm.DB, moduleID uint) error {
	var module models.Module
	err := db.Session(&gorm.Session{NewDB: true}).WithContext(ctx).
		First(&module, moduleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("module")
		}
		return persistence("load module", err)
	}
	return nil
}

// insertQuestionTree writes the question/option rows inside the caller's
// transaction. Order values are stored as submitted; duplicates are allowed
// and reads tie-break on insertion sequence.
func insertQuestionTree(tx *gorm.DB, quizID uint, questions []QuestionInput) error {
	for _, qReq := range questions {
		question := models.Question{
			QuizID:      quizID,
			Question:    strings.TrimSpace(qReq.Question),
			Explanation: qReq.Explanation,
			Order:       qReq.Order,
			Points:      pointsOrDefault(qReq.Points),
		}

		if err := tx.Create(&question).Error; err != nil {
			return persistence("create question", err)
		}

		for _, optReq := range qReq.Options {
			option := models.Option{
				QuestionID: question.ID,
				OptionText: optReq.OptionText,
				IsCorrect:  optReq.IsCorrect,
				Order:      optReq.Order,
			}

			if err := tx.Create(&option).Error; err != nil {
				return persistence("create option", err)
			}
		}
	}
	return nil
}

func passingScoreOrDefault(score *int) int {
	if score == nil {
		return 70
	}
	return *score
}

func pointsOrDefault(points *int) int {
	if points == nil {
		return 1
	}
	return *points
}

func quizCacheKey(quizID uint) string {
	return fmt.Sprintf("quiz:%d", quizID)
}

func (s *QuizService) cacheGet(ctx context.Context, quizID uint) *models.Quiz {
	if s.rdb == nil {
		return nil
	}
	data, err := s.rdb.Get(ctx, quizCacheKey(quizID)).Bytes()
	if err != nil {
		return nil
	}
	var quiz models.Quiz
	if err := json.Unmarshal(data, &quiz); err != nil {
		return nil
	}
	return &quiz
}

func (s *QuizService) cacheSet(ctx context.Context, quiz *models.Quiz) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(quiz)
	if err != nil {
		return
	}
	s.rdb.Set(ctx, quizCacheKey(quiz.ID), data, quizCacheTTL)
}

func (s *QuizService) invalidate(ctx context.Context, quizID uint) {
	if s.rdb == nil {
		return
	}
	s.rdb.Del(ctx, quizCacheKey(quizID))
}
