package services

import (
	"context"
	"errors"
	"fmt"

	"codezest/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttemptService records graded quiz attempts. Grading happens server-side
// against the stored correct-option sets; clients only submit selections.
type AttemptService struct {
	db      *gorm.DB
	quizzes *QuizService
}

func NewAttemptService(db *gorm.DB, quizzes *QuizService) *AttemptService {
	return &AttemptService{db: db, quizzes: quizzes}
}

type AttemptInput struct {
	Answers []AnswerInput `json:"answers" binding:"required"`
}

type AnswerInput struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	OptionIDs  []uint `json:"optionIds"`
}

func (s *AttemptService) Submit(ctx context.Context, quizID, userID uint, req *AttemptInput) (*models.QuizAttempt, error) {
	quiz, err := s.quizzes.Fetch(ctx, quizID)
	if err != nil {
		return nil, err
	}

	if err := validateAttemptInput(quiz, req); err != nil {
		return nil, err
	}

	selected := make(map[uint][]uint, len(req.Answers))
	for _, ans := range req.Answers {
		selected[ans.QuestionID] = ans.OptionIDs
	}

	var score, maxScore int
	answers := make(models.GradedAnswers, 0, len(quiz.Questions))
	for _, question := range quiz.Questions {
		maxScore += question.Points

		correct := make(map[uint]bool)
		for _, opt := range question.Options {
			if opt.IsCorrect {
				correct[opt.ID] = true
			}
		}

		picked := selected[question.ID]
		// A question counts only when the picked set equals the correct set;
		// partial credit is not awarded.
		isCorrect := len(picked) == len(correct)
		for _, id := range picked {
			if !correct[id] {
				isCorrect = false
			}
		}

		earned := 0
		if isCorrect {
			earned = question.Points
			score += earned
		}
		answers = append(answers, models.GradedAnswer{
			QuestionID:     question.ID,
			SelectedIDs:    picked,
			Correct:        isCorrect,
			PointsEarned:   earned,
			PointsPossible: question.Points,
		})
	}

	percent := 0
	if maxScore > 0 {
		percent = (score*100 + maxScore/2) / maxScore
	}

	attempt := models.QuizAttempt{
		PublicID: uuid.NewString(),
		QuizID:   quizID,
		UserID:   userID,
		Score:    score,
		MaxScore: maxScore,
		Percent:  percent,
		Passed:   percent >= quiz.PassingScore,
		Answers:  answers,
	}

	if err := s.db.WithContext(ctx).Create(&attempt).Error; err != nil {
		return nil, persistence("create attempt", err)
	}

	// The quiz's attempt count changed.
	s.quizzes.invalidate(ctx, quizID)
	return &attempt, nil
}

func (s *AttemptService) ListByQuiz(ctx context.Context, quizID uint) ([]models.QuizAttempt, error) {
	var quiz models.Quiz
	if err := s.db.WithContext(ctx).First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("quiz")
		}
		return nil, persistence("load quiz", err)
	}

	attempts := make([]models.QuizAttempt, 0)
	err := s.db.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("created_at DESC, id DESC").
		Find(&attempts).Error
	if err != nil {
		return nil, persistence("list attempts", err)
	}
	return attempts, nil
}

func validateAttemptInput(quiz *models.Quiz, req *AttemptInput) error {
	errs := fieldErrors{}

	if len(req.Answers) == 0 {
		errs.add("answers", "At least one answer is required")
	}

	known := make(map[uint]map[uint]bool, len(quiz.Questions))
	for _, question := range quiz.Questions {
		opts := make(map[uint]bool, len(question.Options))
		for _, opt := range question.Options {
			opts[opt.ID] = true
		}
		known[question.ID] = opts
	}

	seen := make(map[uint]bool, len(req.Answers))
	for i, ans := range req.Answers {
		field := fmt.Sprintf("answers[%d]", i)
		opts, ok := known[ans.QuestionID]
		if !ok {
			errs.add(field+".questionId", "Question does not belong to this quiz")
			continue
		}
		if seen[ans.QuestionID] {
			errs.add(field+".questionId", "Question answered more than once")
		}
		seen[ans.QuestionID] = true
		for _, optID := range ans.OptionIDs {
			if !opts[optID] {
				errs.add(field+".optionIds", "Option does not belong to this question")
				break
			}
		}
	}

	return errs.err()
}
