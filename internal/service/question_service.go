package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aquaed/aquaed-backend/internal/model"
	"github.com/aquaed/aquaed-backend/internal/repository"
)

// ErrBankViolation marks a question that fails the bank invariants
// (correct answer outside the option set, too few options, duplicates).
var ErrBankViolation = errors.New("question violates bank invariants")

// QuestionService handles admin management of the question bank. Every
// mutation re-validates the quiz invariants and refreshes the Redis bank
// cache so live quizzes draw from the updated pool.
type QuestionService struct {
	repo        *repository.QuestionRepository
	quizService *QuizService
	log         zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(repo *repository.QuestionRepository, quizService *QuizService, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		repo:        repo,
		quizService: quizService,
		log:         log.With().Str("component", "question_service").Logger(),
	}
}

// List returns every bank question, active or not.
func (s *QuestionService) List(ctx context.Context) ([]model.Question, error) {
	return s.repo.ListAll(ctx)
}

// Create validates and inserts a new question, then refreshes the bank cache.
func (s *QuestionService) Create(ctx context.Context, q *model.Question) error {
	if err := q.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrBankViolation, err)
	}
	if err := s.repo.Create(ctx, q); err != nil {
		return fmt.Errorf("create question: %w", err)
	}
	s.refreshCache(ctx)
	return nil
}

// Update validates and rewrites an existing question, then refreshes the cache.
func (s *QuestionService) Update(ctx context.Context, q *model.Question) error {
	if err := q.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrBankViolation, err)
	}
	if err := s.repo.Update(ctx, q); err != nil {
		return fmt.Errorf("update question: %w", err)
	}
	s.refreshCache(ctx)
	return nil
}

// Delete removes a question and refreshes the cache.
func (s *QuestionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	s.refreshCache(ctx)
	return nil
}

// ReplaceAll validates and swaps the whole bank, then refreshes the cache.
func (s *QuestionService) ReplaceAll(ctx context.Context, questions []model.Question) error {
	for i := range questions {
		if err := questions[i].Validate(); err != nil {
			return fmt.Errorf("%w: question %d: %v", ErrBankViolation, i, err)
		}
	}
	if err := s.repo.ReplaceAll(ctx, questions); err != nil {
		return fmt.Errorf("replace questions: %w", err)
	}
	s.refreshCache(ctx)
	return nil
}

// RefreshCache rebuilds the Redis bank cache from PostgreSQL.
func (s *QuestionService) RefreshCache(ctx context.Context) error {
	return s.quizService.WarmBankCache(ctx)
}

// refreshCache is the best-effort variant used after mutations: an
// unreachable cache must not fail the admin write that already committed.
func (s *QuestionService) refreshCache(ctx context.Context) {
	if err := s.quizService.WarmBankCache(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Bank cache refresh failed after mutation")
	}
}
