package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/aquaed/aquaed-backend/internal/config"
	"github.com/aquaed/aquaed-backend/internal/llm"
	"github.com/aquaed/aquaed-backend/internal/model"
	"github.com/aquaed/aquaed-backend/internal/quiz"
	"github.com/aquaed/aquaed-backend/internal/repository"
)

// ErrNoSession is returned when a visitor has no quiz session in progress.
var ErrNoSession = errors.New("no quiz session in progress")

// ErrEmptyBank is returned when the bank holds no valid active questions.
var ErrEmptyBank = errors.New("question bank is empty")

// BankSource supplies the raw question bank. Satisfied by
// repository.QuestionRepository; tests inject a stub.
type BankSource interface {
	ListActive(ctx context.Context) ([]model.Question, error)
}

// QuizService owns the lifecycle of quiz attempts: one live session per
// visitor, question bank loading/caching, grading via the explanation
// provider, and handing graded attempts to the persistence queue.
type QuizService struct {
	bank        BankSource
	attemptRepo *repository.AttemptRepository
	completer   llm.Completer
	rdb         *redis.Client
	log         zerolog.Logger

	quizSize       int
	explainTimeout time.Duration

	mu       sync.Mutex
	sessions map[uuid.UUID]*sessionEntry
}

// sessionEntry pairs a visitor's live session with its grade outcome. The
// entry mutex serializes all mutation of the underlying session, which is
// itself single-owner and not goroutine safe.
type sessionEntry struct {
	mu         sync.Mutex
	session    *quiz.Session
	lastResult *quiz.GradeResult
}

// NewQuizService creates a new QuizService.
func NewQuizService(
	bank BankSource,
	attemptRepo *repository.AttemptRepository,
	completer llm.Completer,
	rdb *redis.Client,
	log zerolog.Logger,
	cfg *config.Config,
) *QuizService {
	return &QuizService{
		bank:           bank,
		attemptRepo:    attemptRepo,
		completer:      completer,
		rdb:            rdb,
		log:            log.With().Str("component", "quiz_service").Logger(),
		quizSize:       cfg.QuizSize,
		explainTimeout: cfg.ExplainTimeout,
		sessions:       make(map[uuid.UUID]*sessionEntry),
	}
}

// SessionQuestion is a question as presented to the visitor: the correct
// answer never leaves the server before grading.
type SessionQuestion struct {
	Index   int      `json:"index"`
	Text    string   `json:"question"`
	Options []string `json:"options"`
}

// SessionView is the visitor-facing snapshot of a quiz session.
type SessionView struct {
	Questions []SessionQuestion `json:"questions"`
	Answers   []string          `json:"answers"`
	Graded    bool              `json:"graded"`
	Result    *quiz.GradeResult `json:"result,omitempty"`
}

// WarmBankCache loads the active questions from PostgreSQL, validates the
// quiz invariants, and stores the bank as JSON in Redis. Called on startup
// and after every admin bank mutation.
func (s *QuizService) WarmBankCache(ctx context.Context) error {
	bank, err := s.loadBankFromSource(ctx)
	if err != nil {
		return err
	}

	if s.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(bank)
	if err != nil {
		return fmt.Errorf("marshal bank: %w", err)
	}
	if err := s.rdb.Set(ctx, config.CacheKey.QuestionBankKey(), payload, 0).Err(); err != nil {
		return fmt.Errorf("cache bank: %w", err)
	}

	s.log.Debug().Int("questions", len(bank)).Msg("Question bank cache warmed")
	return nil
}

// loadBank returns the validated bank, preferring the Redis copy. A nil
// Redis client (tests) reads straight from the source.
func (s *QuizService) loadBank(ctx context.Context) ([]quiz.Question, error) {
	if s.rdb == nil {
		return s.loadBankFromSource(ctx)
	}

	data, err := s.rdb.Get(ctx, config.CacheKey.QuestionBankKey()).Bytes()
	if err == nil {
		var bank []quiz.Question
		if err := json.Unmarshal(data, &bank); err == nil && len(bank) > 0 {
			return bank, nil
		}
		// Corrupt cache entry; fall through to the source of truth.
		s.log.Warn().Msg("Question bank cache unreadable, reloading from database")
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Question bank cache read failed, falling back to database")
	}

	bank, err := s.loadBankFromSource(ctx)
	if err != nil {
		return nil, err
	}

	// Self-heal the cache so the next draw is fast.
	if payload, err := json.Marshal(bank); err == nil {
		_ = s.rdb.Set(ctx, config.CacheKey.QuestionBankKey(), payload, 0).Err()
	}
	return bank, nil
}

// loadBankFromSource reads the bank from PostgreSQL and enforces the
// load-time invariants. Rows that fail validation are skipped with a
// warning rather than poisoning every quiz.
func (s *QuizService) loadBankFromSource(ctx context.Context) ([]quiz.Question, error) {
	rows, err := s.bank.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active questions: %w", err)
	}

	bank := make([]quiz.Question, 0, len(rows))
	for i := range rows {
		q := rows[i].ToQuizQuestion()
		if err := q.Validate(); err != nil {
			s.log.Warn().Err(err).Str("question_id", rows[i].ID.String()).Msg("Skipping invalid bank question")
			continue
		}
		bank = append(bank, q)
	}
	if len(bank) == 0 {
		return nil, ErrEmptyBank
	}
	return bank, nil
}

// StartSession draws a fresh quiz for the visitor. An existing session is
// discarded and replaced, which is also how "restart quiz" works.
func (s *QuizService) StartSession(ctx context.Context, visitorID uuid.UUID) (*SessionView, error) {
	bank, err := s.loadBank(ctx)
	if err != nil {
		return nil, err
	}

	session, err := quiz.New(bank, s.quizSize)
	if err != nil {
		return nil, err
	}

	entry := &sessionEntry{session: session}
	s.mu.Lock()
	s.sessions[visitorID] = entry
	s.mu.Unlock()

	return viewOf(entry), nil
}

// GetSession returns the visitor's current session snapshot.
func (s *QuizService) GetSession(visitorID uuid.UUID) (*SessionView, error) {
	entry, err := s.entryFor(visitorID)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return viewOfLocked(entry), nil
}

// RecordAnswer stores the visitor's selected option for one question.
// Core contract violations (bad index, bad option, already graded) pass
// through unchanged for the handler to map.
func (s *QuizService) RecordAnswer(visitorID uuid.UUID, index int, option string) error {
	entry, err := s.entryFor(visitorID)
	if err != nil {
		return err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.session.RecordAnswer(index, option)
}

// Grade grades the visitor's session once, generating explanations in the
// requested language. The optional progress callback observes per-question
// results as they resolve; used by the WebSocket grading stream. On success
// the attempt is queued for asynchronous persistence.
func (s *QuizService) Grade(ctx context.Context, visitorID uuid.UUID, language string, progress func(quiz.QuestionResult)) (*quiz.GradeResult, error) {
	entry, err := s.entryFor(visitorID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	opts := []quiz.GradeOption{quiz.WithExplainTimeout(s.explainTimeout)}
	if progress != nil {
		opts = append(opts, quiz.WithProgress(progress))
	}

	result, err := entry.session.Grade(ctx, llm.NewExplainer(s.completer, language), opts...)
	if err != nil {
		return nil, err
	}
	entry.lastResult = result

	s.enqueueAttempt(ctx, visitorID, result)
	return result, nil
}

// ListAttempts returns the visitor's persisted attempt history.
func (s *QuizService) ListAttempts(ctx context.Context, visitorID uuid.UUID, limit int) ([]model.QuizAttempt, error) {
	attempts, err := s.attemptRepo.ListByVisitor(ctx, visitorID, limit)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return attempts, nil
}

// AttemptPayload is the queue message handed to the persistence worker.
type AttemptPayload struct {
	VisitorID  uuid.UUID `json:"visitor_id"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	FinishedAt time.Time `json:"finished_at"`
}

// enqueueAttempt pushes the graded attempt onto the Redis persist queue.
// Best effort: losing one history row must not fail the grade response.
func (s *QuizService) enqueueAttempt(ctx context.Context, visitorID uuid.UUID, result *quiz.GradeResult) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(AttemptPayload{
		VisitorID:  visitorID,
		Score:      result.Score,
		Total:      result.Total,
		FinishedAt: time.Now().UTC(),
	})
	if err != nil {
		s.log.Error().Err(err).Msg("Marshal attempt payload failed")
		return
	}
	if err := s.rdb.RPush(ctx, config.WorkerKey.PersistAttemptsQueue, raw).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Enqueue attempt failed, history row dropped")
	}
}

func (s *QuizService) entryFor(visitorID uuid.UUID) (*sessionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[visitorID]
	if !ok {
		return nil, ErrNoSession
	}
	return entry, nil
}

func viewOf(entry *sessionEntry) *SessionView {
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return viewOfLocked(entry)
}

// viewOfLocked builds the visitor-facing snapshot. Caller holds entry.mu.
func viewOfLocked(entry *sessionEntry) *SessionView {
	questions := entry.session.Questions()
	view := &SessionView{
		Questions: make([]SessionQuestion, len(questions)),
		Answers:   make([]string, len(questions)),
		Graded:    entry.session.Graded(),
		Result:    entry.lastResult,
	}
	for i, q := range questions {
		view.Questions[i] = SessionQuestion{Index: i, Text: q.Text, Options: q.Options}
		view.Answers[i] = entry.session.Answer(i)
	}
	return view
}
