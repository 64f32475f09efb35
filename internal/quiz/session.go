// Package quiz implements the quiz attempt state machine: question draw,
// answer capture, one-shot grading with AI-generated explanations, and score
// computation. It has no knowledge of HTTP, storage, or any particular
// language-model API; the explanation source is injected as a capability.
package quiz

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Unanswered is the sentinel stored for a question the user has not
// answered. Question options are validated to be non-empty, so the empty
// string can never collide with a real choice.
const Unanswered = ""

// DefaultExplainTimeout bounds a single explanation-provider call during
// grading. A call that exceeds it degrades to a fallback explanation.
const DefaultExplainTimeout = 30 * time.Second

// Question is a single multiple-choice question. Instances are immutable
// once validated; they are shared between the bank and live sessions.
type Question struct {
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"answer"`
}

// Validate checks the bank-load invariants: at least two distinct non-empty
// options and a correct answer drawn from them. A violation is a data error
// in the question source, not a quiz-logic error.
func (q Question) Validate() error {
	if q.Text == "" {
		return fmt.Errorf("question has empty text")
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("question %q has %d options, need at least 2", q.Text, len(q.Options))
	}
	seen := make(map[string]struct{}, len(q.Options))
	for _, opt := range q.Options {
		if opt == "" {
			return fmt.Errorf("question %q has an empty option", q.Text)
		}
		if _, dup := seen[opt]; dup {
			return fmt.Errorf("question %q has duplicate option %q", q.Text, opt)
		}
		seen[opt] = struct{}{}
	}
	if _, ok := seen[q.CorrectAnswer]; !ok {
		return fmt.Errorf("question %q: correct answer %q is not among its options", q.Text, q.CorrectAnswer)
	}
	return nil
}

// ExplanationProvider produces a human-readable rationale for a question and
// its correct answer. Implementations may be slow or fail; Grade absorbs
// per-question failures into fallback explanation text.
type ExplanationProvider interface {
	Explain(ctx context.Context, questionText, correctAnswer string) (string, error)
}

// ExplainFunc adapts a plain function to the ExplanationProvider interface.
type ExplainFunc func(ctx context.Context, questionText, correctAnswer string) (string, error)

// Explain implements ExplanationProvider.
func (f ExplainFunc) Explain(ctx context.Context, questionText, correctAnswer string) (string, error) {
	return f(ctx, questionText, correctAnswer)
}

// Session is one quiz attempt. It moves through exactly two states:
// in-progress (accepts RecordAnswer and a single Grade call) and graded
// (read-only). There is no way back; a new attempt requires a new Session.
//
// A Session is owned by a single logical caller and is not safe for
// concurrent mutation.
type Session struct {
	questions    []Question
	answers      []string
	explanations []string
	graded       bool
}

// QuestionResult is the graded outcome for one question.
type QuestionResult struct {
	Index       int    `json:"index"`
	Correct     bool   `json:"correct"`
	Explanation string `json:"explanation"`
}

// GradeResult aggregates the outcome of grading a whole session.
// PerQuestion is ordered by question index.
type GradeResult struct {
	Score       int              `json:"score"`
	Total       int              `json:"total"`
	PerQuestion []QuestionResult `json:"per_question"`
}

// New draws n distinct questions uniformly at random without replacement
// from bank and returns a fresh in-progress session presenting them in draw
// order. Every question in bank must already satisfy Validate.
func New(bank []Question, n int) (*Session, error) {
	if n < 1 {
		return nil, fmt.Errorf("quiz size must be at least 1, got %d", n)
	}
	if len(bank) < n {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientBank, len(bank), n)
	}

	// Partial Fisher-Yates over a copy of the index space.
	idx := rand.Perm(len(bank))[:n]
	questions := make([]Question, n)
	for i, j := range idx {
		questions[i] = bank[j]
	}

	s := &Session{
		questions:    questions,
		answers:      make([]string, n),
		explanations: make([]string, n),
	}
	for i := range s.answers {
		s.answers[i] = Unanswered
	}
	return s, nil
}

// N returns the number of questions in this attempt.
func (s *Session) N() int { return len(s.questions) }

// Graded reports whether the session has been graded.
func (s *Session) Graded() bool { return s.graded }

// Questions returns the session's questions in presentation order.
// The returned slice is a copy; the draw order never changes.
func (s *Session) Questions() []Question {
	out := make([]Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// Answer returns the recorded option for the given index, or Unanswered.
func (s *Session) Answer(index int) string {
	if index < 0 || index >= len(s.answers) {
		return Unanswered
	}
	return s.answers[index]
}

// Explanation returns the stored explanation for the given index. Empty
// until the session has been graded.
func (s *Session) Explanation(index int) string {
	if index < 0 || index >= len(s.explanations) {
		return ""
	}
	return s.explanations[index]
}

// RecordAnswer stores the user's selected option for a question. It may be
// called any number of times per index before grading; the last write wins.
func (s *Session) RecordAnswer(index int, option string) error {
	if s.graded {
		return ErrAlreadyGraded
	}
	if index < 0 || index >= len(s.questions) {
		return fmt.Errorf("%w: %d (session has %d questions)", ErrInvalidIndex, index, len(s.questions))
	}
	valid := false
	for _, opt := range s.questions[index].Options {
		if opt == option {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: %q", ErrInvalidOption, option)
	}
	s.answers[index] = option
	return nil
}

// Score recomputes the number of correctly answered questions from the
// captured answers. Meaningful once the session is graded, but safe to call
// at any time.
func (s *Session) Score() int {
	score := 0
	for i, q := range s.questions {
		if s.answers[i] == q.CorrectAnswer {
			score++
		}
	}
	return score
}

// GradeOption tunes a single Grade call.
type GradeOption func(*gradeConfig)

type gradeConfig struct {
	explainTimeout time.Duration
	progress       func(QuestionResult)
}

// WithExplainTimeout bounds each explanation-provider call. Zero or negative
// durations fall back to DefaultExplainTimeout.
func WithExplainTimeout(d time.Duration) GradeOption {
	return func(cfg *gradeConfig) {
		if d > 0 {
			cfg.explainTimeout = d
		}
	}
}

// WithProgress registers an observer invoked once per question as its
// result resolves, in completion order. The callback is serialized; it must
// not block for long since it delays the remaining results.
func WithProgress(fn func(QuestionResult)) GradeOption {
	return func(cfg *gradeConfig) { cfg.progress = fn }
}

// Grade transitions the session to its terminal state and produces the
// result. Unanswered questions are scored incorrect, never rejected. The
// explanation provider is consulted once per question, concurrently; a
// per-question failure or timeout degrades to fallback explanation text and
// never aborts the sibling questions. Wrong or missing answers get their
// explanation prefixed with a statement of the correct answer.
//
// Grade is callable exactly once per session. A second call returns
// ErrAlreadyGraded; callers wanting a fresh attempt must create a new
// session.
func (s *Session) Grade(ctx context.Context, provider ExplanationProvider, opts ...GradeOption) (*GradeResult, error) {
	if s.graded {
		return nil, ErrAlreadyGraded
	}
	s.graded = true

	cfg := gradeConfig{explainTimeout: DefaultExplainTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	results := make([]QuestionResult, len(s.questions))

	var progressMu sync.Mutex
	var g errgroup.Group
	for i := range s.questions {
		g.Go(func() error {
			q := s.questions[i]
			correct := s.answers[i] == q.CorrectAnswer

			explanation := s.explain(ctx, provider, q, cfg.explainTimeout)
			if !correct {
				explanation = fmt.Sprintf("The correct answer is %s. %s", q.CorrectAnswer, explanation)
			}

			res := QuestionResult{Index: i, Correct: correct, Explanation: explanation}
			results[i] = res
			s.explanations[i] = explanation

			if cfg.progress != nil {
				progressMu.Lock()
				cfg.progress(res)
				progressMu.Unlock()
			}
			return nil
		})
	}
	// Goroutines never return errors; provider failures are absorbed above.
	_ = g.Wait()

	return &GradeResult{
		Score:       s.Score(),
		Total:       len(s.questions),
		PerQuestion: results,
	}, nil
}

// explain runs one bounded provider call, degrading to a fallback string on
// failure or empty output.
func (s *Session) explain(ctx context.Context, provider ExplanationProvider, q Question, timeout time.Duration) string {
	if provider == nil {
		return "Explanation unavailable."
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, err := provider.Explain(callCtx, q.Text, q.CorrectAnswer)
	if err != nil {
		return fmt.Sprintf("Could not generate explanation: %v", err)
	}
	if text == "" {
		return "Could not generate explanation: provider returned no text."
	}
	return text
}
