package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquaed/aquaed-backend/internal/config"
	"github.com/aquaed/aquaed-backend/internal/model"
	"github.com/aquaed/aquaed-backend/internal/quiz"
)

// stubBank serves a fixed question list, optionally with invalid rows.
type stubBank struct {
	questions []model.Question
	err       error
}

func (b *stubBank) ListActive(_ context.Context) ([]model.Question, error) {
	return b.questions, b.err
}

// stubCompleter returns canned text for every prompt.
type stubCompleter struct {
	out string
	err error
}

func (s *stubCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	return s.out, s.err
}

func bankRows(size int) []model.Question {
	rows := make([]model.Question, size)
	for i := range rows {
		rows[i] = model.Question{
			ID:            uuid.New(),
			Text:          fmt.Sprintf("Question %d", i),
			Options:       []string{fmt.Sprintf("right-%d", i), "other"},
			CorrectAnswer: fmt.Sprintf("right-%d", i),
			Active:        true,
		}
	}
	return rows
}

func newTestQuizService(bank BankSource, completer *stubCompleter) *QuizService {
	cfg := &config.Config{QuizSize: 3, ExplainTimeout: 5 * time.Second}
	return NewQuizService(bank, nil, completer, nil, zerolog.Nop(), cfg)
}

func TestStartSessionDrawsQuizSizeQuestions(t *testing.T) {
	svc := newTestQuizService(&stubBank{questions: bankRows(6)}, &stubCompleter{out: "ok"})

	view, err := svc.StartSession(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, view.Questions, 3)
	assert.False(t, view.Graded)

	for i, q := range view.Questions {
		assert.Equal(t, i, q.Index)
		assert.Equal(t, quiz.Unanswered, view.Answers[i])
		assert.NotEmpty(t, q.Options)
	}
}

func TestStartSessionSkipsInvalidBankRows(t *testing.T) {
	rows := bankRows(4)
	rows = append(rows, model.Question{
		ID:            uuid.New(),
		Text:          "Broken",
		Options:       []string{"a", "b"},
		CorrectAnswer: "c", // not in options
		Active:        true,
	})
	svc := newTestQuizService(&stubBank{questions: rows}, &stubCompleter{out: "ok"})

	view, err := svc.StartSession(context.Background(), uuid.New())
	require.NoError(t, err)
	for _, q := range view.Questions {
		assert.NotEqual(t, "Broken", q.Text, "invalid rows must never enter a quiz")
	}
}

func TestStartSessionEmptyBank(t *testing.T) {
	svc := newTestQuizService(&stubBank{}, &stubCompleter{out: "ok"})

	_, err := svc.StartSession(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrEmptyBank)
}

func TestStartSessionInsufficientBank(t *testing.T) {
	svc := newTestQuizService(&stubBank{questions: bankRows(2)}, &stubCompleter{out: "ok"})

	_, err := svc.StartSession(context.Background(), uuid.New())
	assert.ErrorIs(t, err, quiz.ErrInsufficientBank)
}

func TestRecordAnswerRequiresSession(t *testing.T) {
	svc := newTestQuizService(&stubBank{questions: bankRows(4)}, &stubCompleter{out: "ok"})

	err := svc.RecordAnswer(uuid.New(), 0, "anything")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestFullQuizFlow(t *testing.T) {
	svc := newTestQuizService(&stubBank{questions: bankRows(5)}, &stubCompleter{out: "Because water."})
	visitorID := uuid.New()

	view, err := svc.StartSession(context.Background(), visitorID)
	require.NoError(t, err)

	// Answer the first question correctly (options[0] is the right one in
	// the stub bank), the second wrong, leave the third blank.
	require.NoError(t, svc.RecordAnswer(visitorID, 0, view.Questions[0].Options[0]))
	require.NoError(t, svc.RecordAnswer(visitorID, 1, "other"))

	result, err := svc.Grade(context.Background(), visitorID, "English", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 3, result.Total)
	assert.True(t, result.PerQuestion[0].Correct)
	assert.False(t, result.PerQuestion[1].Correct)
	assert.False(t, result.PerQuestion[2].Correct)
	assert.Contains(t, result.PerQuestion[1].Explanation, "The correct answer is ")

	// Session is now frozen but still readable.
	got, err := svc.GetSession(visitorID)
	require.NoError(t, err)
	assert.True(t, got.Graded)
	require.NotNil(t, got.Result)
	assert.Equal(t, result.Score, got.Result.Score)

	// Second grade is a caller bug.
	_, err = svc.Grade(context.Background(), visitorID, "English", nil)
	assert.ErrorIs(t, err, quiz.ErrAlreadyGraded)

	// Restart replaces the session with a fresh ungraded draw.
	fresh, err := svc.StartSession(context.Background(), visitorID)
	require.NoError(t, err)
	assert.False(t, fresh.Graded)

	_, err = svc.Grade(context.Background(), visitorID, "English", nil)
	require.NoError(t, err, "a fresh session must be gradable again")
}

func TestGradeDegradesOnProviderFailure(t *testing.T) {
	svc := newTestQuizService(
		&stubBank{questions: bankRows(4)},
		&stubCompleter{err: errors.New("upstream down")},
	)
	visitorID := uuid.New()

	_, err := svc.StartSession(context.Background(), visitorID)
	require.NoError(t, err)

	result, err := svc.Grade(context.Background(), visitorID, "English", nil)
	require.NoError(t, err, "provider failure must not fail grading")
	for _, pq := range result.PerQuestion {
		assert.NotEmpty(t, pq.Explanation)
		assert.Contains(t, pq.Explanation, "Could not generate explanation")
	}
}

func TestGradeStreamsProgress(t *testing.T) {
	svc := newTestQuizService(&stubBank{questions: bankRows(5)}, &stubCompleter{out: "ok"})
	visitorID := uuid.New()

	_, err := svc.StartSession(context.Background(), visitorID)
	require.NoError(t, err)

	var streamed []quiz.QuestionResult
	result, err := svc.Grade(context.Background(), visitorID, "English", func(r quiz.QuestionResult) {
		streamed = append(streamed, r)
	})
	require.NoError(t, err)
	assert.Len(t, streamed, result.Total)
}

func TestSessionsAreIsolatedPerVisitor(t *testing.T) {
	svc := newTestQuizService(&stubBank{questions: bankRows(5)}, &stubCompleter{out: "ok"})
	alice, bob := uuid.New(), uuid.New()

	_, err := svc.StartSession(context.Background(), alice)
	require.NoError(t, err)

	_, err = svc.GetSession(bob)
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = svc.Grade(context.Background(), alice, "English", nil)
	require.NoError(t, err)

	// Bob's later session is unaffected by Alice's graded one.
	view, err := svc.StartSession(context.Background(), bob)
	require.NoError(t, err)
	assert.False(t, view.Graded)
}
