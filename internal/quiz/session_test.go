package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBank(size int) []Question {
	bank := make([]Question, size)
	for i := range bank {
		bank[i] = Question{
			Text:          fmt.Sprintf("Question %d", i),
			Options:       []string{fmt.Sprintf("right-%d", i), fmt.Sprintf("wrong-%d", i), "neither"},
			CorrectAnswer: fmt.Sprintf("right-%d", i),
		}
	}
	return bank
}

// cannedProvider returns a fixed explanation for every question.
type cannedProvider struct {
	text string
}

func (p cannedProvider) Explain(_ context.Context, _, _ string) (string, error) {
	return p.text, nil
}

func TestQuestionValidate(t *testing.T) {
	valid := Question{Text: "What is pH?", Options: []string{"Acidity measure", "A mineral"}, CorrectAnswer: "Acidity measure"}
	require.NoError(t, valid.Validate())

	cases := []struct {
		name string
		q    Question
	}{
		{"empty text", Question{Options: []string{"a", "b"}, CorrectAnswer: "a"}},
		{"one option", Question{Text: "q", Options: []string{"a"}, CorrectAnswer: "a"}},
		{"empty option", Question{Text: "q", Options: []string{"a", ""}, CorrectAnswer: "a"}},
		{"duplicate options", Question{Text: "q", Options: []string{"a", "a"}, CorrectAnswer: "a"}},
		{"answer not in options", Question{Text: "q", Options: []string{"a", "b"}, CorrectAnswer: "c"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.q.Validate())
		})
	}
}

func TestNewDrawsDistinctQuestionsFromBank(t *testing.T) {
	bank := testBank(10)

	// The draw is random; check the structural guarantees over many runs.
	for run := 0; run < 50; run++ {
		s, err := New(bank, 3)
		require.NoError(t, err)
		require.Equal(t, 3, s.N())

		byText := make(map[string]Question, len(bank))
		for _, q := range bank {
			byText[q.Text] = q
		}

		seen := make(map[string]struct{})
		for _, q := range s.Questions() {
			_, inBank := byText[q.Text]
			assert.True(t, inBank, "drawn question must come from the bank")
			_, dup := seen[q.Text]
			assert.False(t, dup, "draw must be without replacement")
			seen[q.Text] = struct{}{}
		}
	}
}

func TestNewInsufficientBank(t *testing.T) {
	s, err := New(testBank(2), 3)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrInsufficientBank)
}

func TestNewRejectsNonPositiveSize(t *testing.T) {
	_, err := New(testBank(3), 0)
	assert.Error(t, err)
	_, err = New(testBank(3), -1)
	assert.Error(t, err)
}

func TestRecordAnswerLastWriteWins(t *testing.T) {
	s, err := New(testBank(3), 3)
	require.NoError(t, err)

	q := s.Questions()[0]
	require.NoError(t, s.RecordAnswer(0, q.Options[1]))
	require.NoError(t, s.RecordAnswer(0, q.Options[2]))
	require.NoError(t, s.RecordAnswer(0, q.CorrectAnswer))

	assert.Equal(t, q.CorrectAnswer, s.Answer(0))

	res, err := s.Grade(context.Background(), cannedProvider{text: "because"})
	require.NoError(t, err)
	assert.True(t, res.PerQuestion[0].Correct, "grading must use the last recorded answer")
}

func TestRecordAnswerInvalidOptionLeavesStateUnchanged(t *testing.T) {
	s, err := New(testBank(3), 3)
	require.NoError(t, err)

	q := s.Questions()[1]
	require.NoError(t, s.RecordAnswer(1, q.Options[0]))

	err = s.RecordAnswer(1, "not-a-choice")
	assert.ErrorIs(t, err, ErrInvalidOption)
	assert.Equal(t, q.Options[0], s.Answer(1), "failed write must not clobber the previous answer")
}

func TestRecordAnswerInvalidIndex(t *testing.T) {
	s, err := New(testBank(3), 3)
	require.NoError(t, err)

	assert.ErrorIs(t, s.RecordAnswer(-1, "x"), ErrInvalidIndex)
	assert.ErrorIs(t, s.RecordAnswer(3, "x"), ErrInvalidIndex)
}

func TestGradeScoresAndExplains(t *testing.T) {
	bank := testBank(5)
	s, err := New(bank, 3)
	require.NoError(t, err)

	qs := s.Questions()
	// index 0: correct, index 1: wrong, index 2: left unanswered.
	require.NoError(t, s.RecordAnswer(0, qs[0].CorrectAnswer))
	require.NoError(t, s.RecordAnswer(1, "neither"))

	res, err := s.Grade(context.Background(), cannedProvider{text: "Because chemistry."})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Score)
	assert.Equal(t, 3, res.Total)
	require.Len(t, res.PerQuestion, 3)

	assert.True(t, res.PerQuestion[0].Correct)
	assert.Equal(t, "Because chemistry.", res.PerQuestion[0].Explanation)

	assert.False(t, res.PerQuestion[1].Correct)
	assert.Equal(t,
		fmt.Sprintf("The correct answer is %s. Because chemistry.", qs[1].CorrectAnswer),
		res.PerQuestion[1].Explanation)

	assert.False(t, res.PerQuestion[2].Correct, "unanswered question is scored incorrect")
	assert.True(t, strings.HasPrefix(res.PerQuestion[2].Explanation, "The correct answer is "))

	// Results must be index-ordered and match Score().
	for i, pq := range res.PerQuestion {
		assert.Equal(t, i, pq.Index)
	}
	assert.Equal(t, res.Score, s.Score())
	assert.True(t, s.Graded())
}

func TestGradeIsOneShot(t *testing.T) {
	s, err := New(testBank(3), 2)
	require.NoError(t, err)

	first, err := s.Grade(context.Background(), cannedProvider{text: "ok"})
	require.NoError(t, err)

	second, err := s.Grade(context.Background(), cannedProvider{text: "ok"})
	assert.Nil(t, second)
	assert.ErrorIs(t, err, ErrAlreadyGraded)

	// The first result stays authoritative; stored explanations are intact.
	for i := range first.PerQuestion {
		assert.Equal(t, first.PerQuestion[i].Explanation, s.Explanation(i))
	}
}

func TestAnswersFrozenAfterGrade(t *testing.T) {
	s, err := New(testBank(3), 2)
	require.NoError(t, err)

	q := s.Questions()[0]
	_, err = s.Grade(context.Background(), cannedProvider{text: "ok"})
	require.NoError(t, err)

	assert.ErrorIs(t, s.RecordAnswer(0, q.CorrectAnswer), ErrAlreadyGraded)
}

func TestGradeProviderFailureIsIsolated(t *testing.T) {
	s, err := New(testBank(3), 3)
	require.NoError(t, err)

	failText := s.Questions()[1].Text
	provider := ExplainFunc(func(_ context.Context, questionText, _ string) (string, error) {
		if questionText == failText {
			return "", errors.New("model unavailable")
		}
		return "All good.", nil
	})

	for i, q := range s.Questions() {
		require.NoError(t, s.RecordAnswer(i, q.CorrectAnswer))
	}

	res, err := s.Grade(context.Background(), provider)
	require.NoError(t, err, "a provider failure must not fail the grade operation")

	assert.Equal(t, 3, res.Score)
	assert.NotEmpty(t, res.PerQuestion[1].Explanation)
	assert.Contains(t, res.PerQuestion[1].Explanation, "model unavailable")
	assert.Equal(t, "All good.", res.PerQuestion[0].Explanation)
	assert.Equal(t, "All good.", res.PerQuestion[2].Explanation)
}

func TestGradeProviderTimeoutDegrades(t *testing.T) {
	s, err := New(testBank(3), 2)
	require.NoError(t, err)

	slow := ExplainFunc(func(ctx context.Context, _, _ string) (string, error) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(5 * time.Second):
			return "too late", nil
		}
	})

	start := time.Now()
	res, err := s.Grade(context.Background(), slow, WithExplainTimeout(50*time.Millisecond))
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second, "timed-out calls must not stall grading")

	for _, pq := range res.PerQuestion {
		assert.Contains(t, pq.Explanation, "Could not generate explanation")
	}
}

func TestGradeNilProvider(t *testing.T) {
	s, err := New(testBank(3), 2)
	require.NoError(t, err)

	res, err := s.Grade(context.Background(), nil)
	require.NoError(t, err)
	for _, pq := range res.PerQuestion {
		assert.NotEmpty(t, pq.Explanation)
	}
}

func TestGradeProgressObserverSeesEveryResult(t *testing.T) {
	s, err := New(testBank(8), 5)
	require.NoError(t, err)

	var mu sync.Mutex
	seen := make(map[int]QuestionResult)
	res, err := s.Grade(context.Background(), cannedProvider{text: "ok"}, WithProgress(func(r QuestionResult) {
		mu.Lock()
		seen[r.Index] = r
		mu.Unlock()
	}))
	require.NoError(t, err)

	require.Len(t, seen, 5, "observer must fire once per question")
	for i, pq := range res.PerQuestion {
		assert.Equal(t, pq, seen[i], "streamed results must match the final result set")
	}
}
