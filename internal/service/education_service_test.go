package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquaed/aquaed-backend/internal/config"
)

func newTestEducationService(completer *stubCompleter) *EducationService {
	cfg := &config.Config{ContentCacheTTL: time.Hour}
	return NewEducationService(completer, nil, zerolog.Nop(), cfg)
}

func TestFunFactGeneratesText(t *testing.T) {
	svc := newTestEducationService(&stubCompleter{out: "Did you know? Reservoirs are inspected weekly."})

	fact, cached, err := svc.FunFact(context.Background(), "San Jose", "English")
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Contains(t, fact, "Did you know?")
}

func TestFAQAnswerRejectsUnknownQuestion(t *testing.T) {
	svc := newTestEducationService(&stubCompleter{out: "answer"})

	_, _, err := svc.FAQAnswer(context.Background(), "Is the moon made of water?", "English")
	assert.ErrorIs(t, err, ErrUnknownFAQ)
}

func TestFAQAnswerKnownQuestion(t *testing.T) {
	svc := newTestEducationService(&stubCompleter{out: "- It measures acidity."})

	answer, cached, err := svc.FAQAnswer(context.Background(), FAQQuestions[0], "Spanish")
	require.NoError(t, err)
	assert.False(t, cached)
	assert.NotEmpty(t, answer)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "san-jose", slugify("  San Jose "))
	assert.Equal(t, "what-is-ph-in-water", slugify("What is pH in water?"))
	assert.Equal(t, "", slugify("???"))
}
