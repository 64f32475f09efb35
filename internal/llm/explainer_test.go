package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	system string
	user   string
	out    string
	err    error
}

func (s *stubCompleter) Complete(_ context.Context, system, user string) (string, error) {
	s.system = system
	s.user = user
	return s.out, s.err
}

func TestExplainerBuildsLocalizedPrompt(t *testing.T) {
	stub := &stubCompleter{out: "Because disinfection kills pathogens."}
	e := NewExplainer(stub, "Spanish")

	got, err := e.Explain(context.Background(), "Why is chlorine added?", "Disinfection")
	require.NoError(t, err)
	assert.Equal(t, "Because disinfection kills pathogens.", got)

	assert.Equal(t, "You are a water educator.", stub.system)
	assert.Contains(t, stub.user, "Why is chlorine added?")
	assert.Contains(t, stub.user, "Disinfection")
	assert.Contains(t, stub.user, "Respond in Spanish.")
}

func TestExplainerDefaultsToEnglish(t *testing.T) {
	stub := &stubCompleter{out: "ok"}
	e := NewExplainer(stub, "")

	_, err := e.Explain(context.Background(), "q", "a")
	require.NoError(t, err)
	assert.Contains(t, stub.user, "Respond in English.")
}

func TestExplainerPropagatesProviderError(t *testing.T) {
	stub := &stubCompleter{err: errors.New("quota exceeded")}
	e := NewExplainer(stub, "English")

	_, err := e.Explain(context.Background(), "q", "a")
	assert.Error(t, err)
}

func TestPromptBuilders(t *testing.T) {
	system, user := FunFactPrompt("San Jose", "Korean")
	assert.Equal(t, "You are an expert on water quality.", system)
	assert.Contains(t, user, "San Jose")
	assert.Contains(t, user, "Did you know?")
	assert.Contains(t, user, "Korean")

	system, user = FAQPrompt("What is pH in water?", "Mandarin")
	assert.Contains(t, system, "water quality")
	assert.Contains(t, user, "What is pH in water?")
	assert.Contains(t, user, "Mandarin")
}

func TestDisabledClientReturnsNotConfigured(t *testing.T) {
	c, err := NewClient(context.Background(), "", "")
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "sys", "user")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
