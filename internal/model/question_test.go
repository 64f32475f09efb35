package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionValidate(t *testing.T) {
	q := Question{
		Text:          "Why is chlorine added to water?",
		Options:       []string{"Disinfection", "Flavor", "Color"},
		CorrectAnswer: "Disinfection",
	}
	require.NoError(t, q.Validate())

	q.CorrectAnswer = "Fluoridation"
	assert.Error(t, q.Validate(), "correct answer outside the option set must be rejected")

	q.CorrectAnswer = "Disinfection"
	q.Options = []string{"Disinfection"}
	assert.Error(t, q.Validate(), "a single option is not a quiz question")
}

func TestLanguageValid(t *testing.T) {
	for _, lang := range Languages {
		assert.True(t, lang.Valid())
	}
	assert.False(t, Language("Klingon").Valid())
	assert.False(t, Language("").Valid())
}
