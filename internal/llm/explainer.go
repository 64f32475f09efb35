package llm

import (
	"context"
)

// Explainer adapts a Completer to the quiz core's explanation-provider
// capability, fixing the output language per quiz attempt.
type Explainer struct {
	completer Completer
	language  string
}

// NewExplainer wraps completer for the given output language.
func NewExplainer(completer Completer, language string) *Explainer {
	if language == "" {
		language = "English"
	}
	return &Explainer{completer: completer, language: language}
}

// Explain implements quiz.ExplanationProvider.
func (e *Explainer) Explain(ctx context.Context, questionText, correctAnswer string) (string, error) {
	system, user := ExplainPrompt(questionText, correctAnswer, e.language)
	return e.completer.Complete(ctx, system, user)
}
