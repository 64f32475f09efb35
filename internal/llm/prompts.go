package llm

import "fmt"

// Prompt builders for the content-generation surfaces. Each returns a
// (system, user) pair for Completer.Complete.

// ExplainPrompt asks for a short rationale for a quiz question's correct
// answer, in the requested language.
func ExplainPrompt(questionText, correctAnswer, language string) (system, user string) {
	system = "You are a water educator."
	user = fmt.Sprintf(
		"Question: %s\nCorrect Answer: %s\nProvide a short explanation of why this answer is correct, suitable for a general public quiz. Respond in %s.",
		questionText, correctAnswer, language,
	)
	return system, user
}

// FunFactPrompt asks for one short localized water-quality fun fact.
func FunFactPrompt(city, language string) (system, user string) {
	system = "You are an expert on water quality."
	user = fmt.Sprintf(
		"Give me one short, interesting fun fact about %s water quality. Start it with 'Did you know?'. Respond in %s.",
		city, language,
	)
	return system, user
}

// FAQPrompt asks for an answer to one of the fixed water-quality FAQs.
func FAQPrompt(question, language string) (system, user string) {
	system = "You are an expert in water quality and environmental science, knowledgeable about municipal water utilities and their services."
	user = fmt.Sprintf(
		"Answer the question %q with a brief description in bullet points, including addresses if applicable. Respond in %s in the same format.",
		question, language,
	)
	return system, user
}
