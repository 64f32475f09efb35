package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/aquaed/aquaed-backend/internal/quiz"
)

// Question is a bank question as stored in PostgreSQL. Options are kept as a
// text array; validation of the quiz invariants happens when the bank is
// loaded into memory, before any session can draw from it.
type Question struct {
	ID            uuid.UUID `json:"id"`
	Text          string    `json:"question"`
	Options       []string  `json:"options"`
	CorrectAnswer string    `json:"answer"`
	Topic         string    `json:"topic"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToQuizQuestion converts the stored row into the core quiz shape.
func (q *Question) ToQuizQuestion() quiz.Question {
	return quiz.Question{
		Text:          q.Text,
		Options:       q.Options,
		CorrectAnswer: q.CorrectAnswer,
	}
}

// Validate applies the core question invariants to the stored row.
func (q *Question) Validate() error {
	return q.ToQuizQuestion().Validate()
}

// AddQuestionRequest is the payload for adding a question to the bank.
type AddQuestionRequest struct {
	Text          string   `json:"question" binding:"required,min=1,max=2000"`
	Options       []string `json:"options" binding:"required,min=2,max=10,dive,required,max=500"`
	CorrectAnswer string   `json:"answer" binding:"required,max=500"`
	Topic         string   `json:"topic" binding:"max=100"`
}

// UpdateQuestionRequest is the payload for updating a bank question.
type UpdateQuestionRequest struct {
	Text          string   `json:"question" binding:"required,min=1,max=2000"`
	Options       []string `json:"options" binding:"required,min=2,max=10,dive,required,max=500"`
	CorrectAnswer string   `json:"answer" binding:"required,max=500"`
	Topic         string   `json:"topic" binding:"max=100"`
	Active        bool     `json:"active"`
}

// ReplaceQuestionsRequest is the payload for bulk replacing the bank.
type ReplaceQuestionsRequest struct {
	Questions []AddQuestionRequest `json:"questions" binding:"required,min=1,dive"`
}
