package model

import (
	"time"

	"github.com/google/uuid"
)

// QuizAttempt is a graded quiz session persisted for score history.
type QuizAttempt struct {
	ID         uuid.UUID `json:"id"`
	VisitorID  uuid.UUID `json:"visitor_id"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	FinishedAt time.Time `json:"finished_at"`
}

// RecordAnswerRequest is the payload for recording a quiz answer.
// Index is bound as a pointer so that 0 survives required-field validation.
type RecordAnswerRequest struct {
	Index  *int   `json:"index" binding:"required,min=0"`
	Option string `json:"option" binding:"required,max=500"`
}
