package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionGrade Action = "grade"
	ActionPing  Action = "ping"
)

// RequestPayload carries any client message; unused fields stay empty.
type RequestPayload struct {
	Action   Action `json:"action"`
	Language string `json:"language,omitempty"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError          Event = "error"
	EventQuestionGraded Event = "question_graded"
	EventGraded         Event = "graded"
	EventPong           Event = "pong"
)

// QuestionGradedResponse streams one question's result as it resolves.
type QuestionGradedResponse struct {
	Event       Event  `json:"event"`
	Index       int    `json:"index"`
	Correct     bool   `json:"correct"`
	Explanation string `json:"explanation"`
}

// GradedResponse closes a grading run with the final score.
type GradedResponse struct {
	Event Event `json:"event"`
	Score int   `json:"score"`
	Total int   `json:"total"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
