package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aquaed/aquaed-backend/internal/middleware"
	"github.com/aquaed/aquaed-backend/internal/model"
	"github.com/aquaed/aquaed-backend/internal/quiz"
	"github.com/aquaed/aquaed-backend/internal/response"
	"github.com/aquaed/aquaed-backend/internal/service"
	"github.com/aquaed/aquaed-backend/internal/validator"
)

// QuizHandler handles the visitor-facing quiz endpoints.
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// GradeRequest is the payload for grading; the language selects the
// explanation output language and defaults to English.
type GradeRequest struct {
	Language string `json:"language" binding:"omitempty,oneof=English Spanish Vietnamese Mandarin Korean"`
}

// StartSession godoc
// POST /api/v1/quiz/session
// Draws a fresh quiz for the visitor. Doubles as the "restart quiz" action:
// any in-progress or graded session is discarded and replaced.
func (h *QuizHandler) StartSession(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	view, err := h.quizService.StartSession(c.Request.Context(), claims.VisitorID)
	if err != nil {
		if errors.Is(err, quiz.ErrInsufficientBank) || errors.Is(err, service.ErrEmptyBank) {
			response.Fail(c, http.StatusServiceUnavailable, response.ErrInsufficientBank)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, view)
}

// GetSession godoc
// GET /api/v1/quiz/session
func (h *QuizHandler) GetSession(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	view, err := h.quizService.GetSession(claims.VisitorID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// RecordAnswer godoc
// PUT /api/v1/quiz/session/answers
// Records the visitor's selected option for one question. May be called
// repeatedly for the same index before grading; the last write wins.
func (h *QuizHandler) RecordAnswer(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.RecordAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.quizService.RecordAnswer(claims.VisitorID, *req.Index, req.Option); err != nil {
		switch {
		case errors.Is(err, service.ErrNoSession):
			response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
		case errors.Is(err, quiz.ErrInvalidIndex):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidIndex)
		case errors.Is(err, quiz.ErrInvalidOption):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidOption)
		case errors.Is(err, quiz.ErrAlreadyGraded):
			response.Fail(c, http.StatusConflict, response.ErrAlreadyGraded)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"recorded": true})
}

// Grade godoc
// POST /api/v1/quiz/session/grade
// One-shot grading: unanswered questions score as incorrect, explanations
// are generated per question, and a second call is rejected.
func (h *QuizHandler) Grade(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	language := string(model.LanguageEnglish)
	if c.Request.ContentLength > 0 {
		var req GradeRequest
		if fields := validator.Bind(c, &req); fields != nil {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
			return
		}
		if req.Language != "" {
			language = req.Language
		}
	}

	result, err := h.quizService.Grade(c.Request.Context(), claims.VisitorID, language, nil)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoSession):
			response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
		case errors.Is(err, quiz.ErrAlreadyGraded):
			response.Fail(c, http.StatusConflict, response.ErrAlreadyGraded)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ListAttempts godoc
// GET /api/v1/quiz/attempts
func (h *QuizHandler) ListAttempts(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	attempts, err := h.quizService.ListAttempts(c.Request.Context(), claims.VisitorID, 20)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if attempts == nil {
		attempts = []model.QuizAttempt{}
	}

	response.Success(c, http.StatusOK, gin.H{"attempts": attempts})
}
