package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aquaed/aquaed-backend/internal/model"
	"github.com/aquaed/aquaed-backend/internal/response"
	"github.com/aquaed/aquaed-backend/internal/service"
	"github.com/aquaed/aquaed-backend/internal/validator"
)

// EducationHandler handles the AI-generated content endpoints.
type EducationHandler struct {
	educationService *service.EducationService
}

// NewEducationHandler creates a new EducationHandler.
func NewEducationHandler(educationService *service.EducationService) *EducationHandler {
	return &EducationHandler{educationService: educationService}
}

// FunFact godoc
// POST /api/v1/education/fun-fact
// Generates one localized water-quality fun fact for a city.
func (h *EducationHandler) FunFact(c *gin.Context) {
	var req model.FunFactRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	fact, cached, err := h.educationService.FunFact(c.Request.Context(), req.City, req.Language)
	if err != nil {
		response.Fail(c, http.StatusServiceUnavailable, response.ErrGenerationFailed)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"fact":     fact,
		"language": req.Language,
		"cached":   cached,
	})
}

// ListFAQ godoc
// GET /api/v1/education/faq
// Returns the fixed FAQ question list and the supported languages.
func (h *EducationHandler) ListFAQ(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"questions": service.FAQQuestions,
		"languages": model.Languages,
	})
}

// FAQAnswer godoc
// POST /api/v1/education/faq/answer
func (h *EducationHandler) FAQAnswer(c *gin.Context) {
	var req model.FAQAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	answer, cached, err := h.educationService.FAQAnswer(c.Request.Context(), req.Question, req.Language)
	if err != nil {
		if errors.Is(err, service.ErrUnknownFAQ) {
			response.Fail(c, http.StatusBadRequest, response.ErrUnknownFAQ)
			return
		}
		response.Fail(c, http.StatusServiceUnavailable, response.ErrGenerationFailed)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"question": req.Question,
		"answer":   answer,
		"language": req.Language,
		"cached":   cached,
	})
}
