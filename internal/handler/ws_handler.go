package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/aquaed/aquaed-backend/internal/middleware"
	"github.com/aquaed/aquaed-backend/internal/model"
	"github.com/aquaed/aquaed-backend/internal/quiz"
	"github.com/aquaed/aquaed-backend/internal/service"
	ws "github.com/aquaed/aquaed-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler handles the WebSocket grading stream.
type WSHandler struct {
	quizService *service.QuizService
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(quizService *service.QuizService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		quizService: quizService,
		log:         log.With().Str("component", "ws_handler").Logger(),
		upgrader:    buildUpgrader(allowedOrigins),
	}
}

// GradeStream godoc
// WS /ws/v1/quiz/session/grade
// Upgrades to WebSocket and streams per-question results as explanations
// resolve, instead of blocking until the whole batch is done.
func (h *WSHandler) GradeStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	visitorID := claims.VisitorID

	wsLog := h.log.With().
		Str("visitor_id", visitorID.String()).
		Logger()

	wsLog.Info().Msg("Visitor connected")

	for {
		var msg ws.RequestPayload
		err := ws.ReadJSON(conn, &msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			break
		}

		switch msg.Action {
		case ws.ActionGrade:
			h.handleGrade(c, conn, wsLog, &msg)
		case ws.ActionPing:
			ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			ws.WriteError(conn, "unknown action: "+string(msg.Action))
		}
	}
}

// handleGrade runs the one-shot grade, streaming each question's result as
// its explanation resolves and closing with the final score event.
func (h *WSHandler) handleGrade(c *gin.Context, conn *websocket.Conn, wsLog zerolog.Logger, msg *ws.RequestPayload) {
	language := string(model.LanguageEnglish)
	if msg.Language != "" {
		if !model.Language(msg.Language).Valid() {
			ws.WriteError(conn, "unsupported language: "+msg.Language)
			return
		}
		language = msg.Language
	}

	progress := func(res quiz.QuestionResult) {
		ws.WriteTyped(conn, ws.QuestionGradedResponse{
			Event:       ws.EventQuestionGraded,
			Index:       res.Index,
			Correct:     res.Correct,
			Explanation: res.Explanation,
		})
	}

	claims := middleware.GetClaims(c)
	result, err := h.quizService.Grade(c.Request.Context(), claims.VisitorID, language, progress)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoSession):
			ws.WriteError(conn, "no quiz session in progress")
		case errors.Is(err, quiz.ErrAlreadyGraded):
			ws.WriteError(conn, "session already graded")
		default:
			wsLog.Error().Err(err).Msg("Grade error")
			ws.WriteError(conn, "grading failed")
		}
		return
	}

	wsLog.Info().
		Int("score", result.Score).
		Int("total", result.Total).
		Msg("Session graded")

	ws.WriteTyped(conn, ws.GradedResponse{
		Event: ws.EventGraded,
		Score: result.Score,
		Total: result.Total,
	})
}
