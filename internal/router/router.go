package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/aquaed/aquaed-backend/internal/config"
	"github.com/aquaed/aquaed-backend/internal/handler"
	"github.com/aquaed/aquaed-backend/internal/middleware"
	"github.com/aquaed/aquaed-backend/internal/response"
	"github.com/aquaed/aquaed-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Quiz      *handler.QuizHandler
	Education *handler.EducationHandler
	Question  *handler.QuestionHandler
	WS        *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for the generation endpoints (10 requests per minute per
	// IP). Every request behind it may fan out to the LLM, so the window is
	// tight compared to the rest of the API.
	generateLimiter := middleware.NewRateLimiter(10, time.Minute)

	// ─── 1. Auth Group (Public) ────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/visitor", handlers.Auth.IssueVisitorToken)
		auth.POST("/admin/login", handlers.Auth.AdminLogin)
	}

	// ─── 2. Quiz Group (Visitor JWT) ───────────────────────────────────
	quizAPI := router.Group("/api/v1/quiz")
	quizAPI.Use(middleware.RequireVisitorJWT(authService))
	{
		quizAPI.POST("/session", handlers.Quiz.StartSession)
		quizAPI.GET("/session", handlers.Quiz.GetSession)
		quizAPI.PUT("/session/answers", handlers.Quiz.RecordAnswer)
		quizAPI.POST("/session/grade", generateLimiter.Middleware(), handlers.Quiz.Grade)
		quizAPI.GET("/attempts", handlers.Quiz.ListAttempts)
	}

	// ─── 3. Education Group ────────────────────────────────────────────
	// The FAQ question list is public; generation endpoints require a
	// visitor token and share the generation rate limit.
	educationAPI := router.Group("/api/v1/education")
	{
		educationAPI.GET("/faq", handlers.Education.ListFAQ)

		generated := educationAPI.Group("")
		generated.Use(middleware.RequireVisitorJWT(authService), generateLimiter.Middleware())
		{
			generated.POST("/fun-fact", handlers.Education.FunFact)
			generated.POST("/faq/answer", handlers.Education.FAQAnswer)
		}
	}

	// ─── 4. WebSocket Group (Visitor WS Auth) ──────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireVisitorWSAuth(authService))
	{
		ws.GET("/quiz/session/grade", handlers.WS.GradeStream)
	}

	// ─── 5. Admin Group (Admin JWT) ────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		adminAPI.GET("/questions", handlers.Question.ListQuestions)
		adminAPI.POST("/questions", handlers.Question.AddQuestion)
		adminAPI.PUT("/questions", handlers.Question.ReplaceQuestions)
		adminAPI.PUT("/questions/:id", handlers.Question.UpdateQuestion)
		adminAPI.DELETE("/questions/:id", handlers.Question.DeleteQuestion)
		adminAPI.POST("/questions/refresh-cache", handlers.Question.RefreshBankCache)
	}

	return router
}
