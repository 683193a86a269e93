package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/hirely/internal/auth"
	"github.com/justsurfingit/hirely/internal/logging"
	"github.com/justsurfingit/hirely/internal/services"
)

// Deps are the collaborators the HTTP layer needs. Identity and Admin are nil
// when their credentials are absent.
type Deps struct {
	Log     *logging.Logger
	Version string

	Jobs      *services.JobService
	SavedJobs *services.SavedJobsService
	JobChat   services.JobChatResponder
	SiteChat  *services.WebsiteChatResponder
	Email     *services.EmailService

	Identity    auth.IdentityProvider
	Admin       auth.UserAdmin
	AdminEmails []string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(d.Log), CORS())

	var verifier auth.TokenVerifier
	if d.Identity != nil {
		verifier = d.Identity
	}
	optional := auth.OptionalSession(verifier, d.Log)
	required := auth.RequireSession(verifier, d.Log)

	jobHandler := NewJobHandler(d.Jobs, d.Log)
	savedHandler := NewSavedJobsHandler(d.SavedJobs)
	chatHandler := NewChatbotHandler(d.Jobs, d.JobChat, d.SiteChat, d.Log)
	userHandler := NewUserHandler(d.Admin, d.Log)
	authHandler := NewAuthHandler(d.Identity, d.Admin, d.Log)
	contactHandler := NewContactHandler(d.Email)

	api := r.Group("/api")
	{
		api.GET("/health", HealthCheck(d.Version))

		// Job Routes
		api.GET("/jobs", jobHandler.ListJobs)
		api.GET("/jobs/search", jobHandler.SearchJobs)
		api.GET("/jobs/:jobId", jobHandler.GetJob)

		// Chat Routes
		api.POST("/chatbot", chatHandler.Chat)
		api.POST("/website-chatbot", chatHandler.WebsiteChat)

		api.POST("/contact", contactHandler.Submit)

		saved := api.Group("/saved-jobs", optional)
		{
			saved.GET("", savedHandler.List)
			saved.POST("", savedHandler.Save)
			saved.DELETE("", savedHandler.Clear)
			saved.GET("/:jobId", savedHandler.IsSaved)
			saved.DELETE("/:jobId", savedHandler.Unsave)
		}

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/sign-in", authHandler.SignIn)
			authGroup.POST("/sign-up", authHandler.SignUp)
			authGroup.POST("/password-reset", authHandler.PasswordReset)
			authGroup.POST("/sign-out", required, authHandler.SignOut)
			authGroup.POST("/verify-email", required, authHandler.SendVerification)
			authGroup.PATCH("/profile", required, authHandler.UpdateProfile)
			authGroup.GET("/me", required, authHandler.Me)
		}

		users := api.Group("/users", optional, auth.RequireAdmin(d.AdminEmails))
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", userHandler.CreateUser)
			users.DELETE("/:uid", userHandler.DeleteUser)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	return r
}

// HealthCheck reports liveness.
func HealthCheck(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "hirely",
			"version": version,
		})
	}
}
