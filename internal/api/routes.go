package api

import (
	"net/http"

	"asanaflow/yoga-app/internal/catalog"
	"asanaflow/yoga-app/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	sessionService service.SessionService,
	playbackManager *service.PlaybackManager,
	cat *catalog.Catalog,
) {

	authHandler := NewAuthHandler(authService)
	sessionHandler := NewSessionHandler(sessionService)
	poseHandler := NewPoseHandler(cat)
	playbackHandler := NewPlaybackHandler(playbackManager)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
		}

		// The pose catalog is public read-only data.
		poseGroup := apiV1.Group("/poses")
		{
			poseGroup.GET("", poseHandler.ListPoses)
			poseGroup.GET("/search", poseHandler.SearchPoses)
		}
	}

	protected := apiV1.Group("")
	if authService.Enabled() {
		protected.Use(AuthMiddleware(jwtSecret))
	}
	{
		sessionGroup := protected.Group("/sessions")
		{
			sessionGroup.POST("", sessionHandler.GenerateSession)
			sessionGroup.GET("", sessionHandler.ListSessions)
			sessionGroup.GET("/:id", sessionHandler.GetSession)
			sessionGroup.DELETE("/:id", sessionHandler.DeleteSession)

			// --- Playback ---
			sessionGroup.GET("/:id/playback", playbackHandler.Status)
			sessionGroup.POST("/:id/playback/start", playbackHandler.Start)
			sessionGroup.POST("/:id/playback/pause", playbackHandler.Pause)
			sessionGroup.POST("/:id/playback/resume", playbackHandler.Resume)
			sessionGroup.POST("/:id/playback/next", playbackHandler.Next)
			sessionGroup.POST("/:id/playback/previous", playbackHandler.Previous)
			sessionGroup.POST("/:id/playback/reset", playbackHandler.Reset)
		}
	}
}
