package handlers

import (
	"net/http"

	"gatekeeper/version"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the HTTP surface. Route registration lives here so tests
// can spin up the exact production routing without the process wiring.
func NewRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// CORS middleware: the dashboard is an external client.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.SetHTMLTemplate(DecisionTemplates)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "gatekeeper",
			"version": version.GetVersion(),
		})
	})

	posts := r.Group("/posts")
	{
		posts.POST("/submit", SubmitPost)
		posts.GET("", ListPosts)
		posts.GET("/stats/summary", GetPostStats)
		posts.GET("/:id", GetPost)
		posts.DELETE("/:id", DeletePost)
		posts.GET("/:id/approve", ApprovePost)
		posts.GET("/:id/reject", RejectPost)
		posts.PUT("/:id/posted", ConfirmPosted)
		posts.POST("/:id/posted", ConfirmPosted)
	}

	settings := r.Group("/settings")
	{
		settings.GET("", GetSettings)
		settings.PUT("", UpdateSettings)
		settings.GET("/:key", GetSettingKey)
		settings.PUT("/:key", UpdateSettingKey)
	}

	r.GET("/health", HealthCheck)
	r.GET("/dispatch-logs", GetDispatchLogs)
	r.DELETE("/dispatch-logs", ClearDispatchLogs)

	return r
}
