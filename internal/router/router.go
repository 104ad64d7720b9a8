package router

import (
	"time"

	"github.com/Vibraneum/VedStack/internal/tracker"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(handler *tracker.Handler) *gin.Engine {
	r := gin.Default()

	// Omi webhooks arrive from anywhere
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "online",
			"service": "VedStack Food Tracker",
			"version": "1.0.0",
			"endpoints": gin.H{
				"health":      "/health",
				"omi_webhook": "/omi/transcript",
				"photo_meal":  "/meals/photo",
				"summary":     "/meals/summary",
				"stats":       "/stats",
			},
		})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/stats", handler.Stats)

	r.POST("/omi/transcript", handler.Transcript)
	r.POST("/meals/photo", handler.UploadPhoto)
	r.GET("/meals/summary", handler.DailySummary)

	return r
}
