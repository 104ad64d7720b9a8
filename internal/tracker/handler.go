package tracker

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/Vibraneum/VedStack/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service *Service
	photos  *storage.R2Client
}

func NewHandler(service *Service, photos *storage.R2Client) *Handler {
	return &Handler{service: service, photos: photos}
}

type transcriptSegment struct {
	Text   string `json:"text"`
	IsUser *bool  `json:"is_user"`
}

type transcriptRequest struct {
	SessionID string              `json:"session_id"`
	Segments  []transcriptSegment `json:"segments"`
}

// --------------------------------------------------
// Real-time transcript webhook
// --------------------------------------------------
func (h *Handler) Transcript(c *gin.Context) {
	var req transcriptRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	uid := c.Query("uid")
	if uid == "" {
		uid = "unknown_user"
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = "unknown_session"
	}

	if len(req.Segments) == 0 {
		c.JSON(http.StatusOK, gin.H{"status": StatusIgnored, "reason": "no segments"})
		return
	}

	// Combine all user-spoken text; segments without is_user count as user
	var parts []string
	for _, seg := range req.Segments {
		if seg.IsUser == nil || *seg.IsUser {
			parts = append(parts, seg.Text)
		}
	}
	fullText := strings.TrimSpace(strings.Join(parts, " "))

	preview := fullText
	if len(preview) > 100 {
		preview = preview[:100]
	}
	log.Printf("[%s] Received: %s", sessionID, preview)

	result, err := h.service.HandleUtterance(
		c.Request.Context(),
		sessionID,
		uid,
		fullText,
		time.Now(),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resultResponse(result))
}

// --------------------------------------------------
// Photo meal upload
// --------------------------------------------------
func (h *Handler) UploadPhoto(c *gin.Context) {
	if h.photos == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "photo logging is not configured"})
		return
	}

	uid := c.Query("uid")
	if uid == "" {
		uid = "unknown_user"
	}

	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo is required"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	key := fmt.Sprintf("meals/%s/%s%s", uid, uuid.New().String(), filepath.Ext(header.Filename))
	imageURL, err := h.photos.Upload(c.Request.Context(), key, file, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.HandlePhoto(
		c.Request.Context(),
		uid,
		c.PostForm("caption"),
		imageURL,
		time.Now(),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, resultResponse(result))
}

// --------------------------------------------------
// Today's macro summary
// --------------------------------------------------
func (h *Handler) DailySummary(c *gin.Context) {
	uid := c.Query("uid")
	if uid == "" {
		uid = "unknown_user"
	}

	summary, err := h.service.DailySummary(c.Request.Context(), uid, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":    time.Now().Format("2006-01-02"),
		"summary": summary,
	})
}

// --------------------------------------------------
// Session statistics
// --------------------------------------------------
func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"active_sessions": h.service.ActiveSessions(),
	})
}

func resultResponse(result *LogResult) gin.H {
	resp := gin.H{"status": result.Status}

	switch result.Status {
	case StatusIgnored:
		resp["reason"] = result.Reason
	case StatusDuplicate:
		resp["reason"] = result.Reason
		resp["previous_log_id"] = result.PreviousLogID
	case StatusLogged:
		resp["message"] = result.Message
		resp["data"] = gin.H{
			"log_id":      result.Entry.ID,
			"calories":    result.Entry.Totals.Calories,
			"protein":     result.Entry.Totals.Protein,
			"carbs":       result.Entry.Totals.Carbs,
			"fat":         result.Entry.Totals.Fat,
			"meal_type":   result.Entry.MealType,
			"daily_total": result.DailyTotal,
			"remaining":   result.Remaining,
		}
	}

	return resp
}
