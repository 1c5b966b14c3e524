package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/danbal6016-collab/jblack-tarot-sub000/logic"
	"github.com/danbal6016-collab/jblack-tarot-sub000/models"
)

// SessionController handles HTTP requests
type SessionController struct {
	sessionLogic *logic.SessionLogic
	flowLogic    *logic.FlowLogic
	debouncer    *logic.SnapshotDebouncer
}

func NewSessionController(
	sessionLogic *logic.SessionLogic,
	flowLogic *logic.FlowLogic,
	debouncer *logic.SnapshotDebouncer,
) *SessionController {
	return &SessionController{
		sessionLogic: sessionLogic,
		flowLogic:    flowLogic,
		debouncer:    debouncer,
	}
}

// StartSession handles POST /session/start
func (c *SessionController) StartSession(ctx *gin.Context) {
	userKey, err := extractUserKey(ctx)
	if err != nil {
		return
	}

	type Request struct {
		Email string                `json:"email"`
		Local *logic.ClientSnapshot `json:"local"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, screen, err := c.sessionLogic.StartSession(userKey, req.Email, extractIsGuest(ctx), req.Local, time.Now())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user":   user,
		"screen": screen,
	})
}

// SaveSnapshot handles PUT /session/snapshot. Saves are debounced; rapid
// ticks coalesce into one write.
func (c *SessionController) SaveSnapshot(ctx *gin.Context) {
	userKey, err := extractUserKey(ctx)
	if err != nil {
		return
	}

	type Request struct {
		Screen        string         `json:"screen" binding:"required"`
		Category      string         `json:"category"`
		Question      string         `json:"question"`
		SelectedCards datatypes.JSON `json:"selected_cards"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.debouncer.Save(&models.SessionSnapshot{
		UserKey:       userKey,
		Screen:        models.Screen(req.Screen),
		Category:      req.Category,
		Question:      req.Question,
		SelectedCards: req.SelectedCards,
	})

	ctx.JSON(http.StatusAccepted, gin.H{"status": "scheduled"})
}

// Advance handles POST /session/advance
func (c *SessionController) Advance(ctx *gin.Context) {
	userKey, err := extractUserKey(ctx)
	if err != nil {
		return
	}

	type Request struct {
		Screen   string `json:"screen" binding:"required"`
		Category string `json:"category"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := c.flowLogic.Advance(userKey, models.Screen(req.Screen), req.Category)
	if err != nil {
		ctx.JSON(guardStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, snap)
}
