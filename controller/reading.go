package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/danbal6016-collab/jblack-tarot-sub000/logic"
)

// ReadingController handles HTTP requests
type ReadingController struct {
	readingLogic *logic.ReadingLogic
}

func NewReadingController(logic *logic.ReadingLogic) *ReadingController {
	return &ReadingController{readingLogic: logic}
}

// CreateReading handles POST /readings
func (c *ReadingController) CreateReading(ctx *gin.Context) {
	userKey, err := extractUserKey(ctx)
	if err != nil {
		return
	}

	type Request struct {
		Category  string `json:"category" binding:"required"`
		Question  string `json:"question"`
		Cards     []int  `json:"cards" binding:"required"`
		BirthData string `json:"birth_data"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reading, err := c.readingLogic.CommitReading(ctx.Request.Context(), userKey, req.Category, req.Question, req.Cards, req.BirthData)
	if err != nil {
		ctx.JSON(guardStatus(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, reading)
}

// GetReading handles GET /readings/:id, used to poll for generated card art
func (c *ReadingController) GetReading(ctx *gin.Context) {
	userKey, err := extractUserKey(ctx)
	if err != nil {
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reading ID"})
		return
	}

	reading, err := c.readingLogic.GetReading(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "reading not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if reading.UserKey != userKey {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "reading not found"})
		return
	}

	ctx.JSON(http.StatusOK, reading)
}

// GetReadings handles GET /readings
func (c *ReadingController) GetReadings(ctx *gin.Context) {
	userKey, err := extractUserKey(ctx)
	if err != nil {
		return
	}

	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
	}

	readings, err := c.readingLogic.GetHistory(userKey, limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, readings)
}
