package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/danbal6016-collab/jblack-tarot-sub000/logic"
)

// UserController handles HTTP requests
type UserController struct {
	userLogic *logic.UserLogic
}

func NewUserController(logic *logic.UserLogic) *UserController {
	return &UserController{userLogic: logic}
}

// Login handles POST /auth/login
func (c *UserController) Login(ctx *gin.Context) {
	type Request struct {
		IdentityToken string `json:"identity_token" binding:"required"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, email, token, expireAt, err := c.userLogic.Login(req.IdentityToken)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user":      user, // nil until the first session start creates it
		"email":     email,
		"token":     token,
		"expire_at": expireAt,
	})
}

// GuestLogin handles POST /auth/guest
func (c *UserController) GuestLogin(ctx *gin.Context) {
	type Request struct {
		DeviceKey string `json:"device_key"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deviceKey, token, expireAt, err := c.userLogic.GuestLogin(req.DeviceKey)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"device_key": deviceKey,
		"token":      token,
		"expire_at":  expireAt,
	})
}

// GetUser handles GET /user
func (c *UserController) GetUser(ctx *gin.Context) {
	userKey, err := extractUserKey(ctx)
	if err != nil {
		return
	}

	user, err := c.userLogic.GetUser(userKey)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, user)
}
