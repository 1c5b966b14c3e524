package controller

import (
	"errors"
	"net/http"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"

	"github.com/danbal6016-collab/jblack-tarot-sub000/logic"
)

func extractUserKey(c *gin.Context) (string, error) {
	userClaims, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return "", errors.New("user not found in context")
	}

	claims, ok := userClaims.(jwt.MapClaims)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user claims"})
		return "", errors.New("invalid user claims")
	}

	userKey, ok := claims["user_key"].(string)
	if !ok || userKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_key not found in token"})
		return "", errors.New("user_key not found in token")
	}

	return userKey, nil
}

func extractIsGuest(c *gin.Context) bool {
	userClaims, exists := c.Get("user")
	if !exists {
		return false
	}
	claims, ok := userClaims.(jwt.MapClaims)
	if !ok {
		return false
	}
	guest, _ := claims["guest"].(bool)
	return guest
}

// guardStatus maps logic guard errors to HTTP statuses. Anything unmapped is
// an internal error.
func guardStatus(err error) int {
	switch {
	case errors.Is(err, logic.ErrInsufficientCoins):
		return http.StatusPaymentRequired
	case errors.Is(err, logic.ErrDailyQuotaExceeded), errors.Is(err, logic.ErrGuestTrialUsed):
		return http.StatusTooManyRequests
	case errors.Is(err, logic.ErrTierTooLow):
		return http.StatusForbidden
	case errors.Is(err, logic.ErrAuthRequired):
		return http.StatusUnauthorized
	case errors.Is(err, logic.ErrUnknownCategory), errors.Is(err, logic.ErrInvalidTransition), errors.Is(err, logic.ErrUnknownPackage):
		return http.StatusBadRequest
	case errors.Is(err, logic.ErrPaymentFailed):
		return http.StatusPaymentRequired
	}
	return http.StatusInternalServerError
}
