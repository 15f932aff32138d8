package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aljaz-ferenc/budget-app/middleware"
	"github.com/aljaz-ferenc/budget-app/models"
)

// fail writes the uniform error body: status is "fail" for 4xx and "error"
// for everything else.
func fail(c *gin.Context, code int, message string) {
	appErr := models.NewAppError(code, message)
	c.JSON(code, gin.H{"status": appErr.Status(), "message": appErr.Message})
}

// respondError maps known sentinel errors onto their status codes; anything
// unrecognized is a storage/unexpected failure.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrUserNotFound):
		fail(c, http.StatusNotFound, "user not found")
	case errors.Is(err, models.ErrTransactionNotFound):
		fail(c, http.StatusNotFound, "transaction not found")
	case errors.Is(err, models.ErrEmailTaken):
		fail(c, http.StatusUnauthorized, models.ErrEmailTaken.Error())
	default:
		fail(c, http.StatusInternalServerError, err.Error())
	}
}

// userClaims pulls the verified session claims set by the auth middleware.
func userClaims(c *gin.Context) (*models.Claims, bool) {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		fail(c, http.StatusUnauthorized, "not authenticated")
		return nil, false
	}
	claims, ok := value.(*models.Claims)
	if !ok {
		fail(c, http.StatusUnauthorized, "invalid session claims")
		return nil, false
	}
	return claims, true
}
