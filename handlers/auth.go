package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/aljaz-ferenc/budget-app/aggregate"
	"github.com/aljaz-ferenc/budget-app/events"
	"github.com/aljaz-ferenc/budget-app/logger"
	"github.com/aljaz-ferenc/budget-app/middleware"
	"github.com/aljaz-ferenc/budget-app/models"
	"github.com/aljaz-ferenc/budget-app/mongodb"
)

// Wired from main before the router starts serving.
var (
	Aggregator *aggregate.Builder
	Hub        *events.Hub
)

const defaultCurrency = "EUR"

type registerRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
	Currency        string `json:"currency"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" || req.PasswordConfirm == "" {
		fail(c, http.StatusUnauthorized, "credentials missing")
		return
	}
	if req.Password != req.PasswordConfirm {
		fail(c, http.StatusBadRequest, "passwords do not match")
		return
	}
	if len(req.Password) < 6 {
		fail(c, http.StatusBadRequest, "password must be at least 6 characters long")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		respondError(c, err)
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	user := &models.User{
		ID:       uuid.NewString(),
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		Currency: currency,
		Budgets:  []models.BudgetRecord{},
		Incomes:  []string{},
		Savings:  []models.Saving{},
	}

	if err := mongodb.CreateUser(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}

	issueSession(c, http.StatusCreated, user.ID)
}

func Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		fail(c, http.StatusUnauthorized, "credentials missing")
		return
	}

	user, err := mongodb.FindUserByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, models.ErrUserNotFound) {
		fail(c, http.StatusBadRequest, "user with this email doesn't exist")
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		fail(c, http.StatusBadRequest, "password incorrect")
		return
	}

	issueSession(c, http.StatusOK, user.ID)
}

// AutoLogin resumes a session from a still-valid token: same aggregation as
// login, fresh token.
func AutoLogin(c *gin.Context) {
	claims, ok := userClaims(c)
	if !ok {
		return
	}
	issueSession(c, http.StatusOK, claims.UserID)
}

func Logout(c *gin.Context) {
	claims, ok := userClaims(c)
	if !ok {
		return
	}
	tokenString := c.GetString(middleware.ContextTokenKey)

	expiresAt := claims.ExpiresAt.Time
	middleware.RevokedTokens.Revoke(tokenString, expiresAt)
	if err := mongodb.InsertRevocation(c.Request.Context(), tokenString, expiresAt); err != nil {
		// The in-memory revocation already took effect; persistence failure
		// only matters across a restart.
		logger.Get().Error("failed to persist token revocation", zap.Error(err))
	}

	logger.Get().Info("user logged out", zap.String("user_id", claims.UserID))
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// issueSession aggregates the user view, signs a token and writes the
// {status, user, token} response register, login and auto-login share.
func issueSession(c *gin.Context, code int, userID string) {
	view, err := Aggregator.ViewByID(c.Request.Context(), userID)
	if errors.Is(err, models.ErrUserNotFound) {
		fail(c, http.StatusUnauthorized, "user not found")
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := middleware.IssueToken(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie("budget-app", token, int(middleware.TokenTTL.Seconds()), "/", "", true, true)
	c.JSON(code, gin.H{
		"status": "success",
		"user":   view,
		"token":  token,
	})
}
