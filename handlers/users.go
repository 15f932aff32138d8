package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/aljaz-ferenc/budget-app/events"
	"github.com/aljaz-ferenc/budget-app/models"
	"github.com/aljaz-ferenc/budget-app/mongodb"
)

type updateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Currency *string `json:"currency"`
}

type budgetRequest struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type savingRequest struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type updateSavingRequest struct {
	SavingID string   `json:"savingId"`
	Amount   *float64 `json:"amount"`
}

func UpdateUser(c *gin.Context) {
	claims, ok := userClaims(c)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	fields := bson.M{}
	if req.Username != nil {
		fields["username"] = *req.Username
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Currency != nil {
		fields["currency"] = *req.Currency
	}
	if len(fields) == 0 {
		c.JSON(http.StatusOK, gin.H{"status": "success"})
		return
	}

	if err := mongodb.SetUserFields(c.Request.Context(), claims.UserID, fields); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func AddBudget(c *gin.Context) {
	claims, ok := userClaims(c)
	if !ok {
		return
	}

	var req budgetRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		fail(c, http.StatusBadRequest, "budget name missing")
		return
	}

	record := models.BudgetRecord{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Amount:       req.Amount,
		CreatedAt:    time.Now(),
		Transactions: []string{},
	}
	if err := mongodb.PushBudget(c.Request.Context(), claims.UserID, record); err != nil {
		respondError(c, err)
		return
	}

	// The canonical sub-document the client reducer merges: a fresh budget
	// always starts with an empty transaction list.
	budget := models.Budget{
		ID:           record.ID,
		Name:         record.Name,
		Amount:       record.Amount,
		CreatedAt:    record.CreatedAt,
		Transactions: []models.Transaction{},
	}

	Hub.Publish(claims.UserID, events.Event{Type: events.EventAddBudget, Payload: budget})
	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"budget": budget,
	})
}

// DeleteBudget removes the budget from the user document and cascade-deletes
// its referenced transaction documents so they cannot leak.
func DeleteBudget(c *gin.Context) {
	claims, ok := userClaims(c)
	if !ok {
		return
	}

	var req struct {
		BudgetID string `json:"budgetId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.BudgetID == "" {
		fail(c, http.StatusBadRequest, "budgetId missing")
		return
	}

	ctx := c.Request.Context()
	user, err := mongodb.FindUserByID(ctx, claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	for _, budget := range user.Budgets {
		if budget.ID == req.BudgetID {
			if err := mongodb.DeleteTransactions(ctx, budget.Transactions); err != nil {
				respondError(c, err)
				return
			}
			break
		}
	}

	if err := mongodb.PullBudget(ctx, claims.UserID, req.BudgetID); err != nil {
		respondError(c, err)
		return
	}

	Hub.Publish(claims.UserID, events.Event{Type: events.EventDeleteBudget, Payload: gin.H{"budgetId": req.BudgetID}})
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func AddSaving(c *gin.Context) {
	claims, ok := userClaims(c)
	if !ok {
		return
	}

	var req savingRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		fail(c, http.StatusBadRequest, "saving name missing")
		return
	}

	saving := models.Saving{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Amount:    req.Amount,
		Saved:     0,
		CreatedAt: time.Now(),
	}
	if err := mongodb.PushSaving(c.Request.Context(), claims.UserID, saving); err != nil {
		respondError(c, err)
		return
	}

	Hub.Publish(claims.UserID, events.Event{Type: events.EventAddSaving, Payload: saving})
	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"saving": saving,
	})
}

// UpdateSaving applies a signed funding delta. A savingId that matches
// nothing is a defined no-op, not an error.
func UpdateSaving(c *gin.Context) {
	claims, ok := userClaims(c)
	if !ok {
		return
	}

	var req updateSavingRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SavingID == "" || req.Amount == nil {
		fail(c, http.StatusBadRequest, "missing or invalid saving amount/id")
		return
	}

	matched, err := mongodb.IncSaving(c.Request.Context(), claims.UserID, req.SavingID, *req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	if matched {
		Hub.Publish(claims.UserID, events.Event{Type: events.EventUpdateSaving, Payload: gin.H{
			"savingId": req.SavingID,
			"amount":   *req.Amount,
		}})
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func DeleteSaving(c *gin.Context) {
	claims, ok := userClaims(c)
	if !ok {
		return
	}

	var req struct {
		SavingID string `json:"savingId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.SavingID == "" {
		fail(c, http.StatusBadRequest, "savingId missing")
		return
	}

	if err := mongodb.PullSaving(c.Request.Context(), claims.UserID, req.SavingID); err != nil {
		respondError(c, err)
		return
	}

	Hub.Publish(claims.UserID, events.Event{Type: events.EventDeleteSaving, Payload: gin.H{"savingId": req.SavingID}})
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
