package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/aljaz-ferenc/budget-app/events"
	"github.com/aljaz-ferenc/budget-app/logger"
	"github.com/aljaz-ferenc/budget-app/models"
	"github.com/aljaz-ferenc/budget-app/mongodb"
)

type createTransactionRequest struct {
	Transaction struct {
		Amount      float64                `json:"amount"`
		Description string                 `json:"description"`
		Type        models.TransactionType `json:"type"`
	} `json:"transaction"`
	BudgetID string `json:"budgetId"`
}

type deleteTransactionRequest struct {
	TransactionID   string                 `json:"transactionId"`
	TransactionType models.TransactionType `json:"transactionType"`
	BudgetID        string                 `json:"budgetId"`
}

type updateTransactionRequest struct {
	Amount      *float64 `json:"amount"`
	Description *string  `json:"description"`
	Type        *string  `json:"type"`
}

// CreateTransaction inserts the standalone document, then pushes its
// reference into the user document. If the reference push fails the document
// is deleted again so no orphan is left behind.
func CreateTransaction(c *gin.Context) {
	claims, ok := userClaims(c)
	if !ok {
		return
	}

	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "transaction data incomplete")
		return
	}

	txnType := req.Transaction.Type
	if txnType != models.TransactionIncome && txnType != models.TransactionExpense {
		fail(c, http.StatusBadRequest, "transaction type must be income or expense")
		return
	}
	// Amounts are positive magnitudes; the sign is applied at aggregation time.
	if req.Transaction.Amount <= 0 {
		fail(c, http.StatusBadRequest, "transaction amount must be a positive magnitude")
		return
	}
	if txnType == models.TransactionExpense && req.BudgetID == "" {
		fail(c, http.StatusBadRequest, "expense transactions require a budgetId")
		return
	}

	transaction := &models.Transaction{
		ID:          uuid.NewString(),
		UserID:      claims.UserID,
		Amount:      req.Transaction.Amount,
		Description: req.Transaction.Description,
		Type:        txnType,
		CreatedAt:   time.Now(),
	}

	ctx := c.Request.Context()
	if err := mongodb.CreateTransaction(ctx, transaction); err != nil {
		respondError(c, err)
		return
	}

	if err := mongodb.PushTransactionRef(ctx, claims.UserID, txnType, req.BudgetID, transaction.ID); err != nil {
		// Compensating delete: without the reference the document would be
		// unreachable from any view.
		if delErr := mongodb.DeleteTransaction(ctx, transaction.ID); delErr != nil {
			logger.Get().Error("failed to compensate unreferenced transaction",
				zap.String("transaction_id", transaction.ID),
				zap.Error(delErr))
		}
		fail(c, http.StatusNotFound, err.Error())
		return
	}

	if txnType == models.TransactionExpense {
		transaction.BudgetID = req.BudgetID
	}

	Hub.Publish(claims.UserID, events.Event{Type: events.EventAddTransaction, Payload: transaction})
	c.JSON(http.StatusCreated, gin.H{
		"status":      "success",
		"transaction": transaction,
	})
}

// DeleteTransaction removes the reference from the user document and the
// standalone document itself.
func DeleteTransaction(c *gin.Context) {
	claims, ok := userClaims(c)
	if !ok {
		return
	}

	var req deleteTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TransactionID == "" {
		fail(c, http.StatusBadRequest, "transactionId missing")
		return
	}
	if req.TransactionType != models.TransactionIncome && req.TransactionType != models.TransactionExpense {
		fail(c, http.StatusBadRequest, "transactionType must be income or expense")
		return
	}

	ctx := c.Request.Context()
	transaction, err := mongodb.FindTransactionByID(ctx, req.TransactionID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ownedBy(c, claims, transaction) {
		return
	}

	if err := mongodb.PullTransactionRef(ctx, claims.UserID, req.TransactionType, req.BudgetID, req.TransactionID); err != nil {
		respondError(c, err)
		return
	}
	if err := mongodb.DeleteTransaction(ctx, req.TransactionID); err != nil {
		respondError(c, err)
		return
	}

	Hub.Publish(claims.UserID, events.Event{Type: events.EventDeleteTransaction, Payload: gin.H{
		"transactionId": req.TransactionID,
		"type":          req.TransactionType,
	}})
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func GetTransaction(c *gin.Context) {
	claims, ok := userClaims(c)
	if !ok {
		return
	}

	transaction, err := mongodb.FindTransactionByID(c.Request.Context(), c.Param("transactionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !ownedBy(c, claims, transaction) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"transaction": transaction,
	})
}

// ownedBy rejects operations on another user's transaction document. The
// response is indistinguishable from a missing document so ids cannot be
// probed.
func ownedBy(c *gin.Context, claims *models.Claims, transaction *models.Transaction) bool {
	if transaction.UserID != claims.UserID {
		respondError(c, models.ErrTransactionNotFound)
		return false
	}
	return true
}

func GetTransactionsByUser(c *gin.Context) {
	claims, ok := userClaims(c)
	if !ok {
		return
	}
	if c.Param("userId") != claims.UserID {
		fail(c, http.StatusForbidden, "cannot list another user's transactions")
		return
	}

	transactions, err := mongodb.FindTransactionsByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"transactions": transactions,
	})
}

// UpdateTransaction patches amount and description. Type is immutable after
// creation; no update path rewrites it.
func UpdateTransaction(c *gin.Context) {
	claims, ok := userClaims(c)
	if !ok {
		return
	}

	var req updateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Type != nil {
		fail(c, http.StatusBadRequest, "transaction type is immutable")
		return
	}

	fields := bson.M{}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			fail(c, http.StatusBadRequest, "transaction amount must be a positive magnitude")
			return
		}
		fields["amount"] = *req.Amount
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}

	id := c.Param("transactionId")
	transaction, err := mongodb.FindTransactionByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ownedBy(c, claims, transaction) {
		return
	}

	if len(fields) == 0 {
		c.JSON(http.StatusOK, gin.H{"status": "success", "transaction": transaction})
		return
	}

	transaction, err = mongodb.UpdateTransactionFields(c.Request.Context(), id, fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"transaction": transaction,
	})
}
