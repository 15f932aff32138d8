package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/aljaz-ferenc/budget-app/models"
)

func TestOwnedBy_RejectsForeignTransaction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	claims := &models.Claims{UserID: "u1"}
	foreign := &models.Transaction{ID: "t1", UserID: "u2"}

	if ownedBy(c, claims, foreign) {
		t.Fatal("foreign transaction passed the ownership check")
	}
	if recorder.Code != http.StatusNotFound {
		t.Errorf("code = %d, want %d", recorder.Code, http.StatusNotFound)
	}
	var body map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	// Same body as a genuinely missing document: ownership must not be
	// distinguishable from absence.
	if body["message"] != "transaction not found" {
		t.Errorf("message = %q, want transaction not found", body["message"])
	}
}

func TestOwnedBy_AcceptsOwnTransaction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	claims := &models.Claims{UserID: "u1"}
	own := &models.Transaction{ID: "t1", UserID: "u1"}

	if !ownedBy(c, claims, own) {
		t.Fatal("own transaction failed the ownership check")
	}
	if recorder.Body.Len() != 0 {
		t.Errorf("unexpected response body: %s", recorder.Body.String())
	}
}
