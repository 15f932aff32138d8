package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aljaz-ferenc/budget-app/models"
	"github.com/aljaz-ferenc/budget-app/state"
)

func TestLogin_StoresTokenAndState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"token":  "tok-123",
			"user": models.UserView{
				ID:       "u1",
				Currency: "EUR",
				Incomes:  []models.Transaction{{ID: "t1", Amount: 100, Type: models.TransactionIncome}},
				Savings:  []models.Saving{},
				Budgets:  []models.Budget{},
			},
		})
	}))
	defer server.Close()

	store := state.NewStore()
	c := New(server.URL, store)

	if err := c.Login(context.Background(), "ana@example.com", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if c.Token() != "tok-123" {
		t.Errorf("token = %q, want tok-123", c.Token())
	}
	snap := store.Snapshot()
	if snap.ID != "u1" || len(snap.Incomes) != 1 {
		t.Errorf("state not reconciled: %+v", snap)
	}
}

func TestCreateBudget_ReconcilesAfterSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"budget": models.Budget{ID: "b1", Name: "Groceries", Amount: 300, Transactions: []models.Transaction{}},
		})
	}))
	defer server.Close()

	store := state.NewStore()
	c := New(server.URL, store)
	c.token = "tok"

	budget, err := c.CreateBudget(context.Background(), "Groceries", 300)
	if err != nil {
		t.Fatalf("CreateBudget: %v", err)
	}
	if budget.ID != "b1" {
		t.Errorf("budget.ID = %q", budget.ID)
	}
	if got := store.Snapshot().Budgets; len(got) != 1 || got[0].ID != "b1" {
		t.Errorf("budgets = %+v, want server-assigned budget", got)
	}
}

func TestMutationFailure_LeavesStateUntouched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "fail",
			"message": "budget name missing",
		})
	}))
	defer server.Close()

	store := state.NewStore()
	c := New(server.URL, store)

	_, err := c.CreateBudget(context.Background(), "", 300)
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "budget name missing" {
		t.Errorf("error = %q, want server message", err.Error())
	}
	if got := store.Snapshot().Budgets; len(got) != 0 {
		t.Errorf("failed mutation changed state: %+v", got)
	}
}

func TestUpdateSaving_DispatchesDelta(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "success"})
	}))
	defer server.Close()

	store := state.NewStore()
	store.Dispatch(state.AddSaving{Saving: models.Saving{ID: "s1", Name: "Bike", Amount: 500}})

	c := New(server.URL, store)
	if err := c.UpdateSaving(context.Background(), "s1", 150); err != nil {
		t.Fatalf("UpdateSaving: %v", err)
	}
	if err := c.UpdateSaving(context.Background(), "s1", -50); err != nil {
		t.Fatalf("UpdateSaving: %v", err)
	}

	if got := store.Snapshot().Savings[0].Saved; got != 100 {
		t.Errorf("saved = %v, want 100", got)
	}
}

func TestLogout_ResetsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "success"})
	}))
	defer server.Close()

	store := state.NewStore()
	store.Dispatch(state.SetUser{User: models.UserView{ID: "u1"}})

	c := New(server.URL, store)
	c.token = "tok"

	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if c.Token() != "" {
		t.Error("token survived logout")
	}
	if store.Snapshot().ID != "" {
		t.Error("state survived logout")
	}
}
