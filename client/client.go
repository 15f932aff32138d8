// Package client wraps the REST API for embedding in a mobile shell. Every
// mutator performs the network call first and reconciles the local state
// store only after the server confirms success; nothing is applied
// speculatively, so there is no rollback path.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aljaz-ferenc/budget-app/models"
	"github.com/aljaz-ferenc/budget-app/state"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	store      *state.Store
}

func New(baseURL string, store *state.Store) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		store:      store,
	}
}

// Token returns the current session token, empty when signed out.
func (c *Client) Token() string {
	return c.token
}

// apiError is the decoded {status, message} failure body.
type apiError struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (e *apiError) Error() string {
	return e.Message
}

type sessionResponse struct {
	Status string          `json:"status"`
	User   models.UserView `json:"user"`
	Token  string          `json:"token"`
}

func (c *Client) Register(ctx context.Context, username, email, password, passwordConfirm string) error {
	return c.session(ctx, "/auth/register", map[string]string{
		"username":        username,
		"email":           email,
		"password":        password,
		"passwordConfirm": passwordConfirm,
	})
}

func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.session(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// AutoLogin resumes the session held by the current token.
func (c *Client) AutoLogin(ctx context.Context) error {
	return c.session(ctx, "/auth/auto-login", nil)
}

// session posts to an auth endpoint, stores the returned token and replaces
// the whole state with the server snapshot.
func (c *Client) session(ctx context.Context, path string, body interface{}) error {
	var resp sessionResponse
	if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return err
	}
	c.token = resp.Token
	c.store.Dispatch(state.SetUser{User: resp.User})
	return nil
}

func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return err
	}
	c.token = ""
	c.store.Reset()
	return nil
}

func (c *Client) CreateBudget(ctx context.Context, name string, amount float64) (*models.Budget, error) {
	var resp struct {
		Budget models.Budget `json:"budget"`
	}
	err := c.do(ctx, http.MethodPost, "/users/budgets", map[string]interface{}{
		"name":   name,
		"amount": amount,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.store.Dispatch(state.AddBudget{Budget: resp.Budget})
	return &resp.Budget, nil
}

func (c *Client) DeleteBudget(ctx context.Context, budgetID string) error {
	err := c.do(ctx, http.MethodDelete, "/users/budgets", map[string]string{"budgetId": budgetID}, nil)
	if err != nil {
		return err
	}
	c.store.Dispatch(state.DeleteBudget{BudgetID: budgetID})
	return nil
}

func (c *Client) CreateTransaction(ctx context.Context, amount float64, description string, txnType models.TransactionType, budgetID string) (*models.Transaction, error) {
	var resp struct {
		Transaction models.Transaction `json:"transaction"`
	}
	err := c.do(ctx, http.MethodPost, "/transactions", map[string]interface{}{
		"transaction": map[string]interface{}{
			"amount":      amount,
			"description": description,
			"type":        txnType,
		},
		"budgetId": budgetID,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.store.Dispatch(state.AddTransaction{Transaction: resp.Transaction})
	return &resp.Transaction, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, transactionID string, txnType models.TransactionType, budgetID string) error {
	err := c.do(ctx, http.MethodDelete, "/transactions", map[string]interface{}{
		"transactionId":   transactionID,
		"transactionType": txnType,
		"budgetId":        budgetID,
	}, nil)
	if err != nil {
		return err
	}
	c.store.Dispatch(state.DeleteTransaction{TransactionID: transactionID, Type: txnType})
	return nil
}

func (c *Client) CreateSaving(ctx context.Context, name string, amount float64) (*models.Saving, error) {
	var resp struct {
		Saving models.Saving `json:"saving"`
	}
	err := c.do(ctx, http.MethodPost, "/users/savings", map[string]interface{}{
		"name":   name,
		"amount": amount,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.store.Dispatch(state.AddSaving{Saving: resp.Saving})
	return &resp.Saving, nil
}

// UpdateSaving applies a signed funding delta: positive adds funds, negative
// removes them.
func (c *Client) UpdateSaving(ctx context.Context, savingID string, delta float64) error {
	err := c.do(ctx, http.MethodPatch, "/users/savings", map[string]interface{}{
		"savingId": savingID,
		"amount":   delta,
	}, nil)
	if err != nil {
		return err
	}
	c.store.Dispatch(state.UpdateSaving{SavingID: savingID, Delta: delta})
	return nil
}

func (c *Client) DeleteSaving(ctx context.Context, savingID string) error {
	err := c.do(ctx, http.MethodDelete, "/users/savings", map[string]string{"savingId": savingID}, nil)
	if err != nil {
		return err
	}
	c.store.Dispatch(state.DeleteSaving{SavingID: savingID})
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &apiError{}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Message == "" {
			return fmt.Errorf("request failed with status %d", resp.StatusCode)
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
