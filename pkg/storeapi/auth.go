package storeapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Hamza287/brenvick-dashboard/internal/models"
)

// authResponse is the login/signup reply shape.
type authResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    models.User `json:"user"`
	Token   string      `json:"token"`
}

// Login authenticates a storefront account and returns the user plus the
// issued bearer token.
func (c *Client) Login(ctx context.Context, identifier, password string) (*models.User, string, error) {
	payload := map[string]string{"identifier": identifier, "password": password}
	var resp authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/login", "", payload, &resp); err != nil {
		return nil, "", err
	}
	if !resp.Success {
		return nil, "", &APIError{StatusCode: http.StatusOK, Message: firstNonEmpty(resp.Message, "login failed")}
	}
	return &resp.User, resp.Token, nil
}

// Signup registers a new storefront account.
func (c *Client) Signup(ctx context.Context, fields map[string]string) (*models.User, string, error) {
	var resp authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/signup", "", fields, &resp); err != nil {
		return nil, "", err
	}
	if !resp.Success {
		return nil, "", &APIError{StatusCode: http.StatusOK, Message: firstNonEmpty(resp.Message, "registration failed")}
	}
	return &resp.User, resp.Token, nil
}

// FetchUser loads a user record by id.
func (c *Client) FetchUser(ctx context.Context, token string, id int) (*models.User, error) {
	var user models.User
	if err := c.doEnvelope(ctx, http.MethodGet, fmt.Sprintf("/api/User/%d", id), token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
