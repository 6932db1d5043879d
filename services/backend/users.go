package backend

import (
	"context"
	"encoding/json"
	"net/http"

	"courtbook/models"
)

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/api/users/login", req, &user, nil); err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates an account. Some deployments answer with a plain message
// instead of the user record; the submitted name and email are returned then.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/api/users/register", req, &raw, nil); err != nil {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil || user.Email == "" {
		return &models.User{ID: user.ID, Name: req.Name, Email: req.Email, Number: req.Number}, nil
	}
	return &user, nil
}

func (c *Client) GetAllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/api/users/getAllUsers", nil, &users, nil); err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}
