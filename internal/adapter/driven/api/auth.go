package api

import (
	"context"
	"net/http"

	"github.com/ericfisherdev/budgetctl/internal/domain/model"
	"github.com/ericfisherdev/budgetctl/internal/domain/port/driven"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	JWTToken string `json:"jwtToken"`
}

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login exchanges email and password for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	const path = "/auth/login"

	var resp loginResponse
	err := c.call(ctx, http.MethodPost, path, driven.RequestOptions{
		Body: loginRequest{Email: email, Password: password},
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.JWTToken == "" {
		return "", &model.APIError{
			Kind:    model.ErrorKindUnknown,
			Method:  http.MethodPost,
			Path:    path,
			Message: "login response did not include a token",
		}
	}
	return resp.JWTToken, nil
}

// Register creates an account. It returns the server's confirmation message.
func (c *Client) Register(ctx context.Context, fullName, email, password string) (string, error) {
	var resp messageResponse
	err := c.call(ctx, http.MethodPost, "/auth/register", driven.RequestOptions{
		Body: registerRequest{FullName: fullName, Email: email, Password: password},
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}
