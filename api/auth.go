package api

import (
	"context"
	"net/http"

	"github.com/user/snsclone-go/models"
)

// CreateSession exchanges credentials for a token pair. No auth header is sent.
func (c *Client) CreateSession(ctx context.Context, cred models.Credential) (models.TokenPair, error) {
	var tokens models.TokenPair
	err := c.doJSON(ctx, request{op: "create session", method: http.MethodPost, path: pathSessionCreate}, cred, &tokens)
	return tokens, err
}

// Register creates an account. No auth header is sent.
func (c *Client) Register(ctx context.Context, cred models.Credential) (models.Account, error) {
	var account models.Account
	err := c.doJSON(ctx, request{op: "register", method: http.MethodPost, path: pathRegister}, cred, &account)
	return account, err
}
