// Package boardclient talks to the board API on behalf of the autosave client.
package boardclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"freeform-backend/internal/errs"
	"freeform-backend/internal/libraries"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const defaultTimeout = 15 * time.Second

// Client calls the board API. A request context is checked before sending
// and its deadline caps the request timeout; cancelling it does not abort a
// request already on the wire.
type Client struct {
	baseURL string
	token   string
	timeout time.Duration
}

// Board is the stored board as returned by GET /api/board. Snapshot is nil
// when the user has never saved.
type Board struct {
	Snapshot    json.RawMessage `json:"snapshot"`
	SnapshotURL *string         `json:"snapshot_url"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type Profile struct {
	ID       string `json:"id"`
	APIToken string `json:"api_token"`
}

type saveBoardRequest struct {
	Snapshot json.RawMessage `json:"snapshot"`
	// omitted rather than null so a missing image keeps the stored one
	SnapshotURL *string `json:"snapshot_url,omitempty"`
}

type apiError struct {
	Error string `json:"error"`
}

func New(baseURL, sessionToken string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   sessionToken,
		timeout: timeout,
	}
}

// GetBoard loads the caller's board
func (c *Client) GetBoard(ctx context.Context) (*Board, error) {
	agent, err := c.agent(ctx, fiber.MethodGet, "/api/board")
	if err != nil {
		return nil, err
	}

	var board Board
	if err := c.do(agent, &board); err != nil {
		return nil, fmt.Errorf("get board: %w", err)
	}
	if len(board.Snapshot) == 0 || string(board.Snapshot) == "null" {
		board.Snapshot = nil
	}
	return &board, nil
}

// SaveBoard upserts the board. A nil snapshotURL leaves the stored image as is.
func (c *Client) SaveBoard(ctx context.Context, snapshot json.RawMessage, snapshotURL *string) error {
	agent, err := c.agent(ctx, fiber.MethodPost, "/api/board")
	if err != nil {
		return err
	}
	agent.JSON(saveBoardRequest{Snapshot: snapshot, SnapshotURL: snapshotURL})

	if err := c.do(agent, nil); err != nil {
		return fmt.Errorf("save board: %w", err)
	}
	return nil
}

// UploadImage sends a rendered PNG and returns its public URL
func (c *Client) UploadImage(ctx context.Context, data []byte) (string, error) {
	agent, err := c.agent(ctx, fiber.MethodPut, "/api/board/image")
	if err != nil {
		return "", err
	}
	agent.ContentType(libraries.SnapshotContentType)
	agent.Body(data)

	var res struct {
		URL string `json:"url"`
	}
	if err := c.do(agent, &res); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return res.URL, nil
}

func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	agent, err := c.agent(ctx, fiber.MethodGet, "/api/profile")
	if err != nil {
		return nil, err
	}

	var profile Profile
	if err := c.do(agent, &profile); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}

// Logout revokes the session token this client was built with
func (c *Client) Logout(ctx context.Context) error {
	agent, err := c.agent(ctx, fiber.MethodPost, "/api/session/logout")
	if err != nil {
		return err
	}
	if err := c.do(agent, nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (c *Client) agent(ctx context.Context, method, path string) (*fiber.Agent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}

	agent := fiber.AcquireAgent()
	req := agent.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	agent.Timeout(timeout)
	if c.token != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+c.token)
	}
	return agent, nil
}

// do sends the request and decodes a 2xx JSON body into out when out is not nil
func (c *Client) do(agent *fiber.Agent, out any) error {
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return err
	}

	code, body, errList := agent.Bytes()
	if len(errList) > 0 {
		return errors.Join(errList...)
	}

	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%w %d: %s", errs.ErrUnexpectedStatus, code, apiErr.Error)
		}
		return fmt.Errorf("%w %d", errs.ErrUnexpectedStatus, code)
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
