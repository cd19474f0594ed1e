// Package logicapi provides a client for the external service that
// owns generic logic records. The caller's bearer token is forwarded
// verbatim; this service holds no credentials of its own.
package logicapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// ErrLogicNotFound is returned when the requested generic logic record
// does not exist upstream.
var ErrLogicNotFound = errors.New("generic logic not found")

// RequestError is returned for any other non-2xx upstream response. The
// upstream body is kept for logging only.
type RequestError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("logic service request failed with status %d", e.StatusCode)
}

// GenericLogic is the externally-owned logic record as served by the
// logic service.
type GenericLogic struct {
	PermanentIdentity uuid.UUID `json:"permanentIdentity"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Revision          int       `json:"revision"`
	CreationTimestamp time.Time `json:"creationTimestamp"`
}

// Client defines read access to generic logic records.
type Client interface {
	// GetAll retrieves every generic logic record visible to the token.
	GetAll(ctx context.Context, token string) ([]GenericLogic, error)

	// GetByID retrieves the latest revision of a generic logic record
	// by its permanent identity. Returns ErrLogicNotFound if the record
	// does not exist.
	GetByID(ctx context.Context, token string, id uuid.UUID) (*GenericLogic, error)
}

// restyClient implements Client over HTTP.
type restyClient struct {
	http   *resty.Client
	logger *slog.Logger
}

// Ensure restyClient implements the Client interface.
var _ Client = (*restyClient)(nil)

// NewClient creates a logic service client for the given base URL.
// If logger is nil, the default is used.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) Client {
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &restyClient{
		http:   httpClient,
		logger: logger.With(slog.String("component", "logic_client")),
	}
}

// GetAll implements Client.GetAll.
func (c *restyClient) GetAll(ctx context.Context, token string) ([]GenericLogic, error) {
	var logics []GenericLogic

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&logics).
		Get("/api/v1/logic")
	if err != nil {
		return nil, fmt.Errorf("logic service request failed: %w", err)
	}
	if err := c.checkResponse(resp); err != nil {
		return nil, err
	}
	return logics, nil
}

// GetByID implements Client.GetByID.
func (c *restyClient) GetByID(
	ctx context.Context,
	token string,
	id uuid.UUID,
) (*GenericLogic, error) {
	var logic GenericLogic

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&logic).
		SetPathParam("id", id.String()).
		Get("/api/v1/logic/{id}")
	if err != nil {
		return nil, fmt.Errorf("logic service request failed: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrLogicNotFound
	}
	if err := c.checkResponse(resp); err != nil {
		return nil, err
	}
	return &logic, nil
}

// checkResponse converts non-2xx responses into a RequestError. The
// upstream body never reaches our own response path.
func (c *restyClient) checkResponse(resp *resty.Response) error {
	if !resp.IsError() {
		return nil
	}

	c.logger.Warn("logic service returned an error",
		slog.Int("status", resp.StatusCode()))

	return &RequestError{
		StatusCode: resp.StatusCode(),
		Body:       string(resp.Body()),
	}
}
