package petlookup

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	PathGetByID            = "/battle_pets/get_by_id"
	PathListDoubleCounters = "/battle_pets/list_double_counters"
)

// Client handles HTTP communication with the battle pets service
type Client struct {
	endpoint string
	http     *resty.Client
	parser   *Parser
	log      *slog.Logger
}

// NewClient creates a client for the service rooted at endpoint
func NewClient(endpoint string, timeout time.Duration, log *slog.Logger) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid endpoint: %q needs scheme and host", endpoint)
	}
	if log == nil {
		log = discardLogger()
	}

	httpClient := resty.New().
		SetBaseURL(endpoint).
		SetLogger(restyLogger{log}).
		SetRetryCount(0)
	if timeout > 0 {
		httpClient.SetTimeout(timeout)
	}

	return &Client{
		endpoint: endpoint,
		http:     httpClient,
		parser:   NewParser(),
		log:      log,
	}, nil
}

// Endpoint returns the service base URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// GetByID fetches one pet. id is forwarded unvalidated.
func (c *Client) GetByID(ctx context.Context, id string) (*PetRecord, error) {
	data, err := c.fetch(ctx, PathGetByID, "_id", id)
	if err != nil {
		return nil, err
	}
	return c.parser.ParsePet(PathGetByID, data)
}

// ListDoubleCounters fetches the pets that deal double damage to t
func (c *Client) ListDoubleCounters(ctx context.Context, t PetType) ([]PetRecord, error) {
	data, err := c.fetch(ctx, PathListDoubleCounters, "_type", string(t))
	if err != nil {
		return nil, err
	}
	return c.parser.ParsePetList(PathListDoubleCounters, data)
}

// fetch performs a single GET and returns the body of a 2xx response
func (c *Client) fetch(ctx context.Context, path, param, value string) ([]byte, error) {
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam(param, value).
		Get(path)
	if err != nil {
		c.log.Debug("lookup request failed", "path", path, param, value, "err", err)
		return nil, &NetworkError{Path: path, Err: err}
	}

	c.log.Debug("lookup response",
		"path", path, param, value,
		"status", resp.StatusCode(),
		"elapsed", time.Since(start))

	if !resp.IsSuccess() {
		return nil, &HTTPError{Path: path, StatusCode: resp.StatusCode()}
	}

	return resp.Body(), nil
}

// restyLogger routes resty's internal messages into slog
type restyLogger struct {
	log *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.log.Error(fmt.Sprintf(format, v...), "component", "resty")
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.log.Warn(fmt.Sprintf(format, v...), "component", "resty")
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.log.Debug(fmt.Sprintf(format, v...), "component", "resty")
}
