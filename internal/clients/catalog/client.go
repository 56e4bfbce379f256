package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ccomp-uerj/progress-backend/internal/pkg/ctxutil"
	"github.com/ccomp-uerj/progress-backend/internal/pkg/httpx"
	"github.com/ccomp-uerj/progress-backend/internal/pkg/logger"
	"github.com/ccomp-uerj/progress-backend/internal/types"
	"github.com/ccomp-uerj/progress-backend/internal/utils"
)

// Client reads the external course catalog. The core only needs the ordered
// record list; discipline and class detail are passed through untouched for
// the presentation layer.
type Client interface {
	ListDisciplines(ctx context.Context) ([]types.RawCourseRecord, error)
	GetDiscipline(ctx context.Context, disciplineID string) (json.RawMessage, error)
	GetClass(ctx context.Context, disciplineID string, classNumber int) (json.RawMessage, error)
}

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

func ConfigFromEnv(log *logger.Logger) Config {
	timeoutSec := utils.GetEnvAsInt("CATALOG_TIMEOUT_SECONDS", 30, log)
	return Config{
		BaseURL:    strings.TrimRight(utils.GetEnv("CATALOG_BASE_URL", "https://ccompuerj-progress-backend.onrender.com", log), "/"),
		Timeout:    time.Duration(timeoutSec) * time.Second,
		MaxRetries: utils.GetEnvAsInt("CATALOG_MAX_RETRIES", 3, log),
	}
}

type client struct {
	cfg        Config
	httpClient *http.Client
	log        *logger.Logger
}

func New(log *logger.Logger, cfg Config) Client {
	return &client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log.With("client", "CatalogClient"),
	}
}

func NewFromEnv(log *logger.Logger) Client {
	return New(log, ConfigFromEnv(log))
}

func (c *client) ListDisciplines(ctx context.Context) ([]types.RawCourseRecord, error) {
	raw, err := c.get(ctx, "/disciplines")
	if err != nil {
		return nil, err
	}
	var records []types.RawCourseRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode disciplines: %w", err)
	}
	return records, nil
}

func (c *client) GetDiscipline(ctx context.Context, disciplineID string) (json.RawMessage, error) {
	return c.get(ctx, "/disciplines/"+disciplineID)
}

func (c *client) GetClass(ctx context.Context, disciplineID string, classNumber int) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/disciplines/%s/classes/%d", disciplineID, classNumber))
}

// HTTPError carries the upstream status so the retry helpers can classify it.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	msg := strings.TrimSpace(e.Body)
	if msg == "" {
		msg = "<empty body>"
	}
	if len(msg) > 1000 {
		msg = msg[:1000] + "..."
	}
	return fmt.Sprintf("catalog http %d: %s", e.StatusCode, msg)
}

func (e *HTTPError) HTTPStatusCode() int { return e.StatusCode }

func (c *client) get(ctx context.Context, path string) (json.RawMessage, error) {
	ctx = ctxutil.Default(ctx)
	urlStr := c.cfg.BaseURL + path
	backoff := 1 * time.Second

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		out, resp, err := c.getOnce(ctx, urlStr)
		if err == nil {
			return out, nil
		}
		if !httpx.IsRetryableError(err) || attempt == c.cfg.MaxRetries {
			return nil, err
		}

		sleepFor := httpx.JitterSleep(httpx.RetryAfterDuration(resp, backoff, 10*time.Second))
		c.log.Warn("Catalog request retrying",
			"url", urlStr,
			"attempt", attempt+1,
			"max_retries", c.cfg.MaxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)
		time.Sleep(sleepFor)
		backoff *= 2
	}

	return nil, fmt.Errorf("unreachable retry loop")
}

func (c *client) getOnce(ctx context.Context, urlStr string) (json.RawMessage, *http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return json.RawMessage(body), resp, nil
}
