package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"dealgraph.app/insight/internal/model"
	"dealgraph.app/insight/internal/timeline"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("backend base URL is required")
	}
	return nil
}

// Client reads project timelines from the knowledge backend over HTTP.
// It implements timeline.Source. Auth and retries live in the transport
// wrapper outside this module; the client itself issues plain reads.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("backend config: %w", err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// GetTimeline fetches the timeline document for project. A backend 404
// maps to timeline.ErrProjectNotFound; any other non-success response or
// decode failure maps to a timeline.TransportError.
func (c *Client) GetTimeline(ctx context.Context, project string) (model.Timeline, error) {
	start := time.Now()

	endpoint := fmt.Sprintf("%s/api/v1/projects/%s/timeline", c.baseURL, url.PathEscape(project))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.Timeline{}, &timeline.TransportError{Op: "building request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Timeline{}, &timeline.TransportError{Op: "calling knowledge backend", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return model.Timeline{}, timeline.ErrProjectNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return model.Timeline{}, &timeline.TransportError{
			Op: fmt.Sprintf("knowledge backend returned status %d", resp.StatusCode),
		}
	}

	var tl model.Timeline
	if err := json.NewDecoder(resp.Body).Decode(&tl); err != nil {
		return model.Timeline{}, &timeline.TransportError{Op: "decoding response", Err: err}
	}

	slog.DebugContext(ctx, "timeline fetched from backend",
		"project", project,
		"events", len(tl.Events),
		"duration_ms", time.Since(start).Milliseconds())

	return tl, nil
}
