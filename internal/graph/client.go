package graph

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/arangodb/go-driver/v2/connection"

	"dealgraph.app/insight/internal/model"
	"dealgraph.app/insight/internal/timeline"
)

type Config struct {
	URL      string
	Username string
	Password string
	Database string
}

func (c Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("arangodb URL is required")
	}
	if c.Username == "" {
		return fmt.Errorf("arangodb username is required")
	}
	if c.Database == "" {
		return fmt.Errorf("arangodb database name is required")
	}
	return nil
}

// Client reads negotiation timelines and the use-case catalog straight from
// the knowledge graph. It implements timeline.Source for deployments where
// the graph database is reachable directly instead of through the backend
// HTTP API.
type Client struct {
	conn         connection.Connection
	arangoClient arangodb.Client
	db           arangodb.Database
	cfg          Config
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("arangodb config: %w", err)
	}

	endpoint := connection.NewRoundRobinEndpoints([]string{cfg.URL})
	conn := connection.NewHttp2Connection(connection.DefaultHTTP2ConfigurationWrapper(endpoint, true))

	auth := connection.NewBasicAuth(cfg.Username, cfg.Password)
	if err := conn.SetAuthentication(auth); err != nil {
		return nil, fmt.Errorf("arangodb auth: %w", err)
	}

	arangoClient := arangodb.NewClient(conn)

	db, err := arangoClient.GetDatabase(ctx, cfg.Database, nil)
	if err != nil {
		return nil, fmt.Errorf("get database: %w", err)
	}

	return &Client{
		conn:         conn,
		arangoClient: arangoClient,
		db:           db,
		cfg:          cfg,
	}, nil
}

func (c *Client) Close() error {
	return nil
}

// GetTimeline returns the timeline document for project. An absent project
// maps to timeline.ErrProjectNotFound; driver failures map to a
// timeline.TransportError so callers see the same taxonomy regardless of
// which source backs them.
func (c *Client) GetTimeline(ctx context.Context, project string) (model.Timeline, error) {
	start := time.Now()

	query := `
		FOR t IN timelines
			FILTER t.project == @project
			LIMIT 1
			RETURN { project: t.project, customer: t.customer, timeline: t.timeline }
	`

	cursor, err := c.db.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]any{"project": project},
	})
	if err != nil {
		return model.Timeline{}, &timeline.TransportError{Op: "querying knowledge graph", Err: err}
	}
	defer cursor.Close()

	if !cursor.HasMore() {
		return model.Timeline{}, timeline.ErrProjectNotFound
	}

	var tl model.Timeline
	if _, err := cursor.ReadDocument(ctx, &tl); err != nil {
		return model.Timeline{}, &timeline.TransportError{Op: "reading timeline document", Err: err}
	}

	slog.DebugContext(ctx, "timeline fetched from graph",
		"project", project,
		"events", len(tl.Events),
		"duration_ms", time.Since(start).Milliseconds())

	return tl, nil
}

// LoadCatalog returns the use-case catalog in its stored order.
func (c *Client) LoadCatalog(ctx context.Context) ([]model.CoverageRecord, error) {
	query := `
		FOR u IN use_cases
			SORT u.ordinal ASC
			RETURN u
	`

	cursor, err := c.db.Query(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("querying use cases: %w", err)
	}
	defer cursor.Close()

	var records []model.CoverageRecord
	for cursor.HasMore() {
		var rec model.CoverageRecord
		if _, err := cursor.ReadDocument(ctx, &rec); err != nil {
			return nil, fmt.Errorf("reading use case document: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}
