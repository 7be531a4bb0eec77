package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gridworks/dataview/internal/catalog"
	"github.com/gridworks/dataview/internal/field"
)

// SchemaClient fetches schema documents by id.
type SchemaClient struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

func (c *SchemaClient) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *SchemaClient) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Get fetches and validates the schema document for an id.
func (c *SchemaClient) Get(ctx context.Context, id string) (*field.Schema, error) {
	endpoint := c.BaseURL + "/v1/schemas/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building schema request: %w", err)
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching schema %s: %w", id, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching schema %s: status %d", id, resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", id, err)
	}
	s, err := catalog.LoadDocument(raw, id)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", id, err)
	}
	return s, nil
}

// List returns the schema ids the remote catalogue advertises.
func (c *SchemaClient) List(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/schemas", nil)
	if err != nil {
		return nil, fmt.Errorf("building schema list request: %w", err)
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing schemas: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing schemas: status %d", resp.StatusCode)
	}
	var body struct {
		Schemas []string `json:"schemas"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding schema list: %w", err)
	}
	return body.Schemas, nil
}

// Load fetches every advertised schema and registers it in the catalogue.
func (c *SchemaClient) Load(ctx context.Context, cat *catalog.Catalog) error {
	ids, err := c.List(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		s, err := c.Get(ctx, id)
		if err != nil {
			return err
		}
		cat.Register(s)
	}
	return nil
}

// RelationClient fetches one-to-many relation rows grouped by child schema.
type RelationClient struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

func (c *RelationClient) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *RelationClient) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Fetch resolves a relation key against the grouped relations endpoint.
// When the primary endpoint fails it falls back to a per-entity fetch so a
// partial outage degrades rather than blanks the whole relation panel.
func (c *RelationClient) Fetch(ctx context.Context, key Key) ([]field.ChildGroup, error) {
	groups, err := c.fetchGrouped(ctx, key)
	if err == nil {
		return groups, nil
	}
	c.logger().Warn("grouped relation fetch failed, falling back to per-entity fetch",
		"key", key.String(), "error", err)
	return c.fetchPerEntity(ctx, key)
}

func (c *RelationClient) fetchGrouped(ctx context.Context, key Key) ([]field.ChildGroup, error) {
	q := url.Values{}
	q.Set("source_schema", key.SourceSchema)
	q.Set("source_id", key.SourceID)
	if key.TargetSchema != "" {
		q.Set("target_schema", key.TargetSchema)
	}
	if key.RelationType != "" {
		q.Set("relation_type", key.RelationType)
	}
	endpoint := c.BaseURL + "/v1/relations?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building relation request: %w", err)
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching relations: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching relations: status %d", resp.StatusCode)
	}

	var groups []field.ChildGroup
	if err := json.NewDecoder(resp.Body).Decode(&groups); err != nil {
		return nil, fmt.Errorf("decoding relations: %w", err)
	}
	return groups, nil
}

// fetchPerEntity asks for each relation direction separately and reassembles
// the grouped shape.
func (c *RelationClient) fetchPerEntity(ctx context.Context, key Key) ([]field.ChildGroup, error) {
	var groups []field.ChildGroup
	for _, direction := range []string{"source", "target"} {
		endpoint := fmt.Sprintf("%s/v1/entities/%s/%s/related/%s?direction=%s",
			c.BaseURL,
			url.PathEscape(key.SourceSchema),
			url.PathEscape(key.SourceID),
			url.PathEscape(key.TargetSchema),
			direction)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("building per-entity request: %w", err)
		}
		resp, err := c.httpClient().Do(req)
		if err != nil {
			return nil, fmt.Errorf("per-entity fetch: %w", err)
		}
		func() {
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return
			}
			var rows []field.Row
			if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
				c.logger().Warn("decoding per-entity rows", "error", err)
				return
			}
			if len(rows) == 0 {
				return
			}
			groups = append(groups, field.ChildGroup{
				Schema:       key.TargetSchema,
				Direction:    direction,
				RelationType: key.RelationType,
				Data:         rows,
			})
		}()
	}
	return groups, nil
}
