package fetch

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridworks/dataview/internal/catalog"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSchemaClientGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/schemas/orders", r.URL.Path)
		w.Write([]byte(`{"id": "orders", "fields": [{"id": "f1", "name": "number", "component": "text"}]}`))
	}))
	defer srv.Close()

	c := &SchemaClient{BaseURL: srv.URL, Logger: discardLogger()}
	s, err := c.Get(context.Background(), "orders")
	require.NoError(t, err)
	assert.Equal(t, "orders", s.ID)
	require.NotNil(t, s.Field("number"))
}

func TestSchemaClientGetInvalidDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"fields": [{"id": "f1"}]}`))
	}))
	defer srv.Close()

	c := &SchemaClient{BaseURL: srv.URL, Logger: discardLogger()}
	_, err := c.Get(context.Background(), "orders")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orders")
}

func TestSchemaClientGetNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := &SchemaClient{BaseURL: srv.URL, Logger: discardLogger()}
	_, err := c.Get(context.Background(), "orders")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestSchemaClientList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/schemas", r.URL.Path)
		w.Write([]byte(`{"schemas": ["invoices", "line-items"]}`))
	}))
	defer srv.Close()

	c := &SchemaClient{BaseURL: srv.URL, Logger: discardLogger()}
	ids, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"invoices", "line-items"}, ids)
}

func TestSchemaClientLoadRegistersAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/schemas":
			w.Write([]byte(`{"schemas": ["invoices", "contacts"]}`))
		case "/v1/schemas/invoices":
			w.Write([]byte(`{"id": "invoices", "fields": [{"id": "f1", "name": "number", "component": "text"}]}`))
		case "/v1/schemas/contacts":
			// No document id: the requested id is the fallback.
			w.Write([]byte(`{"fields": [{"id": "f1", "name": "email", "component": "email"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	cat := catalog.New()
	c := &SchemaClient{BaseURL: srv.URL, Logger: discardLogger()}
	require.NoError(t, c.Load(context.Background(), cat))
	assert.Equal(t, []string{"invoices", "contacts"}, cat.SchemaIDs())
	require.NotNil(t, cat.Schema("contacts"))
	assert.Equal(t, "contacts", cat.Schema("contacts").ID)
}

func TestSchemaClientLoadStopsOnBadDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/schemas" {
			w.Write([]byte(`{"schemas": ["broken"]}`))
			return
		}
		w.Write([]byte(`{"fields": [{"id": "f1"}]}`))
	}))
	defer srv.Close()

	c := &SchemaClient{BaseURL: srv.URL, Logger: discardLogger()}
	err := c.Load(context.Background(), catalog.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestRelationClientGrouped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/relations", r.URL.Path)
		q := r.URL.Query()
		require.Equal(t, "invoices", q.Get("source_schema"))
		require.Equal(t, "inv-1", q.Get("source_id"))
		w.Write([]byte(`[{"schema": "line-items", "data": [{"sku": "A"}]}]`))
	}))
	defer srv.Close()

	c := &RelationClient{BaseURL: srv.URL, Logger: discardLogger()}
	groups, err := c.Fetch(context.Background(), Key{SourceSchema: "invoices", SourceID: "inv-1"})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "line-items", groups[0].Schema)
	require.Len(t, groups[0].Data, 1)
	assert.Equal(t, "A", groups[0].Data[0].String("sku"))
}

func TestRelationClientFallsBackPerEntity(t *testing.T) {
	var perEntityCalls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/relations" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		perEntityCalls++
		require.Equal(t, "/v1/entities/invoices/inv-1/related/line-items", r.URL.Path)
		if r.URL.Query().Get("direction") == "source" {
			w.Write([]byte(`[{"sku": "A"}]`))
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := &RelationClient{BaseURL: srv.URL, Logger: discardLogger()}
	key := Key{SourceSchema: "invoices", SourceID: "inv-1", TargetSchema: "line-items"}
	groups, err := c.Fetch(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, 2, perEntityCalls)

	// Only the direction that returned rows contributes a group.
	require.Len(t, groups, 1)
	assert.Equal(t, "source", groups[0].Direction)
	assert.Equal(t, "line-items", groups[0].Schema)
}
