package mediahost

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"day-diary/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func testConfig() *config.Config {
	return &config.Config{
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		GoogleRefreshToken: "refresh-token",
		DriveFolder:        "day-diary",
	}
}

func newFakeDrive(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewDriveHost_ResolvesExistingFolder(t *testing.T) {
	var listedQuery string

	srv := newFakeDrive(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		listedQuery = r.URL.Query().Get("q")
		json.NewEncoder(w).Encode(map[string]any{
			"files": []map[string]string{{"id": "folder-1", "name": "day-diary"}},
		})
	})

	h, err := NewDriveHost(context.Background(), testConfig(),
		option.WithEndpoint(srv.URL),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	assert.Equal(t, "folder-1", h.folderID)
	assert.Contains(t, listedQuery, "name='day-diary'")
	assert.Contains(t, listedQuery, "application/vnd.google-apps.folder")
}

func TestNewDriveHost_CreatesMissingFolder(t *testing.T) {
	srv := newFakeDrive(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(map[string]any{"files": []any{}})
		case http.MethodPost:
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "day-diary", body["name"])
			json.NewEncoder(w).Encode(map[string]string{"id": "created-folder"})
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	})

	h, err := NewDriveHost(context.Background(), testConfig(),
		option.WithEndpoint(srv.URL),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	assert.Equal(t, "created-folder", h.folderID)
}

func TestDriveHost_Delete(t *testing.T) {
	var deletedPath string

	srv := newFakeDrive(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(map[string]any{
				"files": []map[string]string{{"id": "folder-1"}},
			})
		case http.MethodDelete:
			deletedPath = r.URL.Path
			w.WriteHeader(http.StatusNoContent)
		}
	})

	h, err := NewDriveHost(context.Background(), testConfig(),
		option.WithEndpoint(srv.URL),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)

	require.NoError(t, h.Delete(context.Background(), "obj-42"))
	assert.Contains(t, deletedPath, "obj-42")
}
