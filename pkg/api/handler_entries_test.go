package api

import (
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/logshield/pkg/config"
	"github.com/codeready-toolchain/logshield/pkg/logging"
	"github.com/codeready-toolchain/logshield/pkg/masking"
	"github.com/codeready-toolchain/logshield/pkg/sink"
	"github.com/codeready-toolchain/logshield/test/util"
)

func TestListEntriesHandler_DatabaseDisabled(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s.Handler(), http.MethodGet, "/api/v1/entries", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestListEntriesHandler_InvalidLimit(t *testing.T) {
	s, _ := newTestServer(t)
	s.SetDatabase(unreachableDatabase(t))

	for _, limit := range []string{"abc", "0", "-3", "1001"} {
		rec := doRequest(t, s.Handler(), http.MethodGet, "/api/v1/entries?limit="+limit, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, "limit=%s", limit)
	}
}

func TestListEntriesHandler_QueryFailure(t *testing.T) {
	s, _ := newTestServer(t)
	s.SetDatabase(unreachableDatabase(t))

	rec := doRequest(t, s.Handler(), http.MethodGet, "/api/v1/entries", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", decodeBody[ErrorResponse](t, rec).Error)
}

func TestListEntriesHandler_ReturnsMaskedEntries(t *testing.T) {
	client := util.SetupTestDatabase(t)

	svc := masking.NewService(nil)
	loggers := logging.NewProvider(sink.NewDatabaseProvider(client.Entries, slog.LevelInfo), svc)
	s := NewServer(config.DefaultServerConfig(), svc, loggers)
	s.SetDatabase(client)

	rec := doRequest(t, s.Handler(), http.MethodPost, "/api/test", `"mail mario.rossi@example.it"`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, s.Handler(), http.MethodDelete, "/api/test/3", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s.Handler(), http.MethodGet, "/api/v1/entries?category="+DemoCategory+"&limit=10", "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[EntriesResponse](t, rec)
	require.Len(t, resp.Entries, 2)
	messages := []string{resp.Entries[0].Message, resp.Entries[1].Message}
	assert.Contains(t, messages, "Test POST request. Sensitive data: mail ***@example.it")
	assert.Contains(t, messages, "Test DELETE request. Deleting data for ID 3")
	assert.NotContains(t, rec.Body.String(), "mario.rossi")

	rec = doRequest(t, s.Handler(), http.MethodGet, "/api/v1/entries?category=other", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[EntriesResponse](t, rec).Entries)
}
