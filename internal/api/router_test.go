package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/backend/internal/api"
	"parley/backend/internal/interfaces/mocks"
	llmmocks "parley/backend/internal/llm/mocks"
	"parley/backend/internal/masks"
	"parley/backend/internal/store"
)

func TestRouter(t *testing.T) {
	cfg := store.NewConfigStore(nil)
	chats := store.NewChatStore(cfg, nil)
	catalog, err := masks.Load("")
	require.NoError(t, err)
	orch := mocks.NewMockChatOrchestrator(t)

	router := api.NewRouter(api.Handlers{
		Chat:     api.NewChatHandler(orch),
		Sessions: api.NewSessionHandler(chats, cfg, catalog),
		Config:   api.NewConfigHandler(cfg, catalog),
		Models:   api.NewModelHandler(mocks.NewMockModelService(t)),
		Gateway:  api.NewGatewayHandler(llmmocks.NewMockCompleter(t), mocks.NewMockSearchService(t)),
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	do := func(method, path, body string) *http.Response {
		t.Helper()
		req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
		require.NoError(t, err)
		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		t.Cleanup(func() { _ = resp.Body.Close() })
		return resp
	}

	t.Run("Health", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, do(http.MethodGet, "/healthz", "").StatusCode)
	})

	t.Run("Session routes resolve URL params", func(t *testing.T) {
		resp := do(http.MethodPost, "/api/v1/sessions", `{"title":"Routed"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		id := chats.ListSessions()[0].ID

		assert.Equal(t, http.StatusOK, do(http.MethodGet, "/api/v1/sessions/"+id, "").StatusCode)
		assert.Equal(t, http.StatusOK, do(http.MethodPut, "/api/v1/sessions/"+id+"/title", `{"title":"Renamed"}`).StatusCode)
		got, _ := chats.GetSession(id)
		assert.Equal(t, "Renamed", got.Title)

		assert.Equal(t, http.StatusOK, do(http.MethodGet, "/api/v1/sessions/"+id+"/messages?size=5", "").StatusCode)
	})

	t.Run("Stop is routed to the orchestrator", func(t *testing.T) {
		orch.On("Stop", "abc").Return(false).Once()
		assert.Equal(t, http.StatusOK, do(http.MethodPost, "/api/v1/sessions/abc/stop", "").StatusCode)
	})

	t.Run("Config and masks", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, do(http.MethodPatch, "/api/v1/config", `{"pagination_size":12}`).StatusCode)
		assert.Equal(t, 12, cfg.Get().PaginationSize)
		assert.Equal(t, http.StatusOK, do(http.MethodGet, "/api/v1/masks", "").StatusCode)
	})

	t.Run("Unknown route", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, do(http.MethodGet, "/api/v1/nope", "").StatusCode)
	})
}
