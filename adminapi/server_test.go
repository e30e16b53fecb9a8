package adminapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"staffbot/metrics"
	"staffbot/models"
	"staffbot/repository"
	"staffbot/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *metrics.Metrics) {
	t.Helper()

	repo := repository.NewMemoryGuildConfigRepository()
	m := metrics.New()
	configs := service.NewGuildConfigService(repo, nil, m)

	cfg := models.NewGuildConfig()
	cfg.StaffRanks = []string{"Recruit", "Officer"}
	require.NoError(t, configs.Save(context.Background(), "123", cfg))

	ts := httptest.NewServer(New("127.0.0.1:0", configs, m.Registry()).Handler())
	t.Cleanup(ts.Close)
	return ts, m
}

func getJSON(t *testing.T, url string) (int, Response) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}

func TestListGuilds(t *testing.T) {
	ts, _ := newTestServer(t)

	status, body := getJSON(t, ts.URL+"/debug/guilds")

	assert.Equal(t, http.StatusOK, status)
	assert.True(t, body.Success)
	assert.Equal(t, []interface{}{"123", "default"}, body.Data)
}

func TestGuildConfig(t *testing.T) {
	ts, _ := newTestServer(t)

	status, body := getJSON(t, ts.URL+"/debug/guilds/123/config")
	require.Equal(t, http.StatusOK, status)

	data := body.Data.(map[string]interface{})
	assert.Equal(t, []interface{}{"Recruit", "Officer"}, data["staffRanks"])
	assert.Equal(t, float64(1), data["revision"])

	status, body = getJSON(t, ts.URL+"/debug/guilds/999/config")
	require.Equal(t, http.StatusOK, status, "unknown guilds fall back to the default entry")
	assert.Equal(t, []interface{}{}, body.Data.(map[string]interface{})["staffRanks"])
}

type failingRepository struct{}

func (failingRepository) Get(ctx context.Context, guildID string) (*models.GuildConfig, error) {
	return nil, errors.New("disk unavailable")
}

func (failingRepository) Put(ctx context.Context, guildID string, cfg *models.GuildConfig) error {
	return errors.New("disk unavailable")
}

func (failingRepository) List(ctx context.Context) ([]string, error) {
	return nil, errors.New("disk unavailable")
}

func TestStoreFailures(t *testing.T) {
	configs := service.NewGuildConfigService(failingRepository{}, nil, nil)
	ts := httptest.NewServer(New("127.0.0.1:0", configs, nil).Handler())
	defer ts.Close()

	status, body := getJSON(t, ts.URL+"/debug/guilds")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.False(t, body.Success)

	status, body = getJSON(t, ts.URL+"/debug/guilds/123/config")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Guild configuration not found", body.Error)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMetrics(t *testing.T) {
	ts, _ := newTestServer(t)

	_, _ = getJSON(t, ts.URL+"/debug/guilds/123/config")

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `staffbot_guild_config_store_operations_total{operation="save",result="ok"} 1`)
	assert.Contains(t, string(body), `staffbot_guild_config_store_operations_total{operation="load",result="ok"}`)
}
