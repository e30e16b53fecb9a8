package serverstatus

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"staffbot/models"
	"staffbot/repository"
	"staffbot/service"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentResponse struct {
	Type int `json:"type"`
	Data struct {
		Content string `json:"content"`
		Flags   int    `json:"flags"`
	} `json:"data"`
}

// recordingTransport keeps every interaction response body and answers 204
type recordingTransport struct {
	mu        sync.Mutex
	responses []sentResponse
}

func (rt *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil && strings.Contains(req.URL.Path, "/callback") {
		var resp sentResponse
		if err := json.NewDecoder(req.Body).Decode(&resp); err == nil {
			rt.mu.Lock()
			rt.responses = append(rt.responses, resp)
			rt.mu.Unlock()
		}
	}
	return &http.Response{
		StatusCode: http.StatusNoContent,
		Body:       io.NopCloser(strings.NewReader("")),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

func (rt *recordingTransport) last(t *testing.T) sentResponse {
	t.Helper()
	rt.mu.Lock()
	defer rt.mu.Unlock()
	require.NotEmpty(t, rt.responses)
	return rt.responses[len(rt.responses)-1]
}

func newStatusFeature(t *testing.T) (*Feature, *discordgo.Session, *recordingTransport) {
	t.Helper()

	configs := service.NewGuildConfigService(repository.NewMemoryGuildConfigRepository(), nil, nil)
	cfg := models.NewGuildConfig()
	cfg.StaffRanks = []string{"Recruit"}
	cfg.SetRoles(models.ActionServerStatus, []string{"r-status"})
	require.NoError(t, configs.Save(context.Background(), "g1", cfg))

	transport := &recordingTransport{}
	s, err := discordgo.New("Bot test-token")
	require.NoError(t, err)
	s.Client = &http.Client{Transport: transport}

	return New(configs, service.NewStaffService(nil), "Footer"), s, transport
}

func statusCommand(id, status, reason string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:      id,
		Token:   "token",
		Type:    discordgo.InteractionApplicationCommand,
		GuildID: "g1",
		Member:  &discordgo.Member{User: &discordgo.User{ID: "u1"}, Roles: []string{"r-status"}},
		Data: discordgo.ApplicationCommandInteractionData{
			Name: "server",
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{Name: "status", Type: discordgo.ApplicationCommandOptionString, Value: status},
				{Name: "reason", Type: discordgo.ApplicationCommandOptionString, Value: reason},
			},
		},
	}}
}

func TestHandleStatus_ImmediateStatusIsPublic(t *testing.T) {
	f, s, transport := newStatusFeature(t)

	require.NoError(t, f.HandleCommand(s, statusCommand("i1", "Open", "Restart finished")))

	resp := transport.last(t)
	assert.Equal(t, "✅ Server status set to **Open**.", resp.Data.Content)
	assert.Zero(t, resp.Data.Flags&int(discordgo.MessageFlagsEphemeral))
}

func TestHandleStatus_ConfirmationPromptIsEphemeral(t *testing.T) {
	f, s, transport := newStatusFeature(t)

	require.NoError(t, f.HandleCommand(s, statusCommand("i2", "Lockdown", "Raid")))
	defer f.take("i2")

	resp := transport.last(t)
	assert.NotZero(t, resp.Data.Flags&int(discordgo.MessageFlagsEphemeral))
	assert.Equal(t, ConfirmationPrompt(models.StatusLockdown, "Raid"), resp.Data.Content)
}
