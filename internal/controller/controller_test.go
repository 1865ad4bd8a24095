package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hcp-crm-be/internal/model"
	"hcp-crm-be/internal/pkg/logger"
	"hcp-crm-be/internal/pkg/serverutils"
	"hcp-crm-be/internal/repository/memory"
	"hcp-crm-be/internal/repository/unitofwork"
	"hcp-crm-be/internal/service"
	"hcp-crm-be/pkg/agent"
	"hcp-crm-be/pkg/database"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

// fixedCompleter returns the same extraction for every turn and junk for the advisor.
type fixedCompleter struct {
	extraction string
}

func (c fixedCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	if system == agent.AdvisorSystemPrompt {
		return "", nil
	}
	return c.extraction, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T, extraction string) *fiber.App {
	t.Helper()

	db, err := database.NewGormDBFromDSN("sqlite://:memory:", database.WithLogLevel(gormlogger.Silent))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))

	log := logger.NewNopLogger()
	factory := unitofwork.NewRepositoryFactory(db)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	completer := fixedCompleter{extraction: extraction}
	clock := func() time.Time { return time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC) }
	normalizer := agent.NewNormalizer(agent.DefaultTimezone, agent.WithClock(clock))
	advisor := agent.NewAdvisor(completer, log)
	pipeline := agent.NewPipeline(completer, advisor, normalizer, log)

	publisher := service.NewPublisherService("interaction.events", pubSub)
	hcpService := service.NewHCPService(factory, true, log)
	interactionService := service.NewInteractionService(factory, publisher, log)
	agentService := service.NewAgentService(factory, pipeline, advisor, interactionService, memory.NewDraftRepository(time.Hour), log)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewHCPController(hcpService, interactionService).RegisterRoutes(api)
	NewInteractionController(interactionService).RegisterRoutes(api)
	NewAgentController(agentService, interactionService).RegisterRoutes(api)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestHCPRoutes(t *testing.T) {
	app := newTestApp(t, "{}")

	status, env := doJSON(t, app, http.MethodGet, "/api/hcps", nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)

	var hcps []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &hcps))
	assert.Len(t, hcps, 3)

	status, env = doJSON(t, app, http.MethodGet, "/api/hcps/1/interactions", nil)
	assert.Equal(t, http.StatusOK, status)
	var items []map[string]any
	if len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, &items))
	}
	assert.Empty(t, items)

	status, env = doJSON(t, app, http.MethodGet, "/api/hcps/99/interactions", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, env.Success)

	status, _ = doJSON(t, app, http.MethodGet, "/api/hcps/abc/interactions", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestLogAndEditTools(t *testing.T) {
	app := newTestApp(t, "{}")
	doJSON(t, app, http.MethodGet, "/api/hcps", nil)

	status, env := doJSON(t, app, http.MethodPost, "/api/agent/tools/log", map[string]any{"summary": "no hcp"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "HCP is required to log. Please mention HCP name in chat.", env.Message)

	status, env = doJSON(t, app, http.MethodPost, "/api/agent/tools/log", map[string]any{
		"hcp_name": "Dr. Asha Sharma",
		"summary":  "Discussed CardioX",
	})
	require.Equal(t, http.StatusOK, status)
	var logged map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &logged))
	assert.Equal(t, "LogInteraction", logged["tool_used"])
	assert.Equal(t, float64(1), logged["interaction_id"])

	status, env = doJSON(t, app, http.MethodPost, "/api/agent/tools/edit-latest", map[string]any{
		"hcp_name":         "Dr. Asha Sharma",
		"fields_to_update": map[string]any{},
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "fields_to_update is required", env.Message)

	status, env = doJSON(t, app, http.MethodPost, "/api/agent/tools/edit-latest", map[string]any{
		"hcp_name":         "Dr. Nobody",
		"fields_to_update": map[string]any{"sentiment": "negative"},
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "HCP not found for edit. Please mention the HCP name.", env.Message)

	status, env = doJSON(t, app, http.MethodPost, "/api/agent/tools/edit-latest", map[string]any{
		"hcp_id":           1,
		"fields_to_update": map[string]any{"sentiment": "negative"},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Updated latest interaction for Dr. Asha Sharma.", env.Message)

	status, env = doJSON(t, app, http.MethodGet, "/api/interactions/1", nil)
	require.Equal(t, http.StatusOK, status)
	var stored map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &stored))
	assert.Equal(t, "negative", stored["sentiment"])

	status, _ = doJSON(t, app, http.MethodGet, "/api/interactions/42", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHCPContextTool(t *testing.T) {
	app := newTestApp(t, "{}")
	doJSON(t, app, http.MethodGet, "/api/hcps", nil)

	status, env := doJSON(t, app, http.MethodGet, "/api/agent/tools/hcp-context?hcp_name=dr.%20neha%20verma", nil)
	require.Equal(t, http.StatusOK, status)
	var res map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "Dr. Neha Verma", res["hcp"].(map[string]any)["name"])
	assert.Empty(t, res["latest_interactions"])

	status, env = doJSON(t, app, http.MethodGet, "/api/agent/tools/hcp-context?hcp_name=nobody", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "HCP not found", env.Message)

	status, _ = doJSON(t, app, http.MethodGet, "/api/agent/tools/hcp-context?hcp_id=x", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestChatRoute(t *testing.T) {
	app := newTestApp(t, `{"action":"draft","hcp_name":"Asha Sharma","summary":"Discussed CardioX, a guaranteed cure"}`)

	status, env := doJSON(t, app, http.MethodPost, "/api/agent/chat", map[string]any{"message": "  "})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "message is required", env.Message)

	status, _ = doJSON(t, app, http.MethodPost, "/api/agent/chat", map[string]any{"message": "hi", "session_id": "nope"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = doJSON(t, app, http.MethodPost, "/api/agent/chat", map[string]any{"message": "Met Asha Sharma"})
	require.Equal(t, http.StatusOK, status)

	var res struct {
		AssistantMessage string      `json:"assistant_message"`
		UpdatedDraft     agent.Draft `json:"updated_draft"`
		ToolUsed         string      `json:"tool_used"`
		SessionID        string      `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "DraftUpdate", res.ToolUsed)
	assert.Equal(t, "Dr. Asha Sharma", res.UpdatedDraft.HCPName)
	assert.Equal(t, "2024-03-15", res.UpdatedDraft.Date)
	require.NotNil(t, res.UpdatedDraft.Compliance)
	assert.Equal(t, agent.StatusReview, res.UpdatedDraft.Compliance.Status)
	assert.Contains(t, res.UpdatedDraft.Compliance.Issues, "Risky claim detected: 'cure'")
	assert.NotEmpty(t, res.SessionID)

	status, env = doJSON(t, app, http.MethodGet, "/api/agent/sessions/"+res.SessionID+"/turns", nil)
	require.Equal(t, http.StatusOK, status)
	var turns []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &turns))
	assert.Len(t, turns, 1)
}

func TestAdvisorTools(t *testing.T) {
	app := newTestApp(t, "{}")

	status, env := doJSON(t, app, http.MethodPost, "/api/agent/tools/followup-suggest", map[string]any{
		"draft": map[string]any{"materials_shared": "brochure", "sentiment": "negative"},
	})
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"_ai_suggestions":[
		"Confirm materials were received and answer any follow-up questions",
		"Address objections and share evidence/clinical study summary",
		"Schedule next follow-up in 2 weeks"]}`, string(env.Data))

	status, env = doJSON(t, app, http.MethodPost, "/api/agent/tools/compliance-check", map[string]any{
		"draft": map[string]any{"used_voice_note": true, "consent_required": true},
	})
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"_compliance":{"status":"ok","issues":[]}}`, string(env.Data))
}
