package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/talentscout/internal/config"
	"github.com/aretw0/talentscout/internal/testutils"
	"github.com/aretw0/talentscout/pkg/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		Model:      config.DefaultModel,
		LogLevel:   "error",
		LogFormat:  "text",
		SessionTTL: time.Hour,
		Redis:      config.RedisConfig{Prefix: "test:", TTL: time.Hour},
	}
}

func newTestApp(t *testing.T, cfg *config.Config, llm *testutils.StubLLM) *App {
	t.Helper()
	app, err := NewApp(context.Background(), cfg, AppOptions{LLM: llm, LogWriter: &bytes.Buffer{}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestNewApp_RequiresAPIKey(t *testing.T) {
	_, err := NewApp(context.Background(), testConfig(), AppOptions{LogWriter: &bytes.Buffer{}})
	assert.ErrorIs(t, err, config.ErrMissingAPIKey)

	app, err := NewApp(context.Background(), testConfig(), AppOptions{WithoutLLM: true, LogWriter: &bytes.Buffer{}})
	require.NoError(t, err)
	assert.Nil(t, app.Assistant)
	assert.NotNil(t, app.Sessions)
}

func TestNewApp_BadEncryptionKey(t *testing.T) {
	cfg := testConfig()
	cfg.EncryptionKey = "too-short"
	_, err := NewApp(context.Background(), cfg, AppOptions{LLM: &testutils.StubLLM{}, LogWriter: &bytes.Buffer{}})
	assert.Error(t, err)
}

func TestRunChat_Plain(t *testing.T) {
	llm := &testutils.StubLLM{Reply: "**Go**\n1. How do you stop a goroutine?"}
	app := newTestApp(t, testConfig(), llm)

	var out bytes.Buffer
	err := RunChat(context.Background(), app, ChatOptions{Summary: true}, strings.NewReader(testutils.Transcript()), &out)
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, domain.GreetingMessage)
	assert.Contains(t, got, "How do you stop a goroutine?")
	assert.Contains(t, got, "**Candidate Summary**")
	assert.Contains(t, got, "**Tech Stack:** Go, PostgreSQL, Kubernetes")
	assert.NotContains(t, got, "\x1b[", "a buffer gets no banner or ANSI rendering")

	require.Len(t, llm.Prompts(), 1)
	assert.Contains(t, llm.Prompts()[0], "Go, PostgreSQL, Kubernetes")

	fields, _ := app.Registry.Gather()
	assert.NotEmpty(t, fields, "lifecycle hooks feed the registry")
}

func TestRunChat_JSON(t *testing.T) {
	app := newTestApp(t, testConfig(), &testutils.StubLLM{Reply: "questions"})

	var out bytes.Buffer
	err := RunChat(context.Background(), app, ChatOptions{JSON: true, Summary: true}, strings.NewReader("\"Jane\"\nbye\n"), &out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3, "opening, one answer, exit; no summary in JSON mode")
	var last struct {
		Messages []string `json:"messages"`
		Continue bool     `json:"continue"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &last))
	assert.Equal(t, []string{domain.ExitMessage}, last.Messages)
	assert.False(t, last.Continue)
}

func TestRunChat_ResumeSession(t *testing.T) {
	app := newTestApp(t, testConfig(), &testutils.StubLLM{Reply: "q"})
	ctx := context.Background()
	opts := ChatOptions{SessionID: "cand-1", Plain: true}

	// First run stops after two answers (EOF).
	input := strings.Join(testutils.ValidAnswers[:2], "\n") + "\n"
	require.NoError(t, RunChat(ctx, app, opts, strings.NewReader(input), &bytes.Buffer{}))

	snap, err := app.Sessions.Load(ctx, "cand-1")
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Cursor)

	// Second run picks up at the phone prompt.
	var out bytes.Buffer
	require.NoError(t, RunChat(ctx, app, opts, strings.NewReader(testutils.ValidAnswers[2]+"\n"), &out))
	assert.Contains(t, out.String(), domain.Spec(domain.FieldPhone).Prompt)
	assert.NotContains(t, out.String(), domain.Spec(domain.FieldFullName).Prompt)

	snap, err = app.Sessions.Load(ctx, "cand-1")
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Cursor)

	// Fresh discards it.
	out.Reset()
	require.NoError(t, RunChat(ctx, app, ChatOptions{SessionID: "cand-1", Plain: true, Fresh: true}, strings.NewReader(""), &out))
	assert.Contains(t, out.String(), domain.Spec(domain.FieldFullName).Prompt)
	snap, err = app.Sessions.Load(ctx, "cand-1")
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Cursor)
}

func TestSessionCommands(t *testing.T) {
	app := newTestApp(t, testConfig(), &testutils.StubLLM{Reply: "q"})
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, ListSessions(ctx, app, &out))
	assert.Equal(t, "No sessions found.\n", out.String())

	input := strings.Join(testutils.ValidAnswers[:3], "\n") + "\n"
	require.NoError(t, RunChat(ctx, app, ChatOptions{SessionID: "s-1", Plain: true}, strings.NewReader(input), &bytes.Buffer{}))

	out.Reset()
	require.NoError(t, ListSessions(ctx, app, &out))
	assert.Contains(t, out.String(), "SESSION")
	assert.Regexp(t, `s-1\s+collecting\s+3`, out.String())

	t.Run("Inspect Masks By Default", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, InspectSession(ctx, app, "s-1", false, &buf))
		assert.NotContains(t, buf.String(), "Jane Doe")
		assert.NotContains(t, buf.String(), "jane.doe@example.com")
		assert.Contains(t, buf.String(), `"full_name": "***"`)
		assert.Contains(t, buf.String(), `"cursor": 3`)
	})

	t.Run("Inspect Reveal", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, InspectSession(ctx, app, "s-1", true, &buf))
		assert.Contains(t, buf.String(), "Jane Doe")
	})

	t.Run("Remove", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, RemoveSession(ctx, app, "s-1", &buf))
		err := InspectSession(ctx, app, "s-1", false, &bytes.Buffer{})
		assert.True(t, errors.Is(err, domain.ErrSessionNotFound))
	})
}

func TestRedisStoreWithEncryption(t *testing.T) {
	mr := miniredis.RunT(t)
	key := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, 32))

	cfg := testConfig()
	cfg.Redis.URL = "redis://" + mr.Addr()
	cfg.EncryptionKey = key
	app := newTestApp(t, cfg, &testutils.StubLLM{Reply: "q"})
	ctx := context.Background()

	require.NoError(t, RunChat(ctx, app, ChatOptions{SessionID: "r-1", Plain: true}, strings.NewReader("Jane Doe\n"), &bytes.Buffer{}))

	raw, err := mr.Get("test:s:r-1")
	require.NoError(t, err)
	assert.NotContains(t, raw, "Jane Doe", "answers are sealed at rest")

	snap, err := app.Sessions.Load(ctx, "r-1")
	require.NoError(t, err)
	name, _ := snap.Record.Get(domain.FieldFullName)
	assert.Equal(t, "Jane Doe", name)
}

func TestNewHTTPHandler(t *testing.T) {
	app := newTestApp(t, testConfig(), &testutils.StubLLM{Reply: "q"})
	srv := httptest.NewServer(NewHTTPHandler(app))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/sessions", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRunServe_Shutdown(t *testing.T) {
	app := newTestApp(t, testConfig(), &testutils.StubLLM{Reply: "q"})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- RunServe(ctx, app, "127.0.0.1:0") }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRunMCP_UnknownTransport(t *testing.T) {
	app := newTestApp(t, testConfig(), &testutils.StubLLM{Reply: "q"})
	err := RunMCP(context.Background(), app, MCPOptions{Transport: "carrier-pigeon"})
	assert.ErrorContains(t, err, "unknown transport")
}

func TestDefaultBaseURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8081", defaultBaseURL(":8081"))
	assert.Equal(t, "http://0.0.0.0:9000", defaultBaseURL("0.0.0.0:9000"))
}
