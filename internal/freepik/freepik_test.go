package freepik

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postdeck/pkg/logging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-key", logging.NewLoggerWithService("test")).WithBaseURL(srv.URL)
}

func TestCreateImageTaskMapsAspectRatio(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/ai/mystic", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-freepik-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"task_id": "task-1", "status": "IN_PROGRESS"},
		})
	})

	task, err := client.CreateImageTask(context.Background(), ImageRequest{
		Prompt:      "un chat astronaute",
		AspectRatio: "9:16",
		Style:       "aquarelle",
	})
	require.NoError(t, err)

	assert.Equal(t, "task-1", task.ID)
	assert.Equal(t, "IN_PROGRESS", task.Status)
	assert.Equal(t, "social_story_9_16", body["aspect_ratio"])
	assert.Equal(t, "2k", body["resolution"])
	assert.Equal(t, "realism", body["model"])
	assert.Equal(t, "un chat astronaute, style aquarelle", body["prompt"])
}

func TestCreateImageTaskUnknownRatioDefaultsToSquare(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"task_id": "t"}})
	})

	_, err := client.CreateImageTask(context.Background(), ImageRequest{Prompt: "x", AspectRatio: "2:3"})
	require.NoError(t, err)
	assert.Equal(t, "square_1_1", body["aspect_ratio"])
}

func TestGetImageTaskExtractsURL(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/ai/mystic/task-1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"status":    "COMPLETED",
				"generated": []any{map[string]any{"url": "https://img.freepik.com/out.png"}},
			},
		})
	})

	result, err := client.GetImageTask(context.Background(), "task-1")
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", result.Status)
	assert.Equal(t, "https://img.freepik.com/out.png", result.ImageURL)
}

func TestCreateVideoTaskKlingRequiresImage(t *testing.T) {
	client := NewClient("test-key", logging.NewLoggerWithService("test"))
	_, err := client.CreateVideoTask(context.Background(), VideoRequest{Prompt: "zoom"})
	assert.ErrorIs(t, err, ErrImageRequired)
}

func TestCreateVideoTaskMiniMax(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/ai/image-to-video/minimax-hailuo-02-768p", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"task_id": "vid-1", "status": "CREATED"},
		})
	})

	task, err := client.CreateVideoTask(context.Background(), VideoRequest{
		Prompt: "travelling avant",
		Model:  ModelMiniMax,
	})
	require.NoError(t, err)

	assert.Equal(t, "vid-1", task.ID)
	assert.Equal(t, ModelMiniMax, task.Model)
	assert.Equal(t, true, body["prompt_optimizer"])
	assert.Equal(t, float64(6), body["duration"])
	assert.NotContains(t, body, "first_frame_image")
}

func TestGetVideoTaskHandlesStringGenerated(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/ai/image-to-video/kling-v2/vid-1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"status":    "COMPLETED",
				"generated": []any{"https://video.freepik.com/out.mp4"},
			},
		})
	})

	result, err := client.GetVideoTask(context.Background(), "vid-1", ModelKling)
	require.NoError(t, err)
	assert.Equal(t, "https://video.freepik.com/out.mp4", result.VideoURL)
}

func TestMissingAPIKey(t *testing.T) {
	client := NewClient("", logging.NewLoggerWithService("test"))
	assert.False(t, client.Configured())

	_, err := client.CreateImageTask(context.Background(), ImageRequest{Prompt: "x"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestTerminalStatuses(t *testing.T) {
	for _, s := range []string{"COMPLETED", "FINISHED", "READY"} {
		assert.True(t, Succeeded(s), s)
		assert.False(t, Failed(s), s)
	}
	for _, s := range []string{"FAILED", "ERROR"} {
		assert.True(t, Failed(s), s)
		assert.False(t, Succeeded(s), s)
	}
	assert.False(t, Succeeded("IN_PROGRESS"))
	assert.False(t, Failed("IN_PROGRESS"))
}
