// Package freepik wraps the Freepik generative media API: Mystic for
// images and the image-to-video models (Kling v2, MiniMax Hailuo).
// Generation is asynchronous; both surfaces hand back a task id that is
// polled until the task reaches a terminal status.
package freepik

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/failsafe-go/failsafe-go"

	"postdeck/pkg/clients"
	"postdeck/pkg/logging"
)

const defaultBaseURL = "https://api.freepik.com"

// Video models.
const (
	ModelKling   = "kling-v2"
	ModelMiniMax = "minimax"
)

// ErrImageRequired is returned when a Kling v2 task is requested
// without a reference image.
var ErrImageRequired = errors.New("kling-v2 requires a reference image")

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("freepik api key not configured")

// aspectRatios maps display ratios to the Mystic aspect ratio names.
var aspectRatios = map[string]string{
	"1:1":  "square_1_1",
	"4:3":  "classic_4_3",
	"3:4":  "traditional_3_4",
	"16:9": "widescreen_16_9",
	"9:16": "social_story_9_16",
}

// ImageRequest describes a Mystic image generation.
type ImageRequest struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspect_ratio,omitempty"`
	Resolution  string `json:"resolution,omitempty"`
	Style       string `json:"style,omitempty"`
}

// VideoRequest describes an image-to-video generation.
type VideoRequest struct {
	Prompt      string `json:"prompt"`
	Image       string `json:"image,omitempty"`
	Model       string `json:"model,omitempty"`
	Duration    int    `json:"duration,omitempty"`
	AspectRatio string `json:"aspect_ratio,omitempty"`
}

// Task is a pending generation handle.
type Task struct {
	ID     string `json:"task_id"`
	Status string `json:"status"`
	Model  string `json:"model,omitempty"`
}

// TaskResult is the polled state of a task. ImageURL or VideoURL is set
// once the task succeeds.
type TaskResult struct {
	Status   string `json:"status"`
	ImageURL string `json:"imageUrl,omitempty"`
	VideoURL string `json:"videoUrl,omitempty"`
}

// Succeeded reports whether the status is a terminal success.
func Succeeded(status string) bool {
	switch status {
	case "COMPLETED", "FINISHED", "READY":
		return true
	}
	return false
}

// Failed reports whether the status is a terminal failure.
func Failed(status string) bool {
	return status == "FAILED" || status == "ERROR"
}

// Client talks to the Freepik API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	executor   failsafe.Executor[*http.Response]
	logger     logging.Logger
}

func NewClient(apiKey string, logger logging.Logger) *Client {
	// Generation endpoints are slow and rate limited; trip the breaker
	// rather than piling retries onto a struggling upstream.
	breakerConfig := clients.DefaultCircuitBreakerConfig()
	breakerConfig.Name = "freepik"
	breakerConfig.Logger = logger
	breakerConfig.OnStateChange = clients.CircuitBreakerMetricsCallback("freepik")

	executorConfig := clients.DefaultHTTPExecutorConfig()
	executorConfig.CircuitBreaker = clients.NewCircuitBreaker(breakerConfig)

	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: clients.DefaultTransport(),
		},
		executor: clients.NewHTTPExecutor(executorConfig),
		logger:   logger,
	}
}

// WithBaseURL overrides the API host, used in tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// CreateImageTask starts a Mystic generation and returns its task id.
func (c *Client) CreateImageTask(ctx context.Context, req ImageRequest) (Task, error) {
	ratio, ok := aspectRatios[req.AspectRatio]
	if !ok {
		ratio = "square_1_1"
	}
	resolution := req.Resolution
	if resolution == "" {
		resolution = "2k"
	}
	prompt := req.Prompt
	if req.Style != "" {
		prompt = fmt.Sprintf("%s, style %s", prompt, req.Style)
	}

	body := map[string]any{
		"prompt":       prompt,
		"resolution":   resolution,
		"aspect_ratio": ratio,
		"model":        "realism",
	}

	var parsed taskEnvelope
	if err := c.do(ctx, http.MethodPost, "/v1/ai/mystic", body, &parsed); err != nil {
		return Task{}, err
	}

	status := parsed.Data.Status
	if status == "" {
		status = "IN_PROGRESS"
	}
	return Task{ID: parsed.Data.TaskID, Status: status}, nil
}

// GetImageTask polls a Mystic task.
func (c *Client) GetImageTask(ctx context.Context, taskID string) (TaskResult, error) {
	var parsed taskEnvelope
	if err := c.do(ctx, http.MethodGet, "/v1/ai/mystic/"+taskID, nil, &parsed); err != nil {
		return TaskResult{}, err
	}

	result := TaskResult{Status: parsed.Data.Status}
	if result.Status == "" {
		result.Status = "UNKNOWN"
	}
	if url := parsed.Data.firstGeneratedURL(); url != "" {
		result.ImageURL = url
	}
	return result, nil
}

// CreateVideoTask starts an image-to-video generation. MiniMax accepts
// a bare prompt; Kling v2 needs a reference image.
func (c *Client) CreateVideoTask(ctx context.Context, req VideoRequest) (Task, error) {
	model := req.Model
	if model == "" {
		model = ModelKling
	}

	var path string
	var body map[string]any

	if model == ModelMiniMax {
		path = "/v1/ai/image-to-video/minimax-hailuo-02-768p"
		duration := req.Duration
		if duration == 0 {
			duration = 6
		}
		body = map[string]any{
			"prompt":           req.Prompt,
			"prompt_optimizer": true,
			"duration":         duration,
		}
		if req.Image != "" {
			body["first_frame_image"] = req.Image
		}
	} else {
		if req.Image == "" {
			return Task{}, ErrImageRequired
		}
		path = "/v1/ai/image-to-video/kling-v2"
		duration := req.Duration
		if duration == 0 {
			duration = 5
		}
		body = map[string]any{
			"image":     req.Image,
			"prompt":    req.Prompt,
			"duration":  fmt.Sprintf("%d", duration),
			"cfg_scale": 0.5,
		}
	}

	var parsed taskEnvelope
	if err := c.do(ctx, http.MethodPost, path, body, &parsed); err != nil {
		return Task{}, err
	}

	status := parsed.Data.Status
	if status == "" {
		status = "CREATED"
	}
	return Task{ID: parsed.Data.TaskID, Status: status, Model: model}, nil
}

// GetVideoTask polls a video task for the given model.
func (c *Client) GetVideoTask(ctx context.Context, taskID, model string) (TaskResult, error) {
	path := "/v1/ai/image-to-video/kling-v2/" + taskID
	if model == ModelMiniMax {
		path = "/v1/ai/image-to-video/minimax-hailuo-02-768p/" + taskID
	}

	var parsed taskEnvelope
	if err := c.do(ctx, http.MethodGet, path, nil, &parsed); err != nil {
		return TaskResult{}, err
	}

	result := TaskResult{Status: parsed.Data.Status}
	if result.Status == "" {
		result.Status = "UNKNOWN"
	}
	if parsed.Data.Video.URL != "" {
		result.VideoURL = parsed.Data.Video.URL
	} else if url := parsed.Data.firstGeneratedURL(); url != "" {
		result.VideoURL = url
	}
	return result, nil
}

type taskEnvelope struct {
	Data taskData `json:"data"`
}

type taskData struct {
	TaskID    string            `json:"task_id"`
	Status    string            `json:"status"`
	Generated []json.RawMessage `json:"generated"`
	Video     struct {
		URL string `json:"url"`
	} `json:"video"`
}

// firstGeneratedURL handles both shapes the API returns for generated
// assets: a plain URL string or an object with a url field.
func (d taskData) firstGeneratedURL() string {
	if len(d.Generated) == 0 {
		return ""
	}
	var asString string
	if err := json.Unmarshal(d.Generated[0], &asString); err == nil {
		return asString
	}
	var asObject struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(d.Generated[0], &asObject); err == nil {
		return asObject.URL
	}
	return ""
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	var encoded []byte
	if body != nil {
		var err error
		encoded, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	resp, err := clients.ExecuteHTTP(ctx, c.executor, func() (*http.Response, error) {
		var reqBody io.Reader
		if encoded != nil {
			reqBody = bytes.NewReader(encoded)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
		if err != nil {
			return nil, err
		}
		if encoded != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("x-freepik-api-key", c.apiKey)
		return c.httpClient.Do(req)
	})
	if err != nil {
		return fmt.Errorf("freepik %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("freepik read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WithField("status", resp.StatusCode).WithField("path", path).Error("Freepik API error")
		return fmt.Errorf("freepik returned status %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("freepik decode response: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
