package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"prd-advisors/internal/common/logger"
	"prd-advisors/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Timeout:     2 * time.Second,
		Model:       "gpt-3.5-turbo",
		Temperature: 0.7,
		MaxTokens:   1000,
	}
}

func testDescriptor(url string) registry.AdvisorDescriptor {
	return registry.AdvisorDescriptor{
		Key:         "elon",
		DisplayName: "Elon Musk",
		EndpointURL: url,
		Perspective: "Innovation, scaling, and disruptive technology",
	}
}

func chatCompletionBody(content string) string {
	data, _ := json.Marshal(map[string]interface{}{
		"id": "chatcmpl-1",
		"choices": []map[string]interface{}{
			{"index": 0, "message": map[string]interface{}{"role": "assistant", "content": content}},
		},
	})
	return string(data)
}

const idea = "A pet photo sharing app"

// ==========================
// Core Functionality Tests
// ==========================

func TestClient_Analyze_Success(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "chat completion payload",
			body:     chatCompletionBody("Think bigger: scale to every pet on Mars."),
			expected: "Think bigger: scale to every pet on Mars.",
		},
		{
			name:     "plain text payload",
			body:     "Plain analysis without any JSON.",
			expected: "Plain analysis without any JSON.",
		},
		{
			name:     "json without choices",
			body:     `{"result":"ok"}`,
			expected: `{"result":"ok"}`,
		},
		{
			name:     "choices without message content",
			body:     `{"choices":[{"message":{"role":"assistant"}}]}`,
			expected: `{"choices":[{"message":{"role":"assistant"}}]}`,
		},
		{
			name:     "json string literal",
			body:     `"quoted text"`,
			expected: `"quoted text"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/v1/chat/completions", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var req ChatCompletionRequest
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "gpt-3.5-turbo", req.Model)
				assert.Equal(t, 0.7, req.Temperature)
				assert.Equal(t, 1000, req.MaxTokens)
				assert.False(t, req.Stream)
				if !assert.Len(t, req.Messages, 1) {
					return
				}
				assert.Equal(t, "user", req.Messages[0].Role)
				assert.Contains(t, req.Messages[0].Content, idea)

				w.WriteHeader(http.StatusOK)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewClient(createTestConfig(), logger.NewTestLogger(t), nil)
			res, err := c.Analyze(context.Background(), testDescriptor(server.URL+"/v1/chat/completions"), idea)

			require.NoError(t, err)
			assert.True(t, res.Succeeded)
			assert.Equal(t, "elon", res.Key)
			assert.Equal(t, tt.expected, res.Text)
		})
	}
}

func TestClient_Analyze_Fallback(t *testing.T) {
	want := "Analysis from Elon Musk: Due to technical issues, unable to provide detailed analysis. However, A pet photo sharing app shows potential and should be evaluated further."

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "internal server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(chatCompletionBody("should not be used")))
			},
		},
		{
			name: "service unavailable",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
		},
		{
			name: "empty body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
		},
		{
			name: "empty content",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(chatCompletionBody("   ")))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			c := NewClient(createTestConfig(), logger.NewTestLogger(t), nil)
			res, err := c.Analyze(context.Background(), testDescriptor(server.URL), idea)

			require.NoError(t, err)
			assert.False(t, res.Succeeded)
			assert.Equal(t, want, res.Text)
		})
	}
}

func TestClient_Analyze_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(10 * time.Second):
			t.Log("Test server safety timeout reached")
		}
	}))
	defer server.Close()

	cfg := createTestConfig()
	cfg.Timeout = 50 * time.Millisecond
	c := NewClient(cfg, logger.NewTestLogger(t), nil)

	start := time.Now()
	res, err := c.Analyze(context.Background(), testDescriptor(server.URL), idea)

	require.NoError(t, err)
	assert.False(t, res.Succeeded)
	assert.Contains(t, res.Text, "Due to technical issues")
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestClient_Analyze_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := NewClient(createTestConfig(), logger.NewTestLogger(t), nil)
	res, err := c.Analyze(context.Background(), testDescriptor(url), idea)

	require.NoError(t, err)
	assert.False(t, res.Succeeded)
	assert.Equal(t, FallbackText("Elon Musk", idea), res.Text)
}

type failingTransport struct {
	mu    sync.Mutex
	hosts []string
}

func (f *failingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	f.mu.Lock()
	f.hosts = append(f.hosts, r.URL.Host)
	f.mu.Unlock()
	return nil, errors.New("dial tcp: connection reset by peer")
}

func TestClient_Analyze_TransportError(t *testing.T) {
	rt := &failingTransport{}
	cfg := createTestConfig()
	cfg.Transport = rt

	c := NewClient(cfg, logger.NewTestLogger(t), nil)
	res, err := c.Analyze(context.Background(), testDescriptor("https://elon.gaia.example/v1/chat/completions"), idea)

	require.NoError(t, err)
	assert.Equal(t, "elon", res.Key)
	assert.False(t, res.Succeeded)
	assert.Equal(t, FallbackText("Elon Musk", idea), res.Text)
	assert.Equal(t, []string{"elon.gaia.example"}, rt.hosts)
}

func TestClient_Analyze_CallerCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(createTestConfig(), logger.NewNoOpLogger(), nil)
	res, err := c.Analyze(ctx, testDescriptor(server.URL), idea)

	require.NoError(t, err)
	assert.False(t, res.Succeeded)
}

// ==========================
// Unit Tests
// ==========================

func TestParseResponse(t *testing.T) {
	assert.Equal(t, "hi", ParseResponse([]byte(chatCompletionBody("hi"))))
	assert.Equal(t, "not json", ParseResponse([]byte("not json")))
	assert.Equal(t, `{"choices":[]}`, ParseResponse([]byte(`{"choices":[]}`)))
	assert.Equal(t, `[1,2]`, ParseResponse([]byte(`[1,2]`)))
	assert.Equal(t, "", ParseResponse(nil))
}

func TestFallbackText(t *testing.T) {
	assert.Equal(t,
		"Analysis from Steve Jobs: Due to technical issues, unable to provide detailed analysis. However, a todo app shows potential and should be evaluated further.",
		FallbackText("Steve Jobs", "a todo app"),
	)
}
