package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	commonerrors "prd-advisors/internal/common/errors"
	commonhttp "prd-advisors/internal/common/http"
	"prd-advisors/internal/common/logger"
	"prd-advisors/internal/common/metrics"
	"prd-advisors/internal/common/observability"
	"prd-advisors/internal/models"
	"prd-advisors/pkg/registry"
)

var errEmptyBody = errors.New("empty response body")

// FallbackText is the canned analysis used when an advisor call fails.
func FallbackText(displayName, productIdea string) string {
	return fmt.Sprintf(
		"Analysis from %s: Due to technical issues, unable to provide detailed analysis. However, %s shows potential and should be evaluated further.",
		displayName, productIdea,
	)
}

// Client performs one chat-completion round trip per advisor. Analyze never
// returns an error: every failure becomes fallback text.
type Client struct {
	config *Config
	http   *commonhttp.Client
	logger logger.Logger
	obs    *observability.Observability
}

func NewClient(config *Config, log logger.Logger, obs *observability.Observability) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if obs == nil {
		obs = observability.NewNoop()
	}
	log = log.WithFields(map[string]interface{}{"component": "advisor-client"})
	return &Client{
		config: config,
		http:   commonhttp.NewClientWithTransport(config.Timeout, config.Transport).WithLogger(log),
		logger: log,
		obs:    obs,
	}
}

// Analyze consults one advisor about productIdea. The error is always nil; it
// exists so Client satisfies the aggregator's Analyzer contract.
func (c *Client) Analyze(ctx context.Context, d registry.AdvisorDescriptor, productIdea string) (models.AdvisorResult, error) {
	ctx, endSpan := c.obs.StartSpan(ctx, "advisor.analyze", map[string]string{
		"advisor":  d.Key,
		"endpoint": d.EndpointURL,
	})

	inFlight := metrics.AdvisorCallsInFlight.WithLabelValues(d.Key)
	inFlight.Inc()
	start := time.Now()

	text, err := c.call(ctx, d, productIdea)

	inFlight.Dec()
	elapsed := time.Since(start)
	metrics.AdvisorCallDuration.WithLabelValues(d.Key).Observe(elapsed.Seconds())

	if err != nil {
		stdErr := commonerrors.NewEndpointUnreachableError(d.Key, err)
		c.logger.Warn("advisor call failed, using fallback text", map[string]interface{}{
			"advisor":    d.Key,
			"errorCode":  string(stdErr.Code),
			"error":      err.Error(),
			"durationMs": elapsed.Milliseconds(),
		})
		metrics.AdvisorCallsTotal.WithLabelValues(d.Key, metrics.OutcomeFallback).Inc()
		endSpan(stdErr)
		return models.AdvisorResult{
			Key:       d.Key,
			Text:      FallbackText(d.DisplayName, productIdea),
			Succeeded: false,
		}, nil
	}

	c.logger.Info("advisor analysis received", map[string]interface{}{
		"advisor":    d.Key,
		"chars":      len(text),
		"durationMs": elapsed.Milliseconds(),
	})
	metrics.AdvisorCallsTotal.WithLabelValues(d.Key, metrics.OutcomeSuccess).Inc()
	endSpan(nil)

	return models.AdvisorResult{Key: d.Key, Text: text, Succeeded: true}, nil
}

func (c *Client) call(ctx context.Context, d registry.AdvisorDescriptor, productIdea string) (string, error) {
	payload := ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []ChatMessage{
			{Role: "user", Content: BuildPrompt(d, productIdea)},
		},
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
		Stream:      false,
	}

	body, err := c.http.PostJSON(ctx, d.EndpointURL, payload)
	if err != nil {
		return "", err
	}

	text := ParseResponse(body)
	if strings.TrimSpace(text) == "" {
		return "", errEmptyBody
	}
	return text, nil
}
