package aggregator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	commonerrors "prd-advisors/internal/common/errors"
	"prd-advisors/internal/common/logger"
	"prd-advisors/internal/common/metrics"
	"prd-advisors/internal/common/observability"
	"prd-advisors/internal/document"
	"prd-advisors/internal/models"
	"prd-advisors/pkg/registry"
)

var (
	ErrInvalidRequest     = errors.New("INVALID_REQUEST")
	ErrNoAdvisorsSelected = errors.New("NO_ADVISORS_SELECTED")
)

// Analyzer consults one advisor. Implementations are expected to recover their
// own failures; any error or panic that still escapes is contained per advisor.
type Analyzer interface {
	Analyze(ctx context.Context, d registry.AdvisorDescriptor, productIdea string) (models.AdvisorResult, error)
}

// TaskFailureText is substituted for an advisor whose task failed outright.
func TaskFailureText(displayName string) string {
	return fmt.Sprintf("Unable to get analysis from %s AI", displayName)
}

type Aggregator struct {
	config    *Config
	registry  *registry.Registry
	analyzer  Analyzer
	assembler *document.Assembler
	logger    logger.Logger
	obs       *observability.Observability
}

func New(config *Config, reg *registry.Registry, analyzer Analyzer, log logger.Logger, obs *observability.Observability) *Aggregator {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	if obs == nil {
		obs = observability.NewNoop()
	}
	return &Aggregator{
		config:    config,
		registry:  reg,
		analyzer:  analyzer,
		assembler: document.NewAssembler(reg),
		logger:    log.WithFields(map[string]interface{}{"component": "aggregator"}),
		obs:       obs,
	}
}

// Registry returns the advisor registry the aggregator consults.
func (a *Aggregator) Registry() *registry.Registry {
	return a.registry
}

// Generate consults every selected advisor concurrently and assembles the
// documents. Only input errors are returned; they are detected before any
// advisor is contacted.
func (a *Aggregator) Generate(ctx context.Context, req models.GenerationRequest, selection models.SelectionSet) (*models.GenerationResponse, error) {
	if strings.TrimSpace(req.ProductIdea) == "" {
		metrics.GenerationsTotal.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: product idea is required", ErrInvalidRequest)
	}

	advisors := a.filterSelection(selection)
	if len(advisors) == 0 {
		metrics.GenerationsTotal.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: select at least one known advisor", ErrNoAdvisorsSelected)
	}

	ctx, endSpan := a.obs.StartSpan(ctx, "prd.generate", map[string]string{
		"advisors": fmt.Sprintf("%d", len(advisors)),
	})
	start := time.Now()

	a.logger.Info("consulting advisory panel", map[string]interface{}{
		"advisorCount": len(advisors),
	})

	results := a.fanOut(ctx, advisors, req.ProductIdea)

	perAdvisor := make(map[string]string, len(results))
	filtered := make(models.SelectionSet, len(results))
	var failed []string
	for _, d := range advisors {
		res := results[d.Key]
		perAdvisor[d.Key] = res.Text
		filtered[d.Key] = true
		if !res.Succeeded {
			failed = append(failed, d.Key)
		}
	}

	docs, err := a.assembler.Assemble(req, perAdvisor, filtered, a.config.Now())
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("failed").Inc()
		endSpan(err)
		return nil, err
	}

	elapsed := time.Since(start)
	status := "complete"
	if len(failed) > 0 {
		status = "degraded"
	}
	metrics.GenerationsTotal.WithLabelValues(status).Inc()
	metrics.GenerationAdvisors.Observe(float64(len(advisors)))
	a.obs.RecordGeneration(ctx, elapsed, status, len(advisors))
	endSpan(nil)

	a.logger.Info("advisory panel consulted", map[string]interface{}{
		"advisorCount":   len(advisors),
		"failedAdvisors": failed,
		"durationMs":     elapsed.Milliseconds(),
	})

	return &models.GenerationResponse{
		DocumentText:          docs.DocumentText,
		DevelopmentPromptText: docs.DevelopmentPromptText,
		PerAdvisorText:        perAdvisor,
		FailedAdvisors:        failed,
	}, nil
}

// filterSelection keeps keys marked true and known to the registry, in
// canonical order.
func (a *Aggregator) filterSelection(selection models.SelectionSet) []registry.AdvisorDescriptor {
	for key, on := range selection {
		if _, known := a.registry.Lookup(key); on && !known {
			a.logger.Debug("ignoring unknown advisor key", map[string]interface{}{"advisor": key})
		}
	}

	var out []registry.AdvisorDescriptor
	for _, d := range a.registry.Advisors() {
		if selection.Selected(d.Key) {
			out = append(out, d)
		}
	}
	return out
}

func (a *Aggregator) fanOut(ctx context.Context, advisors []registry.AdvisorDescriptor, productIdea string) map[string]models.AdvisorResult {
	var wg sync.WaitGroup
	var mu sync.Mutex
	results := make(map[string]models.AdvisorResult, len(advisors))

	for _, d := range advisors {
		wg.Add(1)
		go func(d registry.AdvisorDescriptor) {
			defer wg.Done()
			res := a.runTask(ctx, d, productIdea)
			mu.Lock()
			results[d.Key] = res
			mu.Unlock()
		}(d)
	}

	wg.Wait()
	return results
}

// runTask invokes the analyzer for one advisor and converts an escaped error or
// panic into task failure text.
func (a *Aggregator) runTask(ctx context.Context, d registry.AdvisorDescriptor, productIdea string) (res models.AdvisorResult) {
	defer func() {
		if r := recover(); r != nil {
			res = a.taskFailure(d, fmt.Errorf("panic: %v", r), metrics.OutcomePanic)
		}
	}()

	res, err := a.analyzer.Analyze(ctx, d, productIdea)
	if err != nil {
		return a.taskFailure(d, err, metrics.OutcomeError)
	}
	res.Key = d.Key
	return res
}

func (a *Aggregator) taskFailure(d registry.AdvisorDescriptor, cause error, outcome string) models.AdvisorResult {
	stdErr := commonerrors.NewUnexpectedTaskFailureError(d.Key, cause)
	a.logger.Error("advisor task failed", map[string]interface{}{
		"advisor":   d.Key,
		"errorCode": string(stdErr.Code),
		"error":     cause.Error(),
		"outcome":   outcome,
	})
	metrics.AdvisorCallsTotal.WithLabelValues(d.Key, outcome).Inc()
	return models.AdvisorResult{
		Key:       d.Key,
		Text:      TaskFailureText(d.DisplayName),
		Succeeded: false,
	}
}
