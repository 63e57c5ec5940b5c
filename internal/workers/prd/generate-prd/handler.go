// internal/workers/prd/generate-prd/handler.go
package generateprd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"prd-advisors/internal/aggregator"
	"prd-advisors/internal/common/logger"
	"prd-advisors/internal/common/validation"
	"prd-advisors/internal/models"
	"prd-advisors/internal/service"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "generate-prd"
)

var (
	ErrInvalidInput     = errors.New("INVALID_INPUT")
	ErrGenerationFailed = errors.New("PRD_GENERATION_FAILED")
)

const inputSchema = `{
  "type": "object",
  "required": ["productIdea"],
  "properties": {
    "productIdea":    {"type": "string"},
    "targetAudience": {"type": "string"},
    "timeline":       {"type": "string"},
    "budgetRange":    {"type": "string"},
    "advisors":       {"type": "object", "additionalProperties": {"type": "boolean"}}
  }
}`

var compiledInputSchema = validation.MustCompile(inputSchema)

type Handler struct {
	config    *Config
	generator *service.Generator
	logger    logger.Logger
}

func NewHandler(config *Config, gen *service.Generator, log logger.Logger) *Handler {
	if config == nil {
		config = DefaultConfig()
	}
	return &Handler{
		config:    config,
		generator: gen,
		logger: log.With(map[string]interface{}{
			"taskType": TaskType,
		}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	input, err := h.parseInput([]byte(job.Variables))
	if err != nil {
		h.failJob(client, job, err, 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.Execute(ctx, input)
	if err != nil {
		retries := int32(0)
		if errors.Is(err, ErrGenerationFailed) {
			retries = 1
		}
		h.failJob(client, job, err, retries)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) parseInput(variables []byte) (*Input, error) {
	res, err := compiledInputSchema.ValidateBytes(variables)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !res.Valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, res.Summary())
	}

	var input Input
	if err := json.Unmarshal(variables, &input); err != nil {
		return nil, fmt.Errorf("%w: parse input: %v", ErrInvalidInput, err)
	}
	return &input, nil
}

// Execute runs one generation. Usable without a broker.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	req := models.GenerationRequest{
		ProductIdea:    input.ProductIdea,
		TargetAudience: input.TargetAudience,
		Timeline:       input.Timeline,
		BudgetRange:    input.BudgetRange,
	}

	sess, err := h.generator.Generate(ctx, req, h.generator.SelectionOrAll(input.Advisors))
	if err != nil {
		if errors.Is(err, aggregator.ErrInvalidRequest) || errors.Is(err, aggregator.ErrNoAdvisorsSelected) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	h.logger.Info("prd generated", map[string]interface{}{
		"sessionId":      sess.ID,
		"advisorCount":   len(sess.Response.PerAdvisorText),
		"failedAdvisors": sess.Response.FailedAdvisors,
	})

	failed := sess.Response.FailedAdvisors
	if failed == nil {
		failed = []string{}
	}

	return &Output{
		SessionID:                     sess.ID,
		DocumentText:                  sess.Response.DocumentText,
		DevelopmentPromptText:         sess.Response.DevelopmentPromptText,
		EnrichedDevelopmentPromptText: sess.EnrichedDevPromptText,
		PerAdvisorText:                sess.Response.PerAdvisorText,
		FailedAdvisors:                failed,
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error, retries int32) {
	errorCode := "UNKNOWN_ERROR"
	if errors.Is(err, ErrInvalidInput) {
		errorCode = "INVALID_INPUT"
	} else if errors.Is(err, ErrGenerationFailed) {
		errorCode = "PRD_GENERATION_FAILED"
	}

	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":    job.Key,
		"error":     err.Error(),
		"errorCode": errorCode,
		"retries":   retries,
	})

	_, _ = client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(retries).
		ErrorMessage(err.Error()).
		Send(context.Background())
}
