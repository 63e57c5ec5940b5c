package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"prd-advisors/internal/aggregator"
	commonerrors "prd-advisors/internal/common/errors"
	"prd-advisors/internal/document"
	"prd-advisors/internal/models"
	"prd-advisors/internal/session"
)

const maxRequestBytes = 1 << 20

func (s *Server) handleListAdvisors(w http.ResponseWriter, r *http.Request) {
	advisors := s.generator.Registry().Advisors()
	out := make([]advisorView, 0, len(advisors))
	for _, d := range advisors {
		out = append(out, advisorView{
			Key:         d.Key,
			DisplayName: d.DisplayName,
			Expertise:   d.Expertise,
			Perspective: d.Perspective,
			Emoji:       d.Emoji,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"advisors": out})
}

func (s *Server) handleListExamples(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"examples":     document.ExamplePrompts(),
		"budgetRanges": models.BudgetRanges,
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		s.errors.HandleHTTPError(w, r, commonerrors.NewInvalidRequestError(err.Error()))
		return
	}

	res, err := generateSchema.ValidateBytes(body)
	if err != nil {
		s.errors.HandleHTTPError(w, r, commonerrors.NewInvalidRequestError("body is not valid JSON"))
		return
	}
	if !res.Valid {
		s.errors.HandleHTTPError(w, r, commonerrors.NewValidationFailedError(res.Summary()))
		return
	}

	var req GenerateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errors.HandleHTTPError(w, r, commonerrors.NewInvalidRequestError(err.Error()))
		return
	}

	sess, err := s.generator.Generate(r.Context(), models.GenerationRequest{
		ProductIdea:    req.ProductIdea,
		TargetAudience: req.TargetAudience,
		Timeline:       req.Timeline,
		BudgetRange:    req.BudgetRange,
	}, s.generator.SelectionOrAll(req.Advisors))
	if err != nil {
		s.errors.HandleHTTPError(w, r, s.toStandardError(err))
		return
	}

	writeJSON(w, http.StatusOK, GenerateResponse{
		SessionID:                     sess.ID,
		DocumentText:                  sess.Response.DocumentText,
		DevelopmentPromptText:         sess.Response.DevelopmentPromptText,
		EnrichedDevelopmentPromptText: sess.EnrichedDevPromptText,
		PerAdvisorText:                sess.Response.PerAdvisorText,
		FailedAdvisors:                sess.Response.FailedAdvisors,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sess, err := s.generator.Session(r.Context(), id)
	if err != nil {
		s.errors.HandleHTTPError(w, r, sessionError(id, err))
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	kind := r.PathValue("kind")

	var prefix string
	switch kind {
	case "prd":
		prefix = document.PrefixPRD
	case "dev-prompt":
		prefix = document.PrefixDevPrompt
	default:
		s.errors.HandleHTTPError(w, r, commonerrors.NewInvalidRequestError(fmt.Sprintf("unknown download %q", kind)))
		return
	}

	sess, err := s.generator.Session(r.Context(), id)
	if err != nil {
		s.errors.HandleHTTPError(w, r, sessionError(id, err))
		return
	}

	content := sess.Response.DocumentText
	if kind == "dev-prompt" {
		content = sess.EnrichedDevPromptText
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", document.DownloadFileName(prefix, sess.Request.ProductIdea)))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, content)
}

// toStandardError maps package sentinels onto API error codes.
func (s *Server) toStandardError(err error) error {
	switch {
	case errors.Is(err, aggregator.ErrNoAdvisorsSelected):
		return commonerrors.NewNoAdvisorsSelectedError().WithMetadata("knownAdvisors", s.generator.Registry().Keys())
	case errors.Is(err, aggregator.ErrInvalidRequest):
		return commonerrors.NewInvalidRequestError(err.Error())
	default:
		return err
	}
}

func sessionError(id string, err error) error {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return commonerrors.NewSessionNotFoundError(id)
	case errors.Is(err, session.ErrStoreFailed):
		return commonerrors.NewSessionStoreFailedError(err)
	default:
		return err
	}
}
