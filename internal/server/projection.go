package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/iwvelando/nav-landing/internal/config"
	"github.com/iwvelando/nav-landing/internal/projection"
	"github.com/iwvelando/nav-landing/pkg/output"
	"go.uber.org/zap"
)

type projectionResponse struct {
	Fund     string               `json:"fund"`
	Scenario string               `json:"scenario"`
	Headers  []string             `json:"headers"`
	Rows     [][]string           `json:"rows"`
	Chart    []output.SeriesPoint `json:"chart"`
	CSV      string               `json:"csv"`
	Notices  []string             `json:"notices,omitempty"`
	Warnings []string             `json:"warnings,omitempty"`
	Duration string               `json:"duration"`
	Document config.Document      `json:"document"`
}

func (h *handler) handleProjection(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleProjection"
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing parameter file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read parameters: %v", err), op)
		return
	}

	h.runProjection(w, &buf, start, op)
}

func (h *handler) handleEditorProjection(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleEditorProjection"
	body, ok := h.readBody(w, r, op)
	if !ok {
		return
	}
	h.runProjection(w, body, time.Now(), op)
}

func (h *handler) runProjection(w http.ResponseWriter, body io.Reader, start time.Time, op string) {
	params, notices, err := config.DecodeParameters(h.logger, body)
	if err != nil {
		h.respondFailure(w, err, op)
		return
	}
	h.writeProjection(w, params, notices, start, op)
}

func (h *handler) writeProjection(w http.ResponseWriter, params config.FundParameters, notices []string, start time.Time, op string) {
	result, err := projection.GetProjection(h.logger, params)
	if err != nil {
		h.respondFailure(w, err, op)
		return
	}

	csv, err := output.CsvString([]projection.Projection{result})
	if err != nil {
		h.respondFailure(w, err, op)
		return
	}

	table := output.BuildTable(result)
	elapsed := time.Since(start)
	response := projectionResponse{
		Fund:     result.FundName,
		Scenario: result.ScenarioName,
		Headers:  table.Headers,
		Rows:     table.FormattedRows(),
		Chart:    output.ChartSeries(result),
		CSV:      csv,
		Notices:  notices,
		Warnings: result.Warnings,
		Duration: elapsed.String(),
		Document: params.ToDocument(),
	}

	h.logger.Info("projection computed",
		zap.String("op", op),
		zap.String("fund", result.FundName),
		zap.String("scenario", result.ScenarioName),
		zap.Int("periods", len(result.Periods)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleEditorXLSX(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleEditorXLSX"
	body, ok := h.readBody(w, r, op)
	if !ok {
		return
	}

	params, _, err := config.DecodeParameters(h.logger, body)
	if err != nil {
		h.respondFailure(w, err, op)
		return
	}
	h.writeXLSX(w, params, op)
}

func (h *handler) writeXLSX(w http.ResponseWriter, params config.FundParameters, op string) {
	result, err := projection.GetProjection(h.logger, params)
	if err != nil {
		h.respondFailure(w, err, op)
		return
	}

	var buf bytes.Buffer
	if err := output.WriteXLSX(&buf, result); err != nil {
		h.respondFailure(w, err, op)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.WorkbookName(result)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write workbook", zap.String("op", op), zap.Error(err))
	}
}

// readBody reads a size-limited request body.
func (h *handler) readBody(w http.ResponseWriter, r *http.Request, op string) (io.Reader, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxUploadSize))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("body exceeds limit of %d bytes", h.maxUploadSize), op)
			return nil, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to read body: %v", err), op)
		return nil, false
	}
	return bytes.NewReader(data), true
}
