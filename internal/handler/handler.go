package handler

import (
	"context"
	"errors"
	"time"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"kinship-engine/internal/config"
	"kinship-engine/internal/engine"
	"kinship-engine/internal/model"
)

const batchTimeout = 30 * time.Second

type Handler struct {
	log          *zap.Logger
	workers      int
	batchTimeout time.Duration
	metrics      fasthttp.RequestHandler
}

func New(log *zap.Logger, cfg config.Config) *Handler {
	return &Handler{
		log:          log,
		workers:      cfg.Workers,
		batchTimeout: batchTimeout,
		metrics:      fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler()),
	}
}

// Serve routes one request. Method checks happen per route.
func (h *Handler) Serve(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/v1/trees/infer":
		h.post(ctx, h.infer)
	case "/v1/trees/classified":
		h.post(ctx, h.classified)
	case "/v1/trees/batch":
		h.post(ctx, h.batch)
	case "/healthz":
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("ok")
	case "/metrics":
		h.metrics(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (h *Handler) post(ctx *fasthttp.RequestCtx, next fasthttp.RequestHandler) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	next(ctx)
}

func (h *Handler) infer(ctx *fasthttp.RequestCtx) {
	var req model.InferRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resp := engine.InferFromFlatRecords(&req)
	h.logResponse(resp)
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (h *Handler) classified(ctx *fasthttp.RequestCtx) {
	var req model.ClassifiedRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resp := engine.AssembleFromClassifiedEdges(&req)
	h.logResponse(resp)
	status := fasthttp.StatusOK
	if resp.Metadata.Outcome == model.OutcomeFailure {
		status = fasthttp.StatusUnprocessableEntity
	}
	writeJSON(ctx, status, resp)
}

func (h *Handler) batch(ctx *fasthttp.RequestCtx) {
	var req model.BatchRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Households) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "At least one household is required")
		return
	}

	bctx, cancel := context.WithTimeout(context.Background(), h.batchTimeout)
	defer cancel()

	start := time.Now()
	trees, err := engine.ProcessBatch(bctx, req.Households, h.workers)
	switch {
	case errors.Is(err, engine.ErrMissingHouseholdID), errors.Is(err, engine.ErrDuplicateHouseholdID):
		h.log.Warn("batch rejected", zap.Int("households", len(req.Households)), zap.Error(err))
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	case err != nil:
		status := fasthttp.StatusServiceUnavailable
		if errors.Is(err, context.DeadlineExceeded) {
			status = fasthttp.StatusGatewayTimeout
		}
		h.log.Warn("batch stopped early",
			zap.Int("households", len(req.Households)),
			zap.Int("built", len(trees)),
			zap.Error(err))
		writeJSON(ctx, status, model.BatchResponse{Trees: trees, Error: err.Error()})
		return
	}
	h.log.Info("batch built",
		zap.Int("households", len(trees)),
		zap.Int("workers", h.workers),
		zap.Duration("elapsed", time.Since(start)))
	writeJSON(ctx, fasthttp.StatusOK, model.BatchResponse{Trees: trees})
}

func (h *Handler) logResponse(resp *model.TreeResponse) {
	fields := []zap.Field{
		zap.String("request_id", resp.Metadata.RequestID),
		zap.String("household_id", resp.Metadata.HouseholdID),
		zap.String("path", resp.Metadata.Path),
		zap.String("outcome", resp.Metadata.Outcome),
		zap.Int("members", resp.Result.Stats.Members),
		zap.Int("messages", len(resp.Result.Messages)),
	}
	if resp.Metadata.Outcome == model.OutcomeSuccess {
		h.log.Debug("tree built", fields...)
		return
	}
	h.log.Info("tree built with messages", fields...)
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "Encoding response failed")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(model.ErrorResponse{
		Status:  status,
		Message: message,
	})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
