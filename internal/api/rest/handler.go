package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/artcadia/market-sync/internal/domain"
	"github.com/artcadia/market-sync/internal/logger"
	"github.com/artcadia/market-sync/internal/store"
)

// StreamStatus is one stream's position in a status response
type StreamStatus struct {
	Stream    string     `json:"stream"`
	Kind      string     `json:"kind"`
	Scope     string     `json:"scope"`
	Rows      int64      `json:"rows"`
	Watermark *time.Time `json:"watermark"`
}

// StreamsResponse is the body of GET /v1/streams
type StreamsResponse struct {
	Streams []StreamStatus `json:"streams"`
}

// Handler serves the status endpoints
type Handler struct {
	store       store.Store
	collections []string
	coinIDs     []string
}

// NewHandler creates a new status handler for the configured streams
func NewHandler(st store.Store, collections, coinIDs []string) *Handler {
	return &Handler{
		store:       st,
		collections: collections,
		coinIDs:     coinIDs,
	}
}

// Healthz reports liveness
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Streams reports the row count and watermark of every configured stream.
// Positions are read straight from the database, so the response reflects
// exactly what a restart would resume from.
func (h *Handler) Streams(c *gin.Context) {
	ctx := c.Request.Context()

	var keys []domain.StreamKey
	for _, collection := range h.collections {
		for _, kind := range domain.Kinds {
			if kind == domain.KindCoinPrice {
				continue
			}
			keys = append(keys, domain.StreamKey{Kind: kind, Scope: collection})
		}
	}
	for _, coinID := range h.coinIDs {
		keys = append(keys, domain.StreamKey{Kind: domain.KindCoinPrice, Scope: coinID})
	}

	response := StreamsResponse{Streams: make([]StreamStatus, 0, len(keys))}
	for _, key := range keys {
		rows, err := h.store.StreamCount(ctx, key)
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.String("stream", key.String()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		watermark, err := h.store.Watermark(ctx, key)
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.String("stream", key.String()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		response.Streams = append(response.Streams, StreamStatus{
			Stream:    key.String(),
			Kind:      string(key.Kind),
			Scope:     key.Scope,
			Rows:      rows,
			Watermark: watermark,
		})
	}

	c.JSON(http.StatusOK, response)
}
