package ingest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/artcadia/market-sync/internal/domain"
	"github.com/artcadia/market-sync/internal/logger"
)

// FetchFunc fetches the page at cursor. An empty cursor requests the
// first page.
type FetchFunc[T any] func(ctx context.Context, cursor string) (*domain.Page[T], error)

// HandleFunc persists one fetched page.
type HandleFunc[T any] func(ctx context.Context, page *domain.Page[T]) error

// SweepResult summarizes one pass over a paginated stream
type SweepResult struct {
	// Pages is the number of non-empty pages fetched
	Pages int
	// Records is the total records seen across all pages
	Records int
	// FailedPages is the number of pages whose handler returned an error
	FailedPages int
	// FetchStopped is true when a fetch or decode error ended the sweep early
	FetchStopped bool
}

// SweepPages walks a cursor-paginated stream from its start to exhaustion.
// The cursor is opaque: it is echoed back to the provider verbatim, never
// inspected. Pagination ends when the provider returns an empty page or an
// empty cursor. A fetch or decode error stops the sweep without raising so
// that later streams keep running; a handler error skips the page but
// pagination continues, since the missed rows are picked up by the next
// run's watermark.
func SweepPages[T any](ctx context.Context, stream string, fetch FetchFunc[T], handle HandleFunc[T]) SweepResult {
	var result SweepResult

	cursor := ""
	for {
		if ctx.Err() != nil {
			logger.WarnCtx(ctx, "Sweep interrupted by context cancellation",
				zap.String("stream", stream),
				zap.Int("pages", result.Pages),
			)
			return result
		}

		page, err := fetch(ctx, cursor)
		if err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to fetch page for stream %s: %w", stream, err),
				zap.Int("pages", result.Pages),
				zap.String("cursor", cursor),
			)
			result.FetchStopped = true
			return result
		}

		if page == nil || len(page.Records) == 0 {
			return result
		}

		result.Pages++
		result.Records += len(page.Records)

		if err := handle(ctx, page); err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to handle page for stream %s: %w", stream, err),
				zap.Int("page", result.Pages),
			)
			result.FailedPages++
		}

		if page.Cursor == "" {
			return result
		}
		cursor = page.Cursor
	}
}
