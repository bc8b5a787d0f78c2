package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/domfetch/domfetch/cache"
	"github.com/domfetch/domfetch/fetcher"
	"github.com/domfetch/domfetch/models"
	"github.com/gin-gonic/gin"
)

// PageFetcher runs the page acquisition protocol for one request.
type PageFetcher interface {
	Fetch(ctx context.Context, req *models.FetchRequest) (*fetcher.Result, error)
}

// Fetch returns a handler for POST /api/v1/fetch.
//
// Orchestration flow:
//  1. Parse & validate request, apply defaults.
//  2. Cache lookup (only when the client sent maxAge).
//  3. PageFetcher.Fetch → rendered markup.
//  4. Fill Timing, store in cache, return 200.
func Fetch(pf PageFetcher, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		// ── 1. Parse request ────────────────────────────────────────
		var req models.FetchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.FetchResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}
		req.Defaults()

		// ── 2. Cache lookup ─────────────────────────────────────────
		var cacheKey string
		if cc != nil && req.MaxAge > 0 {
			cacheKey = cache.Key(&req)
			if cached, hit := cc.Get(cacheKey, req.MaxAge); hit {
				resp := *cached
				resp.CacheStatus = "hit"
				resp.Timing = models.TimingInfo{
					TotalMs: time.Since(totalStart).Milliseconds(),
				}
				c.JSON(http.StatusOK, &resp)
				return
			}
		}

		// ── 3. Fetch ────────────────────────────────────────────────
		result, err := pf.Fetch(c.Request.Context(), &req)
		if err != nil {
			respondError(c, err, models.TimingInfo{
				TotalMs: time.Since(totalStart).Milliseconds(),
			})
			return
		}

		// ── 4. Respond ──────────────────────────────────────────────
		resp := &models.FetchResponse{
			Success: true,
			Content: result.Content,
			Timing: models.TimingInfo{
				TotalMs:      time.Since(totalStart).Milliseconds(),
				NavigationMs: result.NavigationMs,
				ScrollMs:     result.ScrollMs,
			},
		}
		if cacheKey != "" {
			resp.CacheStatus = "miss"
			cc.Set(cacheKey, resp)
		}

		c.JSON(http.StatusOK, resp)
	}
}

// respondError maps internal errors onto HTTP statuses and the response
// envelope. Exactly one error reaches the caller per failed request.
func respondError(c *gin.Context, err error, timing models.TimingInfo) {
	var fetchErr *models.FetchError
	if !errors.As(err, &fetchErr) {
		fetchErr = models.NewFetchError(models.ErrCodeInternal, err.Error(), err)
	}

	status := http.StatusInternalServerError
	switch fetchErr.Code {
	case models.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	case models.ErrCodeConnection, models.ErrCodePageCreate, models.ErrCodeNavigation:
		status = http.StatusBadGateway
	}

	c.JSON(status, models.FetchResponse{
		Success: false,
		Timing:  timing,
		Error:   fetchErr.ToDetail(),
	})
}
