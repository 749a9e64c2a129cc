// Audit HTTP handlers.
//
// GET /audit/calls serves the recorded call trail, newest first. Unlike the
// forwarding endpoints it answers with plain JSON and ErrorResponse, not
// envelopes.
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/glue-gateway/internal/domain"
	"github.com/tbourn/glue-gateway/internal/http/middleware"
	"github.com/tbourn/glue-gateway/internal/services"
	"github.com/tbourn/glue-gateway/internal/utils"
)

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListCallsResponse wraps a page of recorded calls and pagination information.
type ListCallsResponse struct {
	Calls      []domain.CallRecord `json:"calls"`
	Pagination Pagination          `json:"pagination"`
}

// Page size bounds for the audit listing.
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListCalls godoc
// @ID          listCalls
// @Summary     List recorded Glue calls (paginated)
// @Description Returns forwarded calls newest first, including the real cause of unclassified failures.
// @Description Supports weak ETag via If-None-Match and may return 304.
// @Tags        Audit
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"calls:StopCrawler:3:1714564800000000000\")
// @Param       operation  query  string  false "Filter by Glue operation"  example(StopCrawler)
// @Param       page       query  int     false "Page number"               minimum(1) default(1)
// @Param       page_size  query  int     false "Items per page"            minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListCallsResponse
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     400  {object} handlers.ErrorResponse "Unknown operation"
// @Failure     404  {object} handlers.ErrorResponse "Audit trail disabled"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /audit/calls [get]
func (h *Handlers) ListCalls(c *gin.Context) {
	if h.audit == nil {
		fail(c, http.StatusNotFound, ErrCodeAuditDisabled, services.ErrAuditDisabled.Error())
		return
	}
	ctx := c.Request.Context()
	page, pageSize := utils.ClampPage(c.Query("page"), c.Query("page_size"), defaultPageSize, maxPageSize)
	op := c.Query("operation")

	// ETag pre-check (best effort; errors surface from ListPage below).
	if count, latest, err := h.audit.Stats(ctx, op); err == nil {
		var ts int64
		if latest != nil {
			ts = latest.UnixNano()
		}
		etag := fmt.Sprintf(`W/"calls:%s:%d:%d:%d:%d"`, op, count, ts, page, pageSize)
		c.Header("ETag", etag)
		middleware.AllowRevalidation(c)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	items, total, err := h.audit.ListPage(ctx, op, page, pageSize)
	switch {
	case errors.Is(err, services.ErrAuditDisabled):
		fail(c, http.StatusNotFound, ErrCodeAuditDisabled, err.Error())
		return
	case errors.Is(err, services.ErrUnknownOperation):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := utils.TotalPages(total, pageSize)
	ok(c, http.StatusOK, ListCallsResponse{
		Calls: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}
