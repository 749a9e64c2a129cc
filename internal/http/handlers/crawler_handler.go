// Crawler HTTP handlers.
//
// This file exposes the crawler endpoints:
//   - POST /crawlers/{s3,jdbc,catalog,delta}   (create)
//   - PUT  /crawlers/{s3,jdbc,catalog,delta}   (update)
//   - GET  /crawlers                           (full records)
//   - GET  /crawlers/names                     (names only)
//   - GET  /crawlers/{name}                    (one record; POST accepted too)
//   - POST /crawlers/{name}/start
//   - POST /crawlers/{name}/stop
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/glue-gateway/internal/catalog"
	"github.com/tbourn/glue-gateway/internal/envelope"
)

// crawlerCall is CreateCrawler or UpdateCrawler.
type crawlerCall func(context.Context, catalog.CrawlerInput) envelope.Outcome

// putCrawler binds a T record, builds the Glue input and forwards it.
func putCrawler[T any](h *Handlers, c *gin.Context, op envelope.Operation, build func(T) catalog.CrawlerInput, call crawlerCall) {
	var rec T
	if !bindBody(c, &rec) {
		return
	}
	in := build(rec)
	in.Name = normalizeName(in.Name)
	if in.Name == "" {
		fail(c, http.StatusBadRequest, ErrCodeInvalidName, "crawler name is required")
		return
	}
	h.forward(c, op, in.Name, func(ctx context.Context) envelope.Outcome {
		return call(ctx, in)
	})
}

// CreateS3Crawler godoc
// @ID          createS3Crawler
// @Summary     Create an S3 crawler
// @Tags        Crawlers
// @Accept      json
// @Produce     json
// @Param       body  body      domain.S3Crawler  true  "S3 crawler"
// @Success     200   {object}  envelope.Envelope "Success, Error or Exception envelope"
// @Failure     400   {object}  handlers.ErrorResponse "Validation failed"
// @Router      /crawlers/s3 [post]
func (h *Handlers) CreateS3Crawler(c *gin.Context) {
	putCrawler(h, c, envelope.OpCreateCrawler, catalog.S3Input, h.gw.CreateCrawler)
}

// CreateJdbcCrawler godoc
// @ID          createJdbcCrawler
// @Summary     Create a JDBC crawler
// @Tags        Crawlers
// @Accept      json
// @Produce     json
// @Param       body  body      domain.JdbcCrawler  true  "JDBC crawler"
// @Success     200   {object}  envelope.Envelope "Success, Error or Exception envelope"
// @Failure     400   {object}  handlers.ErrorResponse "Validation failed"
// @Router      /crawlers/jdbc [post]
func (h *Handlers) CreateJdbcCrawler(c *gin.Context) {
	putCrawler(h, c, envelope.OpCreateCrawler, catalog.JdbcInput, h.gw.CreateCrawler)
}

// CreateCatalogCrawler godoc
// @ID          createCatalogCrawler
// @Summary     Create a catalog crawler
// @Description UpdateBehavior and DeleteBehavior default to LOG.
// @Tags        Crawlers
// @Accept      json
// @Produce     json
// @Param       body  body      domain.CatalogCrawler  true  "Catalog crawler"
// @Success     200   {object}  envelope.Envelope "Success, Error or Exception envelope"
// @Failure     400   {object}  handlers.ErrorResponse "Validation failed"
// @Router      /crawlers/catalog [post]
func (h *Handlers) CreateCatalogCrawler(c *gin.Context) {
	putCrawler(h, c, envelope.OpCreateCrawler, catalog.CatalogInput, h.gw.CreateCrawler)
}

// CreateDeltaCrawler godoc
// @ID          createDeltaCrawler
// @Summary     Create a Delta Lake crawler
// @Tags        Crawlers
// @Accept      json
// @Produce     json
// @Param       body  body      domain.DeltaCrawler  true  "Delta crawler"
// @Success     200   {object}  envelope.Envelope "Success, Error or Exception envelope"
// @Failure     400   {object}  handlers.ErrorResponse "Validation failed"
// @Router      /crawlers/delta [post]
func (h *Handlers) CreateDeltaCrawler(c *gin.Context) {
	putCrawler(h, c, envelope.OpCreateCrawler, catalog.DeltaInput, h.gw.CreateCrawler)
}

// UpdateS3Crawler godoc
// @ID          updateS3Crawler
// @Summary     Update an S3 crawler
// @Tags        Crawlers
// @Accept      json
// @Produce     json
// @Param       body  body      domain.S3Crawler  true  "S3 crawler"
// @Success     200   {object}  envelope.Envelope "Success, Error or Exception envelope"
// @Failure     400   {object}  handlers.ErrorResponse "Validation failed"
// @Router      /crawlers/s3 [put]
func (h *Handlers) UpdateS3Crawler(c *gin.Context) {
	putCrawler(h, c, envelope.OpUpdateCrawler, catalog.S3Input, h.gw.UpdateCrawler)
}

// UpdateJdbcCrawler godoc
// @ID          updateJdbcCrawler
// @Summary     Update a JDBC crawler
// @Tags        Crawlers
// @Accept      json
// @Produce     json
// @Param       body  body      domain.JdbcCrawler  true  "JDBC crawler"
// @Success     200   {object}  envelope.Envelope "Success, Error or Exception envelope"
// @Failure     400   {object}  handlers.ErrorResponse "Validation failed"
// @Router      /crawlers/jdbc [put]
func (h *Handlers) UpdateJdbcCrawler(c *gin.Context) {
	putCrawler(h, c, envelope.OpUpdateCrawler, catalog.JdbcInput, h.gw.UpdateCrawler)
}

// UpdateCatalogCrawler godoc
// @ID          updateCatalogCrawler
// @Summary     Update a catalog crawler
// @Tags        Crawlers
// @Accept      json
// @Produce     json
// @Param       body  body      domain.CatalogCrawler  true  "Catalog crawler"
// @Success     200   {object}  envelope.Envelope "Success, Error or Exception envelope"
// @Failure     400   {object}  handlers.ErrorResponse "Validation failed"
// @Router      /crawlers/catalog [put]
func (h *Handlers) UpdateCatalogCrawler(c *gin.Context) {
	putCrawler(h, c, envelope.OpUpdateCrawler, catalog.CatalogInput, h.gw.UpdateCrawler)
}

// UpdateDeltaCrawler godoc
// @ID          updateDeltaCrawler
// @Summary     Update a Delta Lake crawler
// @Tags        Crawlers
// @Accept      json
// @Produce     json
// @Param       body  body      domain.DeltaCrawler  true  "Delta crawler"
// @Success     200   {object}  envelope.Envelope "Success, Error or Exception envelope"
// @Failure     400   {object}  handlers.ErrorResponse "Validation failed"
// @Router      /crawlers/delta [put]
func (h *Handlers) UpdateDeltaCrawler(c *gin.Context) {
	putCrawler(h, c, envelope.OpUpdateCrawler, catalog.DeltaInput, h.gw.UpdateCrawler)
}

// GetCrawlers godoc
// @ID          getCrawlers
// @Summary     List crawler records
// @Description data is the list of crawler records.
// @Tags        Crawlers
// @Produce     json
// @Success     200  {object}  envelope.Envelope
// @Router      /crawlers [get]
func (h *Handlers) GetCrawlers(c *gin.Context) {
	h.forward(c, envelope.OpGetCrawlers, "", h.gw.GetCrawlers)
}

// ListCrawlers godoc
// @ID          listCrawlers
// @Summary     List crawler names
// @Description data is the list of crawler names.
// @Tags        Crawlers
// @Produce     json
// @Success     200  {object}  envelope.Envelope
// @Router      /crawlers/names [get]
func (h *Handlers) ListCrawlers(c *gin.Context) {
	h.forward(c, envelope.OpListCrawlers, "", h.gw.ListCrawlers)
}

// GetCrawler godoc
// @ID          getCrawler
// @Summary     Get one crawler
// @Tags        Crawlers
// @Produce     json
// @Param       name  path      string  true  "Crawler name"
// @Success     200   {object}  envelope.Envelope
// @Failure     400   {object}  handlers.ErrorResponse "Empty name"
// @Router      /crawlers/{name} [get]
func (h *Handlers) GetCrawler(c *gin.Context) {
	h.byName(c, "crawler", envelope.OpGetCrawler, h.gw.GetCrawler)
}

// StartCrawler godoc
// @ID          startCrawler
// @Summary     Start a crawler run
// @Tags        Crawlers
// @Produce     json
// @Param       name  path      string  true  "Crawler name"
// @Success     200   {object}  envelope.Envelope
// @Failure     400   {object}  handlers.ErrorResponse "Empty name"
// @Router      /crawlers/{name}/start [post]
func (h *Handlers) StartCrawler(c *gin.Context) {
	h.byName(c, "crawler", envelope.OpStartCrawler, h.gw.StartCrawler)
}

// StopCrawler godoc
// @ID          stopCrawler
// @Summary     Stop a running crawler
// @Tags        Crawlers
// @Produce     json
// @Param       name  path      string  true  "Crawler name"
// @Success     200   {object}  envelope.Envelope
// @Failure     400   {object}  handlers.ErrorResponse "Empty name"
// @Router      /crawlers/{name}/stop [post]
func (h *Handlers) StopCrawler(c *gin.Context) {
	h.byName(c, "crawler", envelope.OpStopCrawler, h.gw.StopCrawler)
}

// byName forwards a call that takes only the :name path parameter.
func (h *Handlers) byName(c *gin.Context, kind string, op envelope.Operation, call func(context.Context, string) envelope.Outcome) {
	name, valid := pathName(c, kind)
	if !valid {
		return
	}
	h.forward(c, op, name, func(ctx context.Context) envelope.Outcome {
		return call(ctx, name)
	})
}
