// Connection HTTP handlers.
//
// This file exposes the connection endpoints:
//   - POST   /connections          (create)
//   - PUT    /connections          (update; the name comes from the body)
//   - GET    /connections          (list)
//   - GET    /connections/{name}   (one record; POST accepted too)
//   - DELETE /connections/{name}
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/glue-gateway/internal/domain"
	"github.com/tbourn/glue-gateway/internal/envelope"
)

// putConnection binds a connection record and forwards it through call.
func (h *Handlers) putConnection(c *gin.Context, op envelope.Operation, call func(context.Context, domain.Connection) envelope.Outcome) {
	var rec domain.Connection
	if !bindBody(c, &rec) {
		return
	}
	rec.Name = normalizeName(rec.Name)
	if rec.Name == "" {
		fail(c, http.StatusBadRequest, ErrCodeInvalidName, "connection name is required")
		return
	}
	h.forward(c, op, rec.Name, func(ctx context.Context) envelope.Outcome {
		return call(ctx, rec)
	})
}

// CreateConnection godoc
// @ID          createConnection
// @Summary     Create a JDBC connection
// @Tags        Connections
// @Accept      json
// @Produce     json
// @Param       body  body      domain.Connection  true  "Connection"
// @Success     200   {object}  envelope.Envelope "Success, Error or Exception envelope"
// @Failure     400   {object}  handlers.ErrorResponse "Validation failed"
// @Router      /connections [post]
func (h *Handlers) CreateConnection(c *gin.Context) {
	h.putConnection(c, envelope.OpCreateConnection, h.gw.CreateConnection)
}

// UpdateConnection godoc
// @ID          updateConnection
// @Summary     Update a JDBC connection
// @Description The connection to update is identified by the Name field of the body.
// @Tags        Connections
// @Accept      json
// @Produce     json
// @Param       body  body      domain.Connection  true  "Connection"
// @Success     200   {object}  envelope.Envelope "Success, Error or Exception envelope"
// @Failure     400   {object}  handlers.ErrorResponse "Validation failed"
// @Router      /connections [put]
func (h *Handlers) UpdateConnection(c *gin.Context) {
	h.putConnection(c, envelope.OpUpdateConnection, h.gw.UpdateConnection)
}

// GetConnections godoc
// @ID          getConnections
// @Summary     List connections
// @Description data is the connection list itself, not the Glue response wrapper.
// @Tags        Connections
// @Produce     json
// @Success     200  {object}  envelope.Envelope
// @Router      /connections [get]
func (h *Handlers) GetConnections(c *gin.Context) {
	h.forward(c, envelope.OpGetConnections, "", h.gw.GetConnections)
}

// GetConnection godoc
// @ID          getConnection
// @Summary     Get one connection
// @Tags        Connections
// @Produce     json
// @Param       name  path      string  true  "Connection name"
// @Success     200   {object}  envelope.Envelope
// @Failure     400   {object}  handlers.ErrorResponse "Empty name"
// @Router      /connections/{name} [get]
func (h *Handlers) GetConnection(c *gin.Context) {
	h.byName(c, "connection", envelope.OpGetConnection, h.gw.GetConnection)
}

// DeleteConnection godoc
// @ID          deleteConnection
// @Summary     Delete a connection
// @Tags        Connections
// @Produce     json
// @Param       name  path      string  true  "Connection name"
// @Success     200   {object}  envelope.Envelope
// @Failure     400   {object}  handlers.ErrorResponse "Empty name"
// @Router      /connections/{name} [delete]
func (h *Handlers) DeleteConnection(c *gin.Context) {
	h.byName(c, "connection", envelope.OpDeleteConnection, h.gw.DeleteConnection)
}
