package catalog

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/glue"
	"github.com/aws/aws-sdk-go-v2/service/glue/types"

	"github.com/tbourn/glue-gateway/internal/domain"
	"github.com/tbourn/glue-gateway/internal/envelope"
)

const redactedPassword = "[REDACTED]"

// connectionInput maps a connection record onto Glue's property bag.
func connectionInput(c domain.Connection) *types.ConnectionInput {
	return &types.ConnectionInput{
		Name:           aws.String(c.Name),
		ConnectionType: types.ConnectionType(c.ConnectionType),
		ConnectionProperties: map[string]string{
			string(types.ConnectionPropertyKeyJdbcConnectionUrl): c.JDBCConnectionURL,
			string(types.ConnectionPropertyKeyUserName):          c.Username,
			string(types.ConnectionPropertyKeyPassword):          c.Password,
		},
	}
}

// redact masks the password property in place when redaction is on.
func (g *Gateway) redact(c *types.Connection) {
	if !g.redactPasswords || c == nil {
		return
	}
	key := string(types.ConnectionPropertyKeyPassword)
	if _, ok := c.ConnectionProperties[key]; ok {
		c.ConnectionProperties[key] = redactedPassword
	}
}

// CreateConnection issues glue:CreateConnection.
func (g *Gateway) CreateConnection(ctx context.Context, c domain.Connection) envelope.Outcome {
	ctx, span := startSpan(ctx, envelope.OpCreateConnection, c.Name)
	out, err := g.api.CreateConnection(ctx, &glue.CreateConnectionInput{
		ConnectionInput: connectionInput(c),
	})
	if err != nil {
		return finish(span, classifyError(err))
	}
	return finish(span, envelope.Transport(transportStatus(out.ResultMetadata), nil, out))
}

// UpdateConnection issues glue:UpdateConnection for the connection named in c.
func (g *Gateway) UpdateConnection(ctx context.Context, c domain.Connection) envelope.Outcome {
	ctx, span := startSpan(ctx, envelope.OpUpdateConnection, c.Name)
	out, err := g.api.UpdateConnection(ctx, &glue.UpdateConnectionInput{
		Name:            aws.String(c.Name),
		ConnectionInput: connectionInput(c),
	})
	if err != nil {
		return finish(span, classifyError(err))
	}
	return finish(span, envelope.Transport(transportStatus(out.ResultMetadata), nil, out))
}

// GetConnection issues glue:GetConnection. The payload is the Connection.
func (g *Gateway) GetConnection(ctx context.Context, name string) envelope.Outcome {
	ctx, span := startSpan(ctx, envelope.OpGetConnection, name)
	out, err := g.api.GetConnection(ctx, &glue.GetConnectionInput{Name: aws.String(name)})
	if err != nil {
		return finish(span, classifyError(err))
	}
	g.redact(out.Connection)
	return finish(span, envelope.Transport(transportStatus(out.ResultMetadata), out.Connection, out))
}

// GetConnections issues glue:GetConnections. The payload is the inner
// ConnectionList, not the response wrapper.
func (g *Gateway) GetConnections(ctx context.Context) envelope.Outcome {
	ctx, span := startSpan(ctx, envelope.OpGetConnections, "")
	out, err := g.api.GetConnections(ctx, &glue.GetConnectionsInput{})
	if err != nil {
		return finish(span, classifyError(err))
	}
	list := out.ConnectionList
	if list == nil {
		list = []types.Connection{}
	}
	for i := range list {
		g.redact(&list[i])
	}
	return finish(span, envelope.Transport(transportStatus(out.ResultMetadata), list, out))
}

// DeleteConnection issues glue:DeleteConnection.
func (g *Gateway) DeleteConnection(ctx context.Context, name string) envelope.Outcome {
	ctx, span := startSpan(ctx, envelope.OpDeleteConnection, name)
	out, err := g.api.DeleteConnection(ctx, &glue.DeleteConnectionInput{ConnectionName: aws.String(name)})
	if err != nil {
		return finish(span, classifyError(err))
	}
	return finish(span, envelope.Transport(transportStatus(out.ResultMetadata), nil, out))
}
