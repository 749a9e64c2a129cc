package catalog

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/glue"
	"github.com/aws/aws-sdk-go-v2/service/glue/types"

	"github.com/tbourn/glue-gateway/internal/domain"
	"github.com/tbourn/glue-gateway/internal/envelope"
)

// Confirmation messages attached to start/stop Success envelopes.
const (
	MsgCrawlerStarted = "Crawler started successfully"
	MsgCrawlerStopped = "Crawler stopped successfully"
)

// CrawlerInput is the target-independent shape shared by CreateCrawler and
// UpdateCrawler.
type CrawlerInput struct {
	Name         string
	Role         string
	DatabaseName string // empty for catalog targets
	Targets      types.CrawlerTargets
	Policy       *types.SchemaChangePolicy
}

// S3Input builds a crawler over a single S3 path.
func S3Input(c domain.S3Crawler) CrawlerInput {
	return CrawlerInput{
		Name:         c.Name,
		Role:         c.Role,
		DatabaseName: c.DatabaseName,
		Targets: types.CrawlerTargets{
			S3Targets: []types.S3Target{{Path: aws.String(c.S3Path)}},
		},
	}
}

// JdbcInput builds a crawler over a JDBC path behind a Glue connection.
func JdbcInput(c domain.JdbcCrawler) CrawlerInput {
	return CrawlerInput{
		Name:         c.Name,
		Role:         c.Role,
		DatabaseName: c.DatabaseName,
		Targets: types.CrawlerTargets{
			JdbcTargets: []types.JdbcTarget{{
				ConnectionName: aws.String(c.ConnectionName),
				Path:           aws.String(c.Path),
			}},
		},
	}
}

// CatalogInput builds a crawler over an existing catalog table. The database
// moves into the target and the schema change policy is always sent.
func CatalogInput(c domain.CatalogCrawler) CrawlerInput {
	c = c.WithDefaults()
	return CrawlerInput{
		Name: c.Name,
		Role: c.Role,
		Targets: types.CrawlerTargets{
			CatalogTargets: []types.CatalogTarget{{
				DatabaseName: aws.String(c.DatabaseName),
				Tables:       []string{c.Tables},
			}},
		},
		Policy: &types.SchemaChangePolicy{
			UpdateBehavior: types.UpdateBehavior(c.UpdateBehavior),
			DeleteBehavior: types.DeleteBehavior(c.DeleteBehavior),
		},
	}
}

// DeltaInput builds a crawler over a Delta Lake table.
func DeltaInput(c domain.DeltaCrawler) CrawlerInput {
	return CrawlerInput{
		Name:         c.Name,
		Role:         c.Role,
		DatabaseName: c.DatabaseName,
		Targets: types.CrawlerTargets{
			DeltaTargets: []types.DeltaTarget{{DeltaTables: []string{c.DeltaTables}}},
		},
	}
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}

// CreateCrawler issues glue:CreateCrawler.
func (g *Gateway) CreateCrawler(ctx context.Context, in CrawlerInput) envelope.Outcome {
	ctx, span := startSpan(ctx, envelope.OpCreateCrawler, in.Name)
	targets := in.Targets
	out, err := g.api.CreateCrawler(ctx, &glue.CreateCrawlerInput{
		Name:               aws.String(in.Name),
		Role:               aws.String(in.Role),
		DatabaseName:       optString(in.DatabaseName),
		Targets:            &targets,
		SchemaChangePolicy: in.Policy,
	})
	if err != nil {
		return finish(span, classifyError(err))
	}
	return finish(span, envelope.Transport(transportStatus(out.ResultMetadata), nil, out))
}

// UpdateCrawler issues glue:UpdateCrawler.
func (g *Gateway) UpdateCrawler(ctx context.Context, in CrawlerInput) envelope.Outcome {
	ctx, span := startSpan(ctx, envelope.OpUpdateCrawler, in.Name)
	targets := in.Targets
	out, err := g.api.UpdateCrawler(ctx, &glue.UpdateCrawlerInput{
		Name:               aws.String(in.Name),
		Role:               aws.String(in.Role),
		DatabaseName:       optString(in.DatabaseName),
		Targets:            &targets,
		SchemaChangePolicy: in.Policy,
	})
	if err != nil {
		return finish(span, classifyError(err))
	}
	return finish(span, envelope.Transport(transportStatus(out.ResultMetadata), nil, out))
}

// GetCrawler issues glue:GetCrawler. The payload is the Crawler record.
func (g *Gateway) GetCrawler(ctx context.Context, name string) envelope.Outcome {
	ctx, span := startSpan(ctx, envelope.OpGetCrawler, name)
	out, err := g.api.GetCrawler(ctx, &glue.GetCrawlerInput{Name: aws.String(name)})
	if err != nil {
		return finish(span, classifyError(err))
	}
	return finish(span, envelope.Transport(transportStatus(out.ResultMetadata), out.Crawler, out))
}

// GetCrawlers issues glue:GetCrawlers. The payload is the Crawlers list.
func (g *Gateway) GetCrawlers(ctx context.Context) envelope.Outcome {
	ctx, span := startSpan(ctx, envelope.OpGetCrawlers, "")
	out, err := g.api.GetCrawlers(ctx, &glue.GetCrawlersInput{})
	if err != nil {
		return finish(span, classifyError(err))
	}
	crawlers := out.Crawlers
	if crawlers == nil {
		crawlers = []types.Crawler{}
	}
	return finish(span, envelope.Transport(transportStatus(out.ResultMetadata), crawlers, out))
}

// ListCrawlers issues glue:ListCrawlers. The payload is the CrawlerNames list.
func (g *Gateway) ListCrawlers(ctx context.Context) envelope.Outcome {
	ctx, span := startSpan(ctx, envelope.OpListCrawlers, "")
	out, err := g.api.ListCrawlers(ctx, &glue.ListCrawlersInput{})
	if err != nil {
		return finish(span, classifyError(err))
	}
	names := out.CrawlerNames
	if names == nil {
		names = []string{}
	}
	return finish(span, envelope.Transport(transportStatus(out.ResultMetadata), names, out))
}

// StartCrawler issues glue:StartCrawler.
func (g *Gateway) StartCrawler(ctx context.Context, name string) envelope.Outcome {
	ctx, span := startSpan(ctx, envelope.OpStartCrawler, name)
	out, err := g.api.StartCrawler(ctx, &glue.StartCrawlerInput{Name: aws.String(name)})
	if err != nil {
		return finish(span, classifyError(err))
	}
	return finish(span, envelope.Transport(transportStatus(out.ResultMetadata),
		map[string]string{"message": MsgCrawlerStarted}, out))
}

// StopCrawler issues glue:StopCrawler.
func (g *Gateway) StopCrawler(ctx context.Context, name string) envelope.Outcome {
	ctx, span := startSpan(ctx, envelope.OpStopCrawler, name)
	out, err := g.api.StopCrawler(ctx, &glue.StopCrawlerInput{Name: aws.String(name)})
	if err != nil {
		return finish(span, classifyError(err))
	}
	return finish(span, envelope.Transport(transportStatus(out.ResultMetadata),
		map[string]string{"message": MsgCrawlerStopped}, out))
}
