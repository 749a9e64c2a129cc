// Package domain defines the validated request records forwarded to Glue and
// the persisted audit model. Binding tags are enforced by Gin's validator
// before any record reaches the catalog gateway.
package domain

import "strings"

// Schema change policies accepted by catalog crawlers.
const (
	BehaviorLog                 = "LOG"
	BehaviorUpdateInDatabase    = "UPDATE_IN_DATABASE"
	BehaviorDeleteFromDatabase  = "DELETE_FROM_DATABASE"
	BehaviorDeprecateInDatabase = "DEPRECATE_IN_DATABASE"
)

// CrawlerBase carries the fields every crawler record shares.
type CrawlerBase struct {
	// Name is the crawler name.
	Name string `json:"Name" binding:"required,max=255" example:"orders-raw"`
	// Role is the IAM role ARN (or name) the crawler assumes.
	Role string `json:"Role" binding:"required" example:"arn:aws:iam::123456789012:role/GlueCrawler"`
	// DatabaseName is the catalog database that receives discovered tables.
	DatabaseName string `json:"DatabaseName" binding:"required" example:"analytics"`
}

// S3Crawler targets a single S3 path.
type S3Crawler struct {
	CrawlerBase
	S3Path string `json:"S3Path" binding:"required" example:"s3://bucket/orders/"`
}

// JdbcCrawler targets a path reachable through a named Glue connection.
type JdbcCrawler struct {
	CrawlerBase
	ConnectionName string `json:"ConnectionName" binding:"required" example:"postgres-prod"`
	Path           string `json:"Path" binding:"required" example:"sales/public/%"`
}

// CatalogCrawler re-crawls an existing catalog table. Both behaviors default
// to LOG when omitted.
type CatalogCrawler struct {
	CrawlerBase
	Tables         string `json:"Tables" binding:"required" example:"orders"`
	UpdateBehavior string `json:"UpdateBehavior" binding:"omitempty,oneof=LOG UPDATE_IN_DATABASE" example:"LOG"`
	DeleteBehavior string `json:"DeleteBehavior" binding:"omitempty,oneof=LOG DELETE_FROM_DATABASE DEPRECATE_IN_DATABASE" example:"LOG"`
}

// WithDefaults returns a copy with empty behaviors set to LOG.
func (c CatalogCrawler) WithDefaults() CatalogCrawler {
	if strings.TrimSpace(c.UpdateBehavior) == "" {
		c.UpdateBehavior = BehaviorLog
	}
	if strings.TrimSpace(c.DeleteBehavior) == "" {
		c.DeleteBehavior = BehaviorLog
	}
	return c
}

// DeltaCrawler targets a Delta Lake table.
type DeltaCrawler struct {
	CrawlerBase
	DeltaTables string `json:"DeltaTables" binding:"required" example:"s3://bucket/delta/orders/"`
}

// Connection is a JDBC connection record.
type Connection struct {
	Name              string `json:"Name" binding:"required,min=1,max=255" example:"postgres-prod"`
	ConnectionType    string `json:"ConnectionType" binding:"required" example:"JDBC"`
	JDBCConnectionURL string `json:"JDBC_CONNECTION_URL" binding:"required" example:"jdbc:postgresql://db:5432/sales"`
	Username          string `json:"USERNAME" binding:"required" example:"glue"`
	Password          string `json:"PASSWORD" binding:"required" example:"secret"`
}
