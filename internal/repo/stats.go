package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/glue-gateway/internal/domain"
)

// CallStats returns the number of recorded calls and the newest CreatedAt,
// optionally filtered by operation. latest is nil when there are no rows.
//
// The pair changes whenever a call is recorded, which makes it a cheap weak
// validator for the audit listing.
func CallStats(ctx context.Context, db *gorm.DB, op string) (count int64, latest *time.Time, err error) {
	q := callScope(db.WithContext(ctx).Model(&domain.CallRecord{}), op)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Avoid MAX() -> TEXT in SQLite.
	var row struct {
		CreatedAt time.Time
	}
	if err = callScope(db.WithContext(ctx).Model(&domain.CallRecord{}), op).
		Select("created_at").Order("created_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.CreatedAt, nil
}
