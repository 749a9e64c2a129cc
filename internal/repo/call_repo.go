// Package repo implements the persistence layer for the Glue call audit
// trail. This file provides repository functions for the CallRecord model.
//
// All functions are context-aware and accept a *gorm.DB handle. They follow
// the "thin repository" approach: no business logic, only inserts and query
// composition. Database errors are propagated unchanged.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/glue-gateway/internal/domain"
)

// InsertCall persists rec, assigning a UUID and a UTC timestamp when unset.
func InsertCall(ctx context.Context, db *gorm.DB, rec *domain.CallRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(rec).Error
}

// callScope filters by operation when op is non-empty.
func callScope(db *gorm.DB, op string) *gorm.DB {
	if op != "" {
		return db.Where("operation = ?", op)
	}
	return db
}

// CountCalls returns the number of recorded calls, optionally filtered by
// operation.
func CountCalls(ctx context.Context, db *gorm.DB, op string) (int64, error) {
	var total int64
	err := callScope(db.WithContext(ctx).Model(&domain.CallRecord{}), op).
		Count(&total).Error
	return total, err
}

// ListCallsPage returns recorded calls newest first.
//
// The caller computes offset and limit (e.g., (page-1)*pageSize).
func ListCallsPage(ctx context.Context, db *gorm.DB, op string, offset, limit int) ([]domain.CallRecord, error) {
	var out []domain.CallRecord
	err := callScope(db.WithContext(ctx), op).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}
