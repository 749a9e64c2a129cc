// Package services – AuditService
//
// AuditService records every forwarded Glue call and serves the paginated
// audit trail. It is the only place where the real cause of an unclassified
// failure survives: callers see "Unhandled Exception", operators see the
// error text here.
package services

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/tbourn/glue-gateway/internal/domain"
	"github.com/tbourn/glue-gateway/internal/envelope"
)

var (
	// ErrAuditDisabled is returned by reads when no audit store is configured.
	ErrAuditDisabled = errors.New("audit trail disabled")

	// ErrUnknownOperation is returned when filtering by an operation that the
	// gateway does not forward.
	ErrUnknownOperation = errors.New("unknown operation")
)

// CallRepo defines the repository contract required by AuditService.
type CallRepo interface {
	InsertCall(ctx context.Context, db *gorm.DB, rec *domain.CallRecord) error
	CountCalls(ctx context.Context, db *gorm.DB, op string) (int64, error)
	ListCallsPage(ctx context.Context, db *gorm.DB, op string, offset, limit int) ([]domain.CallRecord, error)
	CallStats(ctx context.Context, db *gorm.DB, op string) (int64, *time.Time, error)
}

// Call describes one forwarded call and the envelope it produced.
type Call struct {
	RequestID string
	Operation envelope.Operation
	Resource  string
	Outcome   envelope.Outcome
	Envelope  envelope.Envelope
}

// AuditService persists Call entries. A nil *AuditService or one without a
// DB is a valid, disabled service.
type AuditService struct {
	DB   *gorm.DB
	Repo CallRepo

	// CauseMaxLen caps stored error text by rune length.
	CauseMaxLen int
	// MaxPageSize caps page sizes requested by ListPage.
	MaxPageSize int
}

// NewAuditService constructs an AuditService with default limits.
func NewAuditService(db *gorm.DB, r CallRepo) *AuditService {
	return &AuditService{
		DB:          db,
		Repo:        r,
		CauseMaxLen: 2000,
		MaxPageSize: 100,
	}
}

// Enabled reports whether calls are persisted.
func (s *AuditService) Enabled() bool {
	return s != nil && s.DB != nil && s.Repo != nil
}

// Record stores c. It is a no-op when the service is disabled.
func (s *AuditService) Record(ctx context.Context, c Call) error {
	if !s.Enabled() {
		return nil
	}
	rec := &domain.CallRecord{
		RequestID: c.RequestID,
		Operation: string(c.Operation),
		Resource:  c.Resource,
		Variant:   string(c.Envelope.Variant),
		Status:    c.Envelope.Status,
		ErrorCode: c.Outcome.Code,
	}
	if c.Outcome.Err != nil {
		rec.Cause = s.clip(c.Outcome.Err.Error())
	}
	return s.Repo.InsertCall(ctx, s.DB, rec)
}

// ListPage returns a page of recorded calls (newest first) and the total
// count. An empty op lists every operation.
func (s *AuditService) ListPage(ctx context.Context, op string, page, pageSize int) ([]domain.CallRecord, int64, error) {
	if err := s.checkFilter(op); err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if s.MaxPageSize > 0 && pageSize > s.MaxPageSize {
		pageSize = s.MaxPageSize
	}
	offset := (page - 1) * pageSize

	total, err := s.Repo.CountCalls(ctx, s.DB, op)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.CallRecord{}, 0, nil
	}

	items, err := s.Repo.ListCallsPage(ctx, s.DB, op, offset, pageSize)
	return items, total, err
}

// Stats returns the number of recorded calls matching op and the time of the
// newest one (nil when none).
func (s *AuditService) Stats(ctx context.Context, op string) (int64, *time.Time, error) {
	if err := s.checkFilter(op); err != nil {
		return 0, nil, err
	}
	return s.Repo.CallStats(ctx, s.DB, op)
}

// checkFilter rejects reads on a disabled service and unknown operations.
func (s *AuditService) checkFilter(op string) error {
	if !s.Enabled() {
		return ErrAuditDisabled
	}
	if op != "" {
		if _, ok := envelope.Lookup(envelope.Operation(op)); !ok {
			return ErrUnknownOperation
		}
	}
	return nil
}

func (s *AuditService) clip(text string) string {
	if s.CauseMaxLen <= 0 || utf8.RuneCountInString(text) <= s.CauseMaxLen {
		return text
	}
	r := []rune(text)
	return string(r[:s.CauseMaxLen])
}
