package domain

import "time"

// CallRecord is one forwarded Glue call as seen by operators.
//
// Cause keeps the real error text of unclassified failures, which callers
// only ever see as "Unhandled Exception".
type CallRecord struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	RequestID string    `json:"request_id" gorm:"type:varchar(64);index"`
	Operation string    `json:"operation"  gorm:"type:varchar(32);not null;index:idx_calls_op_time,priority:1"`
	Resource  string    `json:"resource"   gorm:"type:varchar(255)"`
	Variant   string    `json:"variant"    gorm:"type:varchar(16);not null;check:variant IN ('success','error','exception')"`
	Status    int       `json:"status"     gorm:"not null"`
	ErrorCode string    `json:"error_code,omitempty" gorm:"type:varchar(128)"`
	Cause     string    `json:"cause,omitempty"      gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_calls_op_time,priority:2"`
}

// TableName returns the database table name for CallRecord.
func (CallRecord) TableName() string { return "glue_calls" }
