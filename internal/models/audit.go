package models

import "time"

// Audit operation tags written by the store for every transaction mutation.
const (
	AuditOperateInsert = "insert"
	AuditOperateUpdate = "update"
	AuditOperateDelete = "delete"
)

// TransactionAudit records one mutation of a transaction row: the operation
// tag and an immutable JSON snapshot of the fields at mutation time. Rows are
// append-only; there is no UpdatedAt because nothing ever updates them.
type TransactionAudit struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TxID      *uint     `gorm:"index" json:"tx_id,omitempty"`
	Operate   string    `gorm:"not null" json:"operate"`
	Info      string    `json:"info"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName maps the model to the transaction_audit table.
func (TransactionAudit) TableName() string { return "transaction_audit" }
