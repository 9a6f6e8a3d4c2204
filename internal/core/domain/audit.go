package domain

import "time"

// AuditEntry records one security-relevant action for the audit trail.
type AuditEntry struct {
	ID        string    `json:"id"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Target    string    `json:"target,omitempty"`
	Outcome   string    `json:"outcome"`
	Timestamp time.Time `json:"timestamp"`
}

// Audit actions recorded by the core services.
const (
	AuditActionRegister   = "register"
	AuditActionLogin      = "login"
	AuditActionRoleChange = "role_change"
	AuditActionAddBook    = "add_book"
	AuditActionUpdateBook = "update_book"
	AuditActionDeleteBook = "delete_book"
)

// Audit outcomes.
const (
	AuditOutcomeOK     = "ok"
	AuditOutcomeDenied = "denied"
	AuditOutcomeError  = "error"
)
