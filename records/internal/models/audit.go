package models

import "time"

// AuditLog is an append-only record of a security-relevant action.
// Rows are never updated or deleted by the application.
type AuditLog struct {
	ID        string    `json:"id"`
	ActorID   *string   `json:"actor_id"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	IPAddress string    `json:"ip_address,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Signature string    `json:"signature"` // HMAC, tamper-evident
}

const (
	ActionLogin                 = "login"
	ActionLoginFailed           = "login_failed"
	ActionUserCreate            = "user_create"
	ActionUserUpdate            = "user_update"
	ActionUserDisable           = "user_disable"
	ActionPasswordReset         = "password_reset"
	ActionArrestCreate          = "arrest_create"
	ActionWantedCreate          = "wanted_create"
	ActionWantedCapture         = "wanted_capture"
	ActionReportCreate          = "bo_create"
	ActionReportArchive         = "bo_archive"
	ActionInvestigationCreate   = "investigation_create"
	ActionInvestigationFinalize = "investigation_finalize"
	ActionEvidenceAdd           = "evidence_add"
	ActionFineCreate            = "fine_create"
	ActionSeizureCreate         = "seizure_create"
	ActionAssetCreate           = "asset_create"
	ActionAssetUpdate           = "asset_update"
	ActionNewsCreate            = "news_create"
	ActionLicenseRequest        = "license_request"
	ActionLicenseApprove        = "license_approve"
	ActionLicenseDeny           = "license_deny"
	ActionQuizSubmit            = "quiz_submit"
)

// ListAuditRequest holds query parameters for listing audit entries.
type ListAuditRequest struct {
	Page    int
	Limit   int
	ActorID string
	Action  string
}
