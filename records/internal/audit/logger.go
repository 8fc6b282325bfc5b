package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	commonaudit "github.com/precinct-systems/precinct-stack/common/audit"
	"github.com/precinct-systems/precinct-stack/common/httputil"
	"github.com/precinct-systems/precinct-stack/records/internal/metrics"
	"github.com/precinct-systems/precinct-stack/records/internal/models"
)

type Repository interface {
	AppendAudit(ctx context.Context, entry *models.AuditLog) error
}

// Logger appends signed entries to the audit trail. Persistence is
// best effort: a failed append is logged and swallowed so the business
// action that triggered it is never rolled back or aborted.
type Logger struct {
	signer *commonaudit.EventSigner
	repo   Repository
	log    *slog.Logger
}

func NewLogger(secretKey string, repo Repository, log *slog.Logger) *Logger {
	return &Logger{
		signer: commonaudit.NewEventSigner(secretKey),
		repo:   repo,
		log:    log,
	}
}

// Record signs and appends one entry. actorID may be empty for
// anonymous events such as failed logins for unknown users. When ctx
// carries a request source (web, cli, api) the detail is tagged with
// it before signing, so the tag is tamper-evident too.
func (l *Logger) Record(ctx context.Context, actorID, action, detail, ipAddress string) {
	if rc := httputil.GetRequestContext(ctx); rc != nil && rc.SourceType != httputil.SourceTypeUnknown {
		detail += " [" + rc.SourceType.String() + "]"
	}

	id, err := uuid.NewV7()
	if err != nil {
		l.log.Warn("failed to generate audit entry id", slog.String("error", err.Error()))
		metrics.AuditFailuresTotal.Inc()
		return
	}

	entry := &models.AuditLog{
		ID:        id.String(),
		Action:    action,
		Detail:    detail,
		IPAddress: ipAddress,
		Timestamp: time.Now().UTC(),
	}
	if actorID != "" {
		entry.ActorID = &actorID
	}
	entry.Signature = l.signer.Sign(entry.ID, entry.Timestamp, entry.IPAddress, []byte(action+detail))

	// Background context: the trail outlives a cancelled request.
	if err := l.repo.AppendAudit(context.Background(), entry); err != nil {
		l.log.Warn("failed to persist audit entry",
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
		metrics.AuditFailuresTotal.Inc()
		return
	}
	metrics.AuditEntriesTotal.Inc()
}

// Verify recomputes an entry's signature.
func (l *Logger) Verify(entry *models.AuditLog) bool {
	return l.signer.Verify(entry.ID, entry.Timestamp, entry.IPAddress, []byte(entry.Action+entry.Detail), entry.Signature)
}
