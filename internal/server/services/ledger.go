// Package services contains the business logic of the identity backend:
// signup, login, role and policy mutation, and the audit ledger they all
// write to.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/schoolcloud/identity/internal/logging"
	"github.com/schoolcloud/identity/internal/server/models"
	"github.com/schoolcloud/identity/internal/server/repositories/events"
)

// StatusOK is the default status of an appended event.
const StatusOK = "OK"

// sortSuffix returns a short random disambiguator so two events for the
// same subject in the same millisecond still get distinct sort keys.
var sortSuffix = func() string {
	return uuid.NewString()[:8]
}

// Ledger is the append-only record of security-relevant actions, queryable
// per subject.
type Ledger struct {
	events events.Repository
	logger logging.Logger
	now    func() time.Time
}

func NewLedger(repo events.Repository, logger logging.Logger) *Ledger {
	return &Ledger{
		events: repo,
		logger: logger.With("module", "ledger"),
		now:    time.Now,
	}
}

// Append writes one event with status OK and no payload.
func (l *Ledger) Append(ctx context.Context, subject, eventType, message string) error {
	return l.AppendWithData(ctx, subject, eventType, StatusOK, message, nil)
}

// AppendWithData writes one immutable event. A store failure is returned to
// the caller; the primary operation decides whether it is fatal, but it is
// never dropped here.
func (l *Ledger) AppendWithData(ctx context.Context, subject, eventType, status, message string, data map[string]any) error {
	if data == nil {
		data = map[string]any{}
	}

	ts := l.now().UnixMilli()
	event := &models.Event{
		Subject: subject,
		SortKey: fmt.Sprintf("%d#%s", ts, sortSuffix()),
		Type:    eventType,
		Status:  status,
		Message: message,
		Data:    data,
		TS:      ts,
	}

	if err := l.events.Append(ctx, event); err != nil {
		return fmt.Errorf("append event %q: %w", eventType, err)
	}

	l.logger.Debug(ctx, "event appended", "subject", subject, "type", eventType)
	return nil
}

// Query returns events for subject, most recent first. A non-zero since
// keeps only events strictly newer than it; a positive limit caps the
// count. Each call re-reads the store.
func (l *Ledger) Query(ctx context.Context, subject string, since int64, limit int) ([]*models.Event, error) {
	return l.events.ListBySubject(ctx, subject, since, limit)
}
