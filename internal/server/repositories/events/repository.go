package events

import (
	"context"

	"github.com/schoolcloud/identity/internal/server/models"
)

// Repository is the append-only event slice of the record store. Events are
// written once and never mutated or deleted.
type Repository interface {
	// Append writes one event. A store failure is returned to the caller,
	// never dropped silently.
	Append(ctx context.Context, event *models.Event) error

	// ListBySubject returns events for subject, most recent first. A
	// non-zero since keeps only events strictly newer than it (unix
	// millis); a positive limit caps the returned count.
	ListBySubject(ctx context.Context, subject string, since int64, limit int) ([]*models.Event, error)
}
