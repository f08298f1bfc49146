package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/schoolcloud/identity/internal/server/services"
)

func (a *App) Events(ctx context.Context) error {
	principal, err := a.principal()
	if err != nil {
		return err
	}

	sinceText, err := GetSimpleText(a.reader, "Show events newer than unix millis (empty for all)", a.out)
	if err != nil {
		return err
	}
	var since int64
	if sinceText != "" {
		since, err = strconv.ParseInt(sinceText, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q", sinceText)
		}
	}

	limitText, err := GetSimpleText(a.reader, "Max events (empty for all)", a.out)
	if err != nil {
		return err
	}
	var limit int
	if limitText != "" {
		limit, err = strconv.Atoi(limitText)
		if err != nil {
			return fmt.Errorf("invalid limit %q", limitText)
		}
	}

	list, err := a.backend.Ledger.Query(ctx, principal.Subject, since, limit)
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Fprintln(a.out, "No events")
		return nil
	}
	for _, e := range list {
		at := time.UnixMilli(e.TS).UTC().Format(time.RFC3339)
		fmt.Fprintf(a.out, "%s  %-20s %-4s %s\n", at, e.Type, e.Status, e.Message)
	}
	return nil
}

// AddEvent appends a caller-chosen event to the ledger of the authenticated
// subject. The type defaults to "custom"; the detail is an optional JSON
// object.
func (a *App) AddEvent(ctx context.Context) error {
	principal, err := a.principal()
	if err != nil {
		return err
	}

	kind, err := GetSimpleText(a.reader, `Enter event type (empty for "custom")`, a.out)
	if err != nil {
		return err
	}
	if kind == "" {
		kind = "custom"
	}

	message, err := GetSimpleText(a.reader, "Enter message", a.out)
	if err != nil {
		return err
	}

	detailText, err := GetSimpleText(a.reader, "Enter detail JSON object (optional)", a.out)
	if err != nil {
		return err
	}
	var detail map[string]any
	if detailText != "" {
		if err := json.Unmarshal([]byte(detailText), &detail); err != nil {
			return fmt.Errorf("invalid detail %q", detailText)
		}
	}

	if err := a.backend.Ledger.AppendWithData(ctx, principal.Subject, kind, services.StatusOK, message, detail); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Recorded %s event for %s\n", kind, principal.Subject)
	return nil
}
