package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/schoolcloud/identity/internal/common"
	"github.com/schoolcloud/identity/internal/dbx"
	"github.com/schoolcloud/identity/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, event *models.Event) error {
	data := event.Data
	if data == nil {
		data = map[string]any{}
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}

	query :=
		`INSERT INTO events (subject, sk, type, status, message, data, ts)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 `

	_, err = r.db.ExecContext(ctx, query,
		event.Subject, event.SortKey, event.Type, event.Status, event.Message, payload, event.TS)
	if err != nil {
		return fmt.Errorf("%w: insert event: %v", common.ErrorStorage, err)
	}
	return nil
}

func (r *PostgresRepository) ListBySubject(ctx context.Context, subject string, since int64, limit int) ([]*models.Event, error) {
	query :=
		`SELECT subject, sk, type, status, message, data, ts FROM events
		 WHERE subject = $1 AND ts > $2
		 ORDER BY sk DESC
		 `
	args := []any{subject, since}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: select events: %v", common.ErrorStorage, err)
	}
	defer rows.Close()

	var result []*models.Event
	for rows.Next() {
		event := &models.Event{}
		var payload []byte
		if err := rows.Scan(&event.Subject, &event.SortKey, &event.Type, &event.Status,
			&event.Message, &payload, &event.TS); err != nil {
			return nil, fmt.Errorf("%w: scan event: %v", common.ErrorStorage, err)
		}
		if err := json.Unmarshal(payload, &event.Data); err != nil {
			return nil, fmt.Errorf("unmarshal event data: %w", err)
		}
		result = append(result, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: select events: %v", common.ErrorStorage, err)
	}
	return result, nil
}
