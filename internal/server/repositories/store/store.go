// Package store vends record-store-backed repository implementations. Two
// backends exist: DynamoDB (the key-value store the key scheme was designed
// for) and PostgreSQL.
package store

import (
	"context"
	"fmt"

	"github.com/schoolcloud/identity/internal/common"
	"github.com/schoolcloud/identity/internal/server/config"
	"github.com/schoolcloud/identity/internal/server/repositories/events"
	"github.com/schoolcloud/identity/internal/server/repositories/users"
)

// Store exposes the two aggregates of the record store.
type Store interface {
	Users() users.Repository
	Events() events.Repository
}

// New constructs the Store selected by cfg.StoreBackend.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case config.BackendDynamo:
		return NewDynamoStore(ctx, cfg)
	case config.BackendPostgres:
		return NewPostgresStore(ctx, cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("%w: unknown store backend %q", common.ErrorConfiguration, cfg.StoreBackend)
	}
}
