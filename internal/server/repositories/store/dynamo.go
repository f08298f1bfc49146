package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	sc "github.com/schoolcloud/identity/internal/server/config"
	"github.com/schoolcloud/identity/internal/server/repositories/events"
	"github.com/schoolcloud/identity/internal/server/repositories/users"
)

// loadDefaultAWSConfig is a seam for testing config loading.
var loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

// DynamoStore vends DynamoDB-backed repositories sharing one client.
type DynamoStore struct {
	users  users.Repository
	events events.Repository
}

// NewDynamoStore builds a DynamoDB client from cfg and wires the
// repositories to it. Static credentials and a custom endpoint are applied
// when configured, so a local DynamoDB works the same way as the real one.
func NewDynamoStore(ctx context.Context, cfg *sc.Config) (*DynamoStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("aws config error: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.AWSEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.AWSEndpoint)
		}
	})

	return &DynamoStore{
		users:  users.NewDynamoRepository(client, cfg.UsersTable),
		events: events.NewDynamoRepository(client, cfg.EventsTable),
	}, nil
}

func (s *DynamoStore) Users() users.Repository { return s.users }

func (s *DynamoStore) Events() events.Repository { return s.events }
