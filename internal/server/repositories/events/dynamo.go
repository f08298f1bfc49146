package events

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/schoolcloud/identity/internal/common"
	"github.com/schoolcloud/identity/internal/server/models"
)

// Events share the user partition: (pk = "user#"+subject, sk = "<ts>#<suffix>").
func eventPK(subject string) string { return "user#" + subject }

// DynamoAPI is the subset of the DynamoDB client used by this repository.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

type DynamoRepository struct {
	client DynamoAPI
	table  string
}

func NewDynamoRepository(client DynamoAPI, table string) *DynamoRepository {
	return &DynamoRepository{client: client, table: table}
}

func (r *DynamoRepository) Append(ctx context.Context, event *models.Event) error {
	item, err := attributevalue.MarshalMap(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	item["pk"] = &types.AttributeValueMemberS{Value: eventPK(event.Subject)}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("%w: put event: %v", common.ErrorStorage, err)
	}
	return nil
}

func (r *DynamoRepository) ListBySubject(ctx context.Context, subject string, since int64, limit int) ([]*models.Event, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		KeyConditionExpression: aws.String("pk = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: eventPK(subject)},
		},
		// Sort keys are timestamp-ordered; reading backwards yields
		// most-recent-first.
		ScanIndexForward: aws.Bool(false),
	}
	if since > 0 {
		input.FilterExpression = aws.String("ts > :since")
		input.ExpressionAttributeValues[":since"] = &types.AttributeValueMemberN{
			Value: fmt.Sprintf("%d", since),
		}
	}

	var result []*models.Event
	for {
		out, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("%w: query events: %v", common.ErrorStorage, err)
		}

		for _, item := range out.Items {
			event := &models.Event{}
			if err := attributevalue.UnmarshalMap(item, event); err != nil {
				return nil, fmt.Errorf("unmarshal event: %w", err)
			}
			event.Subject = subject
			result = append(result, event)
			if limit > 0 && len(result) == limit {
				return result, nil
			}
		}

		if out.LastEvaluatedKey == nil {
			return result, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}
