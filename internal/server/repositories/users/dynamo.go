package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/schoolcloud/identity/internal/common"
	"github.com/schoolcloud/identity/internal/server/models"
)

// User records live under (pk = "user#"+email, sk = "meta").
const metaSortKey = "meta"

func userPK(email string) string { return "user#" + email }

// DynamoAPI is the subset of the DynamoDB client used by this repository.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

type DynamoRepository struct {
	client DynamoAPI
	table  string
}

func NewDynamoRepository(client DynamoAPI, table string) *DynamoRepository {
	return &DynamoRepository{client: client, table: table}
}

func (r *DynamoRepository) key(email string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: userPK(email)},
		"sk": &types.AttributeValueMemberS{Value: metaSortKey},
	}
}

func (r *DynamoRepository) Create(ctx context.Context, user *models.User) error {
	item, err := attributevalue.MarshalMap(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	item["pk"] = &types.AttributeValueMemberS{Value: userPK(user.Email)}
	item["sk"] = &types.AttributeValueMemberS{Value: metaSortKey}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(pk)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("%w: put user: %v", common.ErrorStorage, err)
	}
	return nil
}

func (r *DynamoRepository) Get(ctx context.Context, email string) (*models.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       r.key(email),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get user: %v", common.ErrorStorage, err)
	}
	if len(out.Item) == 0 {
		return nil, common.ErrorNotFound
	}

	user := &models.User{}
	if err := attributevalue.UnmarshalMap(out.Item, user); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return user, nil
}

func (r *DynamoRepository) UpdateRole(ctx context.Context, email string, role models.Role) error {
	// "role" is a DynamoDB reserved word; it has to go through an
	// expression attribute name.
	return r.update(ctx, email, "SET #r = :v",
		map[string]string{"#r": "role"},
		map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: role.String()}},
	)
}

func (r *DynamoRepository) UpdateEncryption(ctx context.Context, email, policy string) error {
	return r.update(ctx, email, "SET enc = :v",
		nil,
		map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: policy}},
	)
}

func (r *DynamoRepository) update(ctx context.Context, email, expr string, names map[string]string, values map[string]types.AttributeValue) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       r.key(email),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ConditionExpression:       aws.String("attribute_exists(pk)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("%w: update user: %v", common.ErrorStorage, err)
	}
	return nil
}
