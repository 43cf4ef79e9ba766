package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Client is the subset of the DynamoDB API used by the Store.
type Client interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

var _ Client = (*dynamodb.Client)(nil)

// Store issues grocery item operations against a single DynamoDB table.
// It holds no state besides the client and is safe for concurrent use.
type Store struct {
	client Client
	config Config
}

// New creates a new Store instance.
func New(client Client, config Config) *Store {
	config.validate()
	return &Store{
		client: client,
		config: config,
	}
}

// TableName returns the table the Store operates on.
func (s *Store) TableName() string {
	return s.config.TableName
}

// Put writes an item unconditionally, replacing any item with the same key.
func (s *Store) Put(ctx context.Context, item map[string]types.AttributeValue) (*dynamodb.PutItemOutput, error) {
	return s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.config.TableName),
		Item:      item,
	})
}

// QueryList returns the items of a list. Only the first result page is read;
// the output's LastEvaluatedKey is non-nil when more items exist.
func (s *Store) QueryList(ctx context.Context, listID string) (*dynamodb.QueryOutput, error) {
	return s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.config.TableName),
		KeyConditionExpression: aws.String("#listId = :listId"),
		ExpressionAttributeNames: map[string]string{
			"#listId": AttrListID,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":listId": &types.AttributeValueMemberS{Value: listID},
		},
	})
}

// Update sets the given attributes on the item at key and returns the item
// as it is after the update. No condition is applied: updating a missing key
// creates an item holding just the key and the set attributes.
func (s *Store) Update(ctx context.Context, key PK, set map[string]types.AttributeValue) (*dynamodb.UpdateItemOutput, error) {
	updateExpr, exprNames, exprValues := buildSetExpression(set)

	return s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.config.TableName),
		Key:                       key,
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeNames:  exprNames,
		ExpressionAttributeValues: exprValues,
		ReturnValues:              types.ReturnValueAllNew,
	})
}

// Delete removes the item at key. Deleting a missing key succeeds.
func (s *Store) Delete(ctx context.Context, key PK) (*dynamodb.DeleteItemOutput, error) {
	return s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.config.TableName),
		Key:       key,
	})
}

// BatchDelete removes all keys in one BatchWriteItem call.
// The keys are not chunked: DynamoDB rejects batches of more than 25 requests.
// Unprocessed keys are reported in the output and are not retried.
func (s *Store) BatchDelete(ctx context.Context, keys []PK) (*dynamodb.BatchWriteItemOutput, error) {
	if len(keys) == 0 {
		return nil, ErrEmptyBatch
	}

	requests := make([]types.WriteRequest, 0, len(keys))
	for _, key := range keys {
		requests = append(requests, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{Key: key},
		})
	}

	return s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
		RequestItems: map[string][]types.WriteRequest{
			s.config.TableName: requests,
		},
	})
}

// buildSetExpression builds a SET update expression with placeholder names
// and values. Attributes are emitted in name order so the expression is stable.
func buildSetExpression(set map[string]types.AttributeValue) (string, map[string]string, map[string]types.AttributeValue) {
	names := make([]string, 0, len(set))
	for k := range set {
		names = append(names, k)
	}
	sort.Strings(names)

	exprNames := make(map[string]string, len(names))
	exprValues := make(map[string]types.AttributeValue, len(names))
	setClauses := make([]string, 0, len(names))

	for i, k := range names {
		nameKey := fmt.Sprintf("#attr%d", i)
		valueKey := fmt.Sprintf(":val%d", i)
		exprNames[nameKey] = k
		exprValues[valueKey] = set[k]
		setClauses = append(setClauses, fmt.Sprintf("%s = %s", nameKey, valueKey))
	}

	return "SET " + strings.Join(setClauses, ", "), exprNames, exprValues
}
