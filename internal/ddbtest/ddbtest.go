// Package ddbtest provides an in-memory stand-in for the DynamoDB operations
// used by the grocery store: PutItem, Query, UpdateItem, DeleteItem and
// BatchWriteItem.
//
// Only the expression forms the store emits are understood: a single
// equality key condition on the hash key, and SET update expressions with
// placeholder names and values. Query results are ordered by range key, the
// way DynamoDB orders string sort keys.
package ddbtest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

// Operation names accepted by Fail and Calls.
const (
	OpPutItem        = "PutItem"
	OpQuery          = "Query"
	OpUpdateItem     = "UpdateItem"
	OpDeleteItem     = "DeleteItem"
	OpBatchWriteItem = "BatchWriteItem"
)

// MaxBatchWrite is the DynamoDB limit on requests per BatchWriteItem call.
const MaxBatchWrite = 25

type item = map[string]types.AttributeValue

type table struct {
	hashKey  string
	rangeKey string
	items    map[string]item
}

// Client is an in-memory DynamoDB client. The zero value is not usable; use New.
type Client struct {
	mu       sync.Mutex
	tables   map[string]*table
	failures map[string]error
	calls    map[string]int
	inputs   map[string][]any

	// PageSize limits the number of items a Query returns, setting
	// LastEvaluatedKey when more remain. Zero means unlimited.
	PageSize int
}

// New creates a client with one table using the given hash and range key attributes.
func New(tableName, hashKey, rangeKey string) *Client {
	c := &Client{
		tables:   make(map[string]*table),
		failures: make(map[string]error),
		calls:    make(map[string]int),
		inputs:   make(map[string][]any),
	}
	c.CreateTable(tableName, hashKey, rangeKey)
	return c
}

// CreateTable adds an empty table.
func (c *Client) CreateTable(tableName, hashKey, rangeKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables[tableName] = &table{
		hashKey:  hashKey,
		rangeKey: rangeKey,
		items:    make(map[string]item),
	}
}

// Fail makes every subsequent call of op return err. A nil err clears the failure.
func (c *Client) Fail(op string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err == nil {
		delete(c.failures, op)
		return
	}
	c.failures[op] = err
}

// Calls returns how many times op was invoked, including failed calls.
func (c *Client) Calls(op string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[op]
}

// Inputs returns the inputs op was invoked with, in call order.
func (c *Client) Inputs(op string) []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]any(nil), c.inputs[op]...)
}

// Items returns a copy of every item in a table, ordered by hash then range key.
func (c *Client) Items(tableName string) []map[string]types.AttributeValue {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.tables[tableName]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(t.items))
	for k := range t.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	result := make([]map[string]types.AttributeValue, 0, len(keys))
	for _, k := range keys {
		result = append(result, copyItem(t.items[k]))
	}
	return result
}

// begin records the call and returns the injected failure, if any.
// Must be called with c.mu held.
func (c *Client) begin(op string, input any) error {
	c.calls[op]++
	c.inputs[op] = append(c.inputs[op], input)
	return c.failures[op]
}

func (c *Client) lookup(name *string) (*table, error) {
	if name == nil {
		return nil, validationError("TableName is required")
	}
	t, ok := c.tables[*name]
	if !ok {
		return nil, &types.ResourceNotFoundException{Message: stringPtr("Requested resource not found")}
	}
	return t, nil
}

// PutItem implements store.Client.
func (c *Client) PutItem(ctx context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.begin(OpPutItem, params); err != nil {
		return nil, err
	}
	t, err := c.lookup(params.TableName)
	if err != nil {
		return nil, err
	}
	k, err := t.keyOf(params.Item)
	if err != nil {
		return nil, err
	}
	t.items[k] = copyItem(params.Item)
	return &dynamodb.PutItemOutput{}, nil
}

// Query implements store.Client.
func (c *Client) Query(ctx context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.begin(OpQuery, params); err != nil {
		return nil, err
	}
	t, err := c.lookup(params.TableName)
	if err != nil {
		return nil, err
	}
	if params.KeyConditionExpression == nil {
		return nil, validationError("KeyConditionExpression is required")
	}

	name, placeholder, ok := strings.Cut(*params.KeyConditionExpression, " = ")
	if !ok {
		return nil, validationError("unsupported key condition: " + *params.KeyConditionExpression)
	}
	name = resolveName(strings.TrimSpace(name), params.ExpressionAttributeNames)
	if name != t.hashKey {
		return nil, validationError("query condition missed key schema element: " + t.hashKey)
	}
	want, ok := params.ExpressionAttributeValues[strings.TrimSpace(placeholder)].(*types.AttributeValueMemberS)
	if !ok {
		return nil, validationError("missing value for " + placeholder)
	}

	var matched []item
	for _, it := range t.items {
		if v, ok := it[t.hashKey].(*types.AttributeValueMemberS); ok && v.Value == want.Value {
			matched = append(matched, it)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return rangeValue(matched[i], t.rangeKey) < rangeValue(matched[j], t.rangeKey)
	})

	out := &dynamodb.QueryOutput{}
	if c.PageSize > 0 && len(matched) > c.PageSize {
		last := matched[c.PageSize-1]
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			t.hashKey:  last[t.hashKey],
			t.rangeKey: last[t.rangeKey],
		}
		matched = matched[:c.PageSize]
	}
	out.Items = make([]map[string]types.AttributeValue, 0, len(matched))
	for _, it := range matched {
		out.Items = append(out.Items, copyItem(it))
	}
	out.Count = int32(len(out.Items))
	out.ScannedCount = out.Count
	return out, nil
}

// UpdateItem implements store.Client. A missing item is created.
func (c *Client) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.begin(OpUpdateItem, params); err != nil {
		return nil, err
	}
	t, err := c.lookup(params.TableName)
	if err != nil {
		return nil, err
	}
	k, err := t.keyOf(params.Key)
	if err != nil {
		return nil, err
	}
	if params.UpdateExpression == nil {
		return nil, validationError("UpdateExpression is required")
	}
	assignments, err := parseSet(*params.UpdateExpression, params.ExpressionAttributeNames, params.ExpressionAttributeValues)
	if err != nil {
		return nil, err
	}
	for name := range assignments {
		if name == t.hashKey || name == t.rangeKey {
			return nil, validationError("cannot update attribute " + name + ". This attribute is part of the key")
		}
	}

	current, exists := t.items[k]
	if !exists {
		current = copyItem(params.Key)
	}
	old := copyItem(current)
	for name, v := range assignments {
		current[name] = v
	}
	t.items[k] = current

	out := &dynamodb.UpdateItemOutput{}
	switch params.ReturnValues {
	case types.ReturnValueAllNew:
		out.Attributes = copyItem(current)
	case types.ReturnValueAllOld:
		if exists {
			out.Attributes = old
		}
	}
	return out, nil
}

// DeleteItem implements store.Client. Deleting a missing item succeeds.
func (c *Client) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.begin(OpDeleteItem, params); err != nil {
		return nil, err
	}
	t, err := c.lookup(params.TableName)
	if err != nil {
		return nil, err
	}
	k, err := t.keyOf(params.Key)
	if err != nil {
		return nil, err
	}
	delete(t.items, k)
	return &dynamodb.DeleteItemOutput{}, nil
}

// BatchWriteItem implements store.Client. All requests are validated before any is applied.
func (c *Client) BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.begin(OpBatchWriteItem, params); err != nil {
		return nil, err
	}

	total := 0
	for _, reqs := range params.RequestItems {
		total += len(reqs)
	}
	if total == 0 {
		return nil, validationError("RequestItems must contain at least one request")
	}
	if total > MaxBatchWrite {
		return nil, validationError(fmt.Sprintf("too many items requested for the BatchWriteItem call: %d", total))
	}

	type op struct {
		t   *table
		key string
		put item
	}
	var ops []op
	for name, reqs := range params.RequestItems {
		t, err := c.lookup(&name)
		if err != nil {
			return nil, err
		}
		for _, req := range reqs {
			switch {
			case req.DeleteRequest != nil:
				k, err := t.keyOf(req.DeleteRequest.Key)
				if err != nil {
					return nil, err
				}
				ops = append(ops, op{t: t, key: k})
			case req.PutRequest != nil:
				k, err := t.keyOf(req.PutRequest.Item)
				if err != nil {
					return nil, err
				}
				ops = append(ops, op{t: t, key: k, put: req.PutRequest.Item})
			default:
				return nil, validationError("write request must contain a put or delete request")
			}
		}
	}

	for _, o := range ops {
		if o.put != nil {
			o.t.items[o.key] = copyItem(o.put)
		} else {
			delete(o.t.items, o.key)
		}
	}
	return &dynamodb.BatchWriteItemOutput{
		UnprocessedItems: map[string][]types.WriteRequest{},
	}, nil
}

// keyOf returns the storage key for an item, validating that both key
// attributes are non-empty strings.
func (t *table) keyOf(it item) (string, error) {
	h, ok := it[t.hashKey].(*types.AttributeValueMemberS)
	if !ok || h.Value == "" {
		return "", validationError("one or more parameter values were invalid: missing or empty key " + t.hashKey)
	}
	r, ok := it[t.rangeKey].(*types.AttributeValueMemberS)
	if !ok || r.Value == "" {
		return "", validationError("one or more parameter values were invalid: missing or empty key " + t.rangeKey)
	}
	return h.Value + "\x00" + r.Value, nil
}

// parseSet parses "SET a = :x, #b = :y" into attribute assignments.
func parseSet(expr string, names map[string]string, values map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	body, ok := strings.CutPrefix(strings.TrimSpace(expr), "SET ")
	if !ok {
		return nil, validationError("unsupported update expression: " + expr)
	}
	result := make(map[string]types.AttributeValue)
	for _, clause := range strings.Split(body, ",") {
		lhs, rhs, ok := strings.Cut(clause, "=")
		if !ok {
			return nil, validationError("invalid SET clause: " + clause)
		}
		name := resolveName(strings.TrimSpace(lhs), names)
		v, ok := values[strings.TrimSpace(rhs)]
		if !ok {
			return nil, validationError("undefined expression attribute value: " + strings.TrimSpace(rhs))
		}
		result[name] = v
	}
	return result, nil
}

func resolveName(name string, names map[string]string) string {
	if strings.HasPrefix(name, "#") {
		if resolved, ok := names[name]; ok {
			return resolved
		}
	}
	return name
}

func rangeValue(it item, rangeKey string) string {
	if v, ok := it[rangeKey].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func copyItem(it item) item {
	result := make(item, len(it))
	for k, v := range it {
		result[k] = v
	}
	return result
}

func validationError(msg string) error {
	return &smithy.GenericAPIError{Code: "ValidationException", Message: msg, Fault: smithy.FaultClient}
}

func stringPtr(s string) *string { return &s }
