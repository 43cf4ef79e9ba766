// Package handler provides the API Gateway Lambda handlers for grocery list items.
//
// Each handler maps one request to one storage call (DeleteAll: a query
// followed by one batch delete) and wraps the outcome in the response
// envelope. Storage errors are logged and returned as a failure envelope;
// the Go error returned to the Lambda runtime is always nil.
package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/groceries/internal/ident"
	"github.com/jacentio/groceries/store"
)

// Handler serves grocery item requests.
type Handler struct {
	store  *store.Store
	logger *slog.Logger

	newID func() (string, error)
	now   func() time.Time
}

// NewHandler creates a new request handler.
func NewHandler(s *store.Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:  s,
		logger: logger,
		newID:  ident.NewGroceryID,
		now:    time.Now,
	}
}

type createPayload struct {
	Item store.GroceryItem       `json:"item"`
	Res  *dynamodb.PutItemOutput `json:"res"`
}

type listPayload struct {
	Items []store.Summary `json:"items"`
}

type updatePayload struct {
	Item store.GroceryItem `json:"item"`
}

// Create adds an item to a list. Body: {"listId", "name"}.
func (h *Handler) Create(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	data, err := decodeBody(req)
	if err != nil {
		h.logger.Error("failed to decode create request", "error", err)
		return failed(err), nil
	}

	listID := data.stringField("listId")
	name := data.stringField("name")
	h.logger.Info("add request", "listId", listID, "name", name)

	groceryID, err := h.newID()
	if err != nil {
		h.logger.Error("failed to generate grocery id", "listId", listID, "error", err)
		return failed(err), nil
	}

	item := store.GroceryItem{
		GroceryID: groceryID,
		ListID:    listID,
		Name:      name,
		CreatedAt: ident.Timestamp(h.now()),
		Checked:   false,
	}

	raw, err := store.MarshalItem(item)
	if err != nil {
		h.logger.Error("failed to marshal item", "listId", listID, "groceryId", groceryID, "error", err)
		return failed(err), nil
	}

	res, err := h.store.Put(ctx, raw)
	if err != nil {
		h.logger.Error("failed to create item", "listId", listID, "groceryId", groceryID, "error", err)
		return failed(err), nil
	}

	return Success(createPayload{Item: item, Res: res}), nil
}

// List returns the items of the list named by the listId path parameter.
// Only the first page of the underlying query is returned.
func (h *Handler) List(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	listID := pathParam(req, "listId")
	h.logger.Info("list request", "listId", listID)

	res, err := h.store.QueryList(ctx, listID)
	if err != nil {
		h.logger.Error("failed to list items", "listId", listID, "error", err)
		return failed(err), nil
	}
	if res.LastEvaluatedKey != nil {
		h.logger.Warn("list truncated to first page", "listId", listID, "count", len(res.Items))
	}

	items, err := store.UnmarshalSummaries(res.Items)
	if err != nil {
		h.logger.Error("failed to unmarshal items", "listId", listID, "error", err)
		return failed(err), nil
	}

	return Success(listPayload{Items: items}), nil
}

// Update sets name and checked on an item. Body: {"id", "listId", "name", "checked"}.
// The item is not required to exist.
func (h *Handler) Update(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	data, err := decodeBody(req)
	if err != nil {
		h.logger.Error("failed to decode update request", "error", err)
		return failed(err), nil
	}

	groceryID := data.stringField("id")
	listID := data.stringField("listId")
	h.logger.Info("update request", "groceryId", groceryID, "listId", listID)

	res, err := h.store.Update(ctx, store.ItemKey(listID, groceryID), map[string]types.AttributeValue{
		store.AttrName:    &types.AttributeValueMemberS{Value: data.stringField("name")},
		store.AttrChecked: &types.AttributeValueMemberBOOL{Value: data.boolField("checked")},
	})
	if err != nil {
		h.logger.Error("failed to update item", "groceryId", groceryID, "listId", listID, "error", err)
		return failed(err), nil
	}

	item, err := store.UnmarshalItem(res.Attributes)
	if err != nil {
		h.logger.Error("failed to unmarshal item", "groceryId", groceryID, "listId", listID, "error", err)
		return failed(err), nil
	}

	return Success(updatePayload{Item: item}), nil
}

// Delete removes an item. Body: {"id", "listId"}. Succeeds whether or not the item existed.
func (h *Handler) Delete(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	data, err := decodeBody(req)
	if err != nil {
		h.logger.Error("failed to decode delete request", "error", err)
		return failed(err), nil
	}

	groceryID := data.stringField("id")
	listID := data.stringField("listId")
	h.logger.Info("delete request", "groceryId", groceryID, "listId", listID)

	if _, err := h.store.Delete(ctx, store.ItemKey(listID, groceryID)); err != nil {
		h.logger.Error("failed to delete item", "groceryId", groceryID, "listId", listID, "error", err)
		return failed(err), nil
	}

	return Success(statusPayload{Status: true}), nil
}

// DeleteAll removes every item of the list named by the listId path parameter.
// Items are read with one query and removed with one batch delete, which is
// skipped when the list is empty.
func (h *Handler) DeleteAll(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	listID := pathParam(req, "listId")
	h.logger.Info("clear request", "listId", listID)

	res, err := h.store.QueryList(ctx, listID)
	if err != nil {
		h.logger.Error("failed to query items for removal", "listId", listID, "error", err)
		return failed(err), nil
	}

	groceryIDs := store.GroceryIDs(res.Items)
	if len(groceryIDs) == 0 {
		return Success(statusPayload{Status: true}), nil
	}

	keys := make([]store.PK, 0, len(groceryIDs))
	for _, id := range groceryIDs {
		keys = append(keys, store.ItemKey(listID, id))
	}

	out, err := h.store.BatchDelete(ctx, keys)
	if err != nil {
		h.logger.Error("failed to remove items", "listId", listID, "count", len(keys), "error", err)
		return failed(err), nil
	}
	if unprocessed := len(out.UnprocessedItems[h.store.TableName()]); unprocessed > 0 {
		h.logger.Warn("batch delete left unprocessed items", "listId", listID, "unprocessed", unprocessed)
	}

	return Success(statusPayload{Status: true}), nil
}
