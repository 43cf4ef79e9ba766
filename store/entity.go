package store

import (
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Attribute names of the grocery table.
const (
	AttrListID    = "listId"
	AttrGroceryID = "groceryId"
	AttrName      = "name"
	AttrChecked   = "checked"
	AttrCreatedAt = "createdAt"
)

// PK represents a DynamoDB primary key.
type PK map[string]types.AttributeValue

// ItemKey returns the primary key of the item identified by (listID, groceryID).
func ItemKey(listID, groceryID string) PK {
	return PK{
		AttrGroceryID: &types.AttributeValueMemberS{Value: groceryID},
		AttrListID:    &types.AttributeValueMemberS{Value: listID},
	}
}

// GroceryItem is a single entry of a grocery list.
type GroceryItem struct {
	// GroceryID identifies the item within its list. Time-ordered, never reused.
	GroceryID string `dynamodbav:"groceryId" json:"groceryId"`

	// ListID is the owning list.
	ListID string `dynamodbav:"listId" json:"listId"`

	// Name is the free-text item name.
	Name string `dynamodbav:"name" json:"name"`

	// CreatedAt is the creation time as Unix epoch milliseconds.
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`

	// Checked marks the item as done.
	Checked bool `dynamodbav:"checked" json:"checked"`
}

// Key returns the item's primary key.
func (g GroceryItem) Key() PK {
	return ItemKey(g.ListID, g.GroceryID)
}

// Summary is the projection of an item returned when listing.
type Summary struct {
	ID      string `dynamodbav:"groceryId" json:"id"`
	Name    string `dynamodbav:"name" json:"name"`
	Checked bool   `dynamodbav:"checked" json:"checked"`
}

// MarshalItem converts an item to its DynamoDB representation.
func MarshalItem(item GroceryItem) (map[string]types.AttributeValue, error) {
	return attributevalue.MarshalMap(item)
}

// UnmarshalItem converts a raw DynamoDB item into a GroceryItem.
// Missing attributes are left at their zero value.
func UnmarshalItem(raw map[string]types.AttributeValue) (GroceryItem, error) {
	var item GroceryItem
	if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
		return GroceryItem{}, err
	}
	return item, nil
}

// UnmarshalSummaries projects raw query results to summaries, preserving order.
func UnmarshalSummaries(raw []map[string]types.AttributeValue) ([]Summary, error) {
	summaries := make([]Summary, 0, len(raw))
	if err := attributevalue.UnmarshalListOfMaps(raw, &summaries); err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []Summary{}
	}
	return summaries, nil
}

// GroceryIDs extracts the range key of each raw item, preserving order.
// Items without a string groceryId are skipped.
func GroceryIDs(raw []map[string]types.AttributeValue) []string {
	ids := make([]string, 0, len(raw))
	for _, item := range raw {
		if v, ok := item[AttrGroceryID].(*types.AttributeValueMemberS); ok {
			ids = append(ids, v.Value)
		}
	}
	return ids
}
