package store

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// --- buildSetExpression Tests ---

func TestBuildSetExpression_Single(t *testing.T) {
	expr, names, values := buildSetExpression(map[string]types.AttributeValue{
		"name": &types.AttributeValueMemberS{Value: "Milk"},
	})

	if expr != "SET #attr0 = :val0" {
		t.Errorf("expected 'SET #attr0 = :val0', got %q", expr)
	}
	if names["#attr0"] != "name" {
		t.Errorf("expected #attr0 -> name, got %q", names["#attr0"])
	}
	if v, ok := values[":val0"].(*types.AttributeValueMemberS); !ok || v.Value != "Milk" {
		t.Errorf("expected :val0 to be 'Milk', got %v", values[":val0"])
	}
}

func TestBuildSetExpression_SortedByName(t *testing.T) {
	expr, names, values := buildSetExpression(map[string]types.AttributeValue{
		"name":    &types.AttributeValueMemberS{Value: "Eggs"},
		"checked": &types.AttributeValueMemberBOOL{Value: true},
	})

	if expr != "SET #attr0 = :val0, #attr1 = :val1" {
		t.Errorf("unexpected expression %q", expr)
	}
	if names["#attr0"] != "checked" || names["#attr1"] != "name" {
		t.Errorf("expected names in sorted order, got %v", names)
	}
	if v, ok := values[":val0"].(*types.AttributeValueMemberBOOL); !ok || !v.Value {
		t.Errorf("expected :val0 to be true, got %v", values[":val0"])
	}
	if v, ok := values[":val1"].(*types.AttributeValueMemberS); !ok || v.Value != "Eggs" {
		t.Errorf("expected :val1 to be 'Eggs', got %v", values[":val1"])
	}
}

func TestBuildSetExpression_ReservedWordsUsePlaceholders(t *testing.T) {
	// "name" is a DynamoDB reserved word and may never appear literally.
	expr, _, _ := buildSetExpression(map[string]types.AttributeValue{
		"name": &types.AttributeValueMemberS{Value: "x"},
	})

	if expr != "SET #attr0 = :val0" {
		t.Errorf("expected placeholder-only expression, got %q", expr)
	}
}

func TestBuildSetExpression_Stable(t *testing.T) {
	set := map[string]types.AttributeValue{
		"a": &types.AttributeValueMemberS{Value: "1"},
		"b": &types.AttributeValueMemberS{Value: "2"},
		"c": &types.AttributeValueMemberS{Value: "3"},
	}

	first, _, _ := buildSetExpression(set)
	for i := 0; i < 20; i++ {
		expr, _, _ := buildSetExpression(set)
		if expr != first {
			t.Fatalf("expression changed between calls: %q vs %q", first, expr)
		}
	}
}

// --- Config Tests ---

func TestConfigValidate_EmptyTableName(t *testing.T) {
	cfg := Config{}
	cfg.validate()

	if cfg.TableName != DefaultTableName {
		t.Errorf("expected TableName %q, got %q", DefaultTableName, cfg.TableName)
	}
}

func TestConfigValidate_KeepsTableName(t *testing.T) {
	cfg := Config{TableName: "groceries-dev"}
	cfg.validate()

	if cfg.TableName != "groceries-dev" {
		t.Errorf("expected TableName 'groceries-dev', got %q", cfg.TableName)
	}
}
