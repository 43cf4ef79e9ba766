package store

// DefaultTableName is the table the grocery handlers have always used.
const DefaultTableName = "groceries"

// Config holds configuration for the Store.
type Config struct {
	// TableName is the DynamoDB table holding grocery items.
	// The table must have "listId" (S) as hash key and "groceryId" (S) as range key.
	// Default: "groceries"
	TableName string
}

// DefaultConfig returns the configuration used by the deployed handlers.
func DefaultConfig() Config {
	return Config{
		TableName: DefaultTableName,
	}
}

// validate fills in defaults for empty values.
func (c *Config) validate() {
	if c.TableName == "" {
		c.TableName = DefaultTableName
	}
}
