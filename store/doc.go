// Package store is the storage gateway for grocery list items.
//
// Every item lives in a single DynamoDB table keyed by the owning list
// ("listId", hash key) and the item identifier ("groceryId", range key).
// The gateway issues exactly one engine call per method and hands back the
// engine's native output. Engine errors are returned unchanged: the gateway
// does not retry, wrap, or reinterpret them.
//
// # Operations
//
//   - [Store.Put] - unconditional PutItem
//   - [Store.QueryList] - all items of a list, first result page only
//   - [Store.Update] - SET the given attributes, returning the new item
//   - [Store.Delete] - unconditional DeleteItem
//   - [Store.BatchDelete] - one BatchWriteItem of delete requests
//
// # Client
//
// [New] accepts any [Client]; *dynamodb.Client satisfies it:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	s := store.New(dynamodb.NewFromConfig(cfg), store.DefaultConfig())
//
// # Pagination
//
// QueryList and therefore the List and DeleteAll handlers read only the
// first page DynamoDB returns (up to 1 MB of items). Items beyond that page
// are not returned.
package store
