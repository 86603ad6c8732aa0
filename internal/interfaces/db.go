package interfaces

import "context"

// Document is a generic interface to represent data that can be stored
// and retrieved from the database. It could be a struct, a map[string]interface{},
// or any type that can be marshaled/unmarshaled by the specific database driver.
type Document interface{}

// DBClient defines the interface for a generic database client.
// It abstracts common database operations across different database types
// (MongoDB, SQL).
type DBClient interface {
	// Connect establishes a connection to the database.
	// It takes a context for cancellation and timeouts, and a DSN (Data Source Name) string.
	Connect(ctx context.Context, dsn string) error

	// Disconnect closes the database connection.
	Disconnect(ctx context.Context) error

	// InsertOne inserts a single document into the specified collection/table
	// and returns the ID assigned to it (MongoDB ObjectID, SQL primary key).
	InsertOne(ctx context.Context, collectionName string, document Document) (interface{}, error)

	// FindOne retrieves a single document matching the filter and decodes it
	// into result. Returns ErrNotFound semantics of the underlying driver when
	// no document matches.
	FindOne(ctx context.Context, collectionName string, filter Document, result Document) error

	// FindMany retrieves all documents matching the filter.
	FindMany(ctx context.Context, collectionName string, filter Document) ([]Document, error)

	// UpdateOne applies update to a single matching document and returns the
	// count of modified documents.
	UpdateOne(ctx context.Context, collectionName string, filter Document, update Document) (int64, error)

	// DeleteOne deletes a single matching document and returns the count of
	// deleted documents.
	DeleteOne(ctx context.Context, collectionName string, filter Document) (int64, error)

	// DeleteMany deletes all matching documents and returns the count of
	// deleted documents.
	DeleteMany(ctx context.Context, collectionName string, filter Document) (int64, error)

	// EnsureSchema applies a collection/table level constraint (an index
	// model for MongoDB, a CREATE TABLE for SQL).
	EnsureSchema(ctx context.Context, collectionName string, schema Document) error

	// Ping checks the health of the database connection.
	Ping(ctx context.Context) error
}
