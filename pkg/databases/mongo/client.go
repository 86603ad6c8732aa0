package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/khushi71103/travelpin/config"
	"github.com/khushi71103/travelpin/internal/interfaces"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	MAXPOOLSIZE = 20
	IDFIELD     = "_id"
	ORFIELD     = "$or"
)

// MongoDBClient implements the interfaces.DBClient interface for MongoDB.
// Collection and field names are checked against configured allow-lists
// before any operation touches the database.
type MongoDBClient struct {
	ServerOpts       *options.ServerAPIOptions
	client           *mongo.Client
	db               *mongo.Database
	timeout          time.Duration
	logger           interfaces.Logger
	validCollections map[string]bool
	validFields      map[string]bool
}

// NewMongoDB returns an interface for the db client.
func NewMongoDB(dbConfig *config.MongoDBConfig, logger interfaces.Logger) (interfaces.DBClient, error) {
	db := &MongoDBClient{
		timeout:          dbConfig.Timeout,
		ServerOpts:       config.BuildServerAPIOptions(dbConfig.Options),
		logger:           logger,
		validCollections: config.ListToMap(dbConfig.ValidCollections),
		validFields:      config.ListToMap(dbConfig.ValidFields),
	}

	return db, nil
}

// Connect establishes a connection to the MongoDB database using the provided
// DSN and selects the database named in the DSN path, e.g.
// "mongodb://<host>:<port>/<database>".
func (m *MongoDBClient) Connect(ctx context.Context, dsn string) error {
	if dsn == "" {
		return fmt.Errorf("MongoDBClient: DSN is empty")
	}
	if !strings.HasPrefix(dsn, "mongodb://") && !strings.HasPrefix(dsn, "mongodb+srv://") {
		return fmt.Errorf("MongoDBClient: invalid DSN format, expected 'mongodb://' or 'mongodb+srv://'")
	}

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	clientOptions := options.Client().ApplyURI(dsn)
	if m.ServerOpts != nil {
		clientOptions.SetServerAPIOptions(m.ServerOpts)
	}
	clientOptions.SetMaxPoolSize(MAXPOOLSIZE)
	clientOptions.SetReadPreference(readpref.PrimaryPreferred())

	var err error
	m.client, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		return err
	}

	if err = m.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("MongoDBClient: failed to connect to MongoDB server: %v", err)
	}

	databaseName, err := m.getDBNameFromMongoDSN(dsn)
	if err != nil {
		return fmt.Errorf("MongoDBClient: failed to extract database name from dsn: %v", err)
	}

	m.db = m.client.Database(databaseName)
	m.logger.Info("Connected to MongoDB", "database", databaseName)
	return nil
}

// Disconnect closes the connection to the MongoDB database.
func (m *MongoDBClient) Disconnect(ctx context.Context) error {
	if m.client != nil {
		return m.client.Disconnect(ctx)
	}

	return nil
}

// InsertOne inserts a document and returns its ID.
func (m *MongoDBClient) InsertOne(ctx context.Context, collectionName string, document interfaces.Document) (interface{}, error) {
	if !m.validCollections[collectionName] {
		return nil, fmt.Errorf("MongoDBClient: invalid collection name: %s", collectionName)
	}

	sanitizedDocument, err := m.sanitizeDocument(document)
	if err != nil {
		return nil, err
	}

	res, err := m.db.Collection(collectionName).InsertOne(ctx, sanitizedDocument)
	if err != nil {
		return nil, fmt.Errorf("MongoDBClient: failed to insert one into %s: %w", collectionName, err)
	}

	return res.InsertedID, nil
}

// FindOne retrieves a single document from the specified collection using a
// filter and decodes it into result. Returns mongo.ErrNoDocuments unwrapped
// so repositories can map it to a not-found.
func (m *MongoDBClient) FindOne(ctx context.Context, collectionName string, filter interfaces.Document, result interfaces.Document) error {
	if !m.validCollections[collectionName] {
		return fmt.Errorf("MongoDBClient: invalid collection name: %s", collectionName)
	}

	sanitizedFilter, err := m.sanitizeFilter(filter)
	if err != nil {
		return err
	}

	err = m.db.Collection(collectionName).FindOne(ctx, sanitizedFilter).Decode(result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return err
		}
		return fmt.Errorf("MongoDBClient: failed to find one in %s: %v", collectionName, err)
	}

	return nil
}

// FindMany retrieves all documents matching the filter. Each document comes
// back as a map for the caller to decode into its model type.
func (m *MongoDBClient) FindMany(ctx context.Context, collectionName string, filter interfaces.Document) ([]interfaces.Document, error) {
	if !m.validCollections[collectionName] {
		return nil, fmt.Errorf("MongoDBClient: invalid collection name: %s", collectionName)
	}

	sanitizedFilter, err := m.sanitizeFilter(filter)
	if err != nil {
		return nil, err
	}

	cursor, err := m.db.Collection(collectionName).Find(ctx, sanitizedFilter)
	if err != nil {
		return nil, fmt.Errorf("MongoDBClient: finding many in %s failed: %v", collectionName, err)
	}

	defer func() {
		if err := cursor.Close(ctx); err != nil {
			m.logger.Warn("Failed to close cursor", "collection", collectionName, "error", err)
		}
	}()

	var results []interfaces.Document
	for cursor.Next(ctx) {
		var doc map[string]interface{}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("MongoDBClient: failed to decode cursor: %v", err)
		}
		results = append(results, doc)
	}

	return results, nil
}

// UpdateOne modifies a single document matching the filter.
func (m *MongoDBClient) UpdateOne(ctx context.Context, collectionName string, filter interfaces.Document, update interfaces.Document) (int64, error) {
	if !m.validCollections[collectionName] {
		return 0, fmt.Errorf("MongoDBClient: invalid collection name: %s", collectionName)
	}

	sanitizedFilter, err := m.sanitizeFilter(filter)
	if err != nil {
		return 0, err
	}
	sanitizedUpdate, err := m.sanitizeDocument(update)
	if err != nil {
		return 0, err
	}

	res, err := m.db.Collection(collectionName).UpdateOne(ctx, sanitizedFilter,
		map[string]interface{}{"$set": sanitizedUpdate})
	if err != nil {
		return 0, fmt.Errorf("MongoDBClient: failed updating one in %s: %v", collectionName, err)
	}

	return res.ModifiedCount, nil
}

// DeleteOne removes a single document matching the filter.
func (m *MongoDBClient) DeleteOne(ctx context.Context, collectionName string, filter interfaces.Document) (int64, error) {
	if !m.validCollections[collectionName] {
		return 0, fmt.Errorf("MongoDBClient: invalid collection name: %s", collectionName)
	}

	sanitizedFilter, err := m.sanitizeFilter(filter)
	if err != nil {
		return 0, err
	}

	res, err := m.db.Collection(collectionName).DeleteOne(ctx, sanitizedFilter)
	if err != nil {
		return 0, fmt.Errorf("MongoDBClient: failed deleting one from %s: %v", collectionName, err)
	}

	return res.DeletedCount, nil
}

// DeleteMany removes all documents matching the filter.
func (m *MongoDBClient) DeleteMany(ctx context.Context, collectionName string, filter interfaces.Document) (int64, error) {
	if !m.validCollections[collectionName] {
		return 0, fmt.Errorf("MongoDBClient: invalid collection name: %s", collectionName)
	}

	sanitizedFilter, err := m.sanitizeFilter(filter)
	if err != nil {
		return 0, err
	}

	res, err := m.db.Collection(collectionName).DeleteMany(ctx, sanitizedFilter)
	if err != nil {
		return 0, fmt.Errorf("MongoDBClient: failed deleting many from %s: %v", collectionName, err)
	}

	return res.DeletedCount, nil
}

// EnsureSchema creates the required index on the specified collection using
// the provided mongo.IndexModel. If the collection does not exist it is
// created automatically.
func (m *MongoDBClient) EnsureSchema(ctx context.Context, collectionName string, schema interfaces.Document) error {
	if m.db == nil {
		return fmt.Errorf("MongoDBClient is not connected to a database")
	}

	model, ok := schema.(mongo.IndexModel)
	if !ok {
		return fmt.Errorf("EnsureSchema: expected mongo.IndexModel for MongoDB")
	}

	_, err := m.db.Collection(collectionName).Indexes().CreateOne(ctx, model)
	return err
}

// Ping verifies the MongoDB connection health.
func (m *MongoDBClient) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

// getDBNameFromMongoDSN extracts the database name from a MongoDB DSN.
func (m *MongoDBClient) getDBNameFromMongoDSN(dsn string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("failed to parse MongoDB DSN: %w", err)
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("no database name found in MongoDB DSN path: %s", dsn)
	}

	// If the path contains additional segments, use only the first.
	if idx := strings.Index(dbName, "/"); idx != -1 {
		dbName = dbName[:idx]
	}

	return dbName, nil
}

// sanitizeDocument validates a document destined for a write. Documents must
// be maps; the _id field and any key outside the configured field allow-list
// (or containing '$'/'.') are rejected.
func (m *MongoDBClient) sanitizeDocument(document interfaces.Document) (map[string]interface{}, error) {
	docMap, ok := document.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("MongoDBClient: document must be a map[string]interface{}")
	}

	sanitized := make(map[string]interface{}, len(docMap))
	for key, value := range docMap {
		if key == IDFIELD {
			continue
		}
		if _, ok := m.validFields[key]; !ok || strings.ContainsAny(key, "$.") {
			return nil, fmt.Errorf("MongoDBClient: invalid or unsafe field name: %s", key)
		}
		sanitized[key] = value
	}

	return sanitized, nil
}

// sanitizeFilter validates a query filter. A filter is a document, except
// that a top-level $or holding a list of plain documents is allowed so
// callers can probe multiple fields in one query.
func (m *MongoDBClient) sanitizeFilter(filter interfaces.Document) (map[string]interface{}, error) {
	filterMap, ok := filter.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("MongoDBClient: filter must be a map[string]interface{}")
	}

	sanitized := make(map[string]interface{}, len(filterMap))
	for key, value := range filterMap {
		if key == ORFIELD {
			branches, ok := value.([]map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("MongoDBClient: $or filter must be a list of documents")
			}
			sanitizedBranches := make([]map[string]interface{}, 0, len(branches))
			for _, branch := range branches {
				sanitizedBranch, err := m.sanitizeDocument(branch)
				if err != nil {
					return nil, err
				}
				sanitizedBranches = append(sanitizedBranches, sanitizedBranch)
			}
			sanitized[key] = sanitizedBranches
			continue
		}

		if _, ok := m.validFields[key]; !ok || strings.ContainsAny(key, "$.") {
			return nil, fmt.Errorf("MongoDBClient: invalid or unsafe field name: %s", key)
		}
		sanitized[key] = value
	}

	return sanitized, nil
}
