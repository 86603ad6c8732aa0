package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/khushi71103/travelpin/internal/interfaces"
	"github.com/khushi71103/travelpin/internal/models"
	"github.com/khushi71103/travelpin/internal/pinrepo/constants"

	"github.com/go-viper/mapstructure/v2"
	mongoClient "github.com/khushi71103/travelpin/pkg/databases/mongo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoPinRepository implements PinRepository using the generic DBClient.
type MongoPinRepository struct {
	dbClient interfaces.DBClient
}

// NewMongoPinRepository creates a new MongoDB repository instance.
func NewMongoPinRepository(dbClient interfaces.DBClient) (interfaces.PinRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	if _, ok := dbClient.(*mongoClient.MongoDBClient); !ok {
		return nil, fmt.Errorf("dbClient must be a MongoDB client")
	}
	return &MongoPinRepository{dbClient: dbClient}, nil
}

// AddPin saves a new pin and returns the hex of the generated ObjectID.
// Values are stored exactly as given; no bounds are applied here.
func (r *MongoPinRepository) AddPin(ctx context.Context, pin models.Pin) (string, error) {
	doc := map[string]interface{}{
		"title":     pin.Title,
		"desc":      pin.Desc,
		"rating":    pin.Rating,
		"lat":       pin.Lat,
		"long":      pin.Long,
		"username":  pin.Username,
		"createdAt": pin.CreatedAt,
	}

	insertedID, err := r.dbClient.InsertOne(ctx, constants.PinsCollection, doc)
	if err != nil {
		return "", fmt.Errorf("failed to add pin to MongoDB: %w", err)
	}

	objID, ok := insertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to assert inserted ID to ObjectID")
	}
	return objID.Hex(), nil
}

// GetAllPins returns every pin record.
func (r *MongoPinRepository) GetAllPins(ctx context.Context) ([]models.Pin, error) {
	docs, err := r.dbClient.FindMany(ctx, constants.PinsCollection, map[string]interface{}{})
	if err != nil {
		return nil, fmt.Errorf("failed to list pins from MongoDB: %w", err)
	}

	pins := make([]models.Pin, 0, len(docs))
	for _, doc := range docs {
		pin, err := decodePinDocument(doc)
		if err != nil {
			return nil, err
		}
		pins = append(pins, *pin)
	}
	return pins, nil
}

// decodePinDocument converts a raw document map into a models.Pin. The
// driver hands back ObjectIDs and DateTimes as its own types; both are
// normalized before decoding.
func decodePinDocument(doc interfaces.Document) (*models.Pin, error) {
	docMap, ok := doc.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected pin document type %T", doc)
	}
	if objID, ok := docMap["_id"].(primitive.ObjectID); ok {
		docMap["_id"] = objID.Hex()
	}
	if dt, ok := docMap["createdAt"].(primitive.DateTime); ok {
		docMap["createdAt"] = dt.Time().UTC()
	}

	var pin models.Pin
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &pin,
		DecodeHook: mapstructure.StringToTimeHookFunc(time.RFC3339),
		// Mongo stores small ints as int32/int64.
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(docMap); err != nil {
		return nil, fmt.Errorf("failed to decode pin document: %w", err)
	}
	return &pin, nil
}

// EnsureIndices is a no-op for pins; the collection has no unique keys.
func (r *MongoPinRepository) EnsureIndices(ctx context.Context) error {
	return nil
}

// Close disconnects the MongoDB client.
func (r *MongoPinRepository) Close(ctx context.Context) error {
	return r.dbClient.Disconnect(ctx)
}
