package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/khushi71103/travelpin/internal/interfaces"
	"github.com/khushi71103/travelpin/internal/models"
	"github.com/khushi71103/travelpin/internal/pinrepo/constants"
	pgClient "github.com/khushi71103/travelpin/pkg/databases/postgres"
)

const createPinsTable = `
CREATE TABLE IF NOT EXISTS pins (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	"desc"     TEXT NOT NULL,
	rating     INTEGER NOT NULL,
	lat        DOUBLE PRECISION NOT NULL,
	long       DOUBLE PRECISION NOT NULL,
	username   TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`

// PostgresPinRepository implements PinRepository for PostgreSQL.
type PostgresPinRepository struct {
	dbClient interfaces.DBClient
}

// NewPostgresPinRepository creates a new PostgreSQL repository instance.
func NewPostgresPinRepository(dbClient interfaces.DBClient) (interfaces.PinRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	if _, ok := dbClient.(*pgClient.PostgresDatabaseClient); !ok {
		return nil, fmt.Errorf("dbClient must be a PostgreSQL client")
	}
	return &PostgresPinRepository{dbClient: dbClient}, nil
}

// AddPin saves a new pin and returns the generated id. Values are stored
// exactly as given.
func (r *PostgresPinRepository) AddPin(ctx context.Context, pin models.Pin) (string, error) {
	doc := map[string]interface{}{
		"title":      pin.Title,
		"desc":       pin.Desc,
		"rating":     pin.Rating,
		"lat":        pin.Lat,
		"long":       pin.Long,
		"username":   pin.Username,
		"created_at": pin.CreatedAt,
	}

	insertedID, err := r.dbClient.InsertOne(ctx, constants.PinsCollection, doc)
	if err != nil {
		return "", fmt.Errorf("failed to add pin to PostgreSQL: %w", err)
	}

	strID, ok := insertedID.(string)
	if !ok {
		return "", fmt.Errorf("failed to assert inserted ID to string (expected UUID)")
	}
	return strID, nil
}

// GetAllPins returns every pin record.
func (r *PostgresPinRepository) GetAllPins(ctx context.Context) ([]models.Pin, error) {
	rows, err := r.dbClient.FindMany(ctx, constants.PinsCollection, map[string]interface{}{})
	if err != nil {
		return nil, fmt.Errorf("failed to list pins from PostgreSQL: %w", err)
	}

	pins := make([]models.Pin, 0, len(rows))
	for _, row := range rows {
		rowMap, ok := row.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("unexpected pin row type %T", row)
		}
		pin, err := pinFromRow(rowMap)
		if err != nil {
			return nil, err
		}
		pins = append(pins, *pin)
	}
	return pins, nil
}

func pinFromRow(row map[string]interface{}) (*models.Pin, error) {
	pin := &models.Pin{}
	if v, ok := row["id"].(string); ok {
		pin.ID = v
	}
	if v, ok := row["title"].(string); ok {
		pin.Title = v
	}
	if v, ok := row["desc"].(string); ok {
		pin.Desc = v
	}
	switch v := row["rating"].(type) {
	case int64:
		pin.Rating = int(v)
	case int:
		pin.Rating = v
	}
	if v, ok := row["lat"].(float64); ok {
		pin.Lat = v
	}
	if v, ok := row["long"].(float64); ok {
		pin.Long = v
	}
	if v, ok := row["username"].(string); ok {
		pin.Username = v
	}
	switch v := row["created_at"].(type) {
	case time.Time:
		pin.CreatedAt = v.UTC()
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		pin.CreatedAt = t.UTC()
	}
	return pin, nil
}

// EnsureIndices creates the pins table.
func (r *PostgresPinRepository) EnsureIndices(ctx context.Context) error {
	return r.dbClient.EnsureSchema(ctx, constants.PinsCollection, createPinsTable)
}

// Close closes the PostgreSQL database connection.
func (r *PostgresPinRepository) Close(ctx context.Context) error {
	return r.dbClient.Disconnect(ctx)
}
