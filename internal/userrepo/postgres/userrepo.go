package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/khushi71103/travelpin/internal/interfaces"
	"github.com/khushi71103/travelpin/internal/models"
	"github.com/khushi71103/travelpin/internal/userrepo/constants"
	pgClient "github.com/khushi71103/travelpin/pkg/databases/postgres"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id       TEXT PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	email    TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL
)`

// PostgresUserRepository implements UserRepository for PostgreSQL.
type PostgresUserRepository struct {
	dbClient interfaces.DBClient
}

// NewPostgresUserRepository creates a new PostgreSQL repository instance.
func NewPostgresUserRepository(dbClient interfaces.DBClient) (interfaces.UserRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	if _, ok := dbClient.(*pgClient.PostgresDatabaseClient); !ok {
		return nil, fmt.Errorf("dbClient must be a PostgreSQL client")
	}
	return &PostgresUserRepository{dbClient: dbClient}, nil
}

// AddUser saves a new user and returns the generated id.
func (r *PostgresUserRepository) AddUser(ctx context.Context, user models.User) (string, error) {
	doc := map[string]interface{}{
		"username": user.Username,
		"email":    user.Email,
		"password": user.PasswordHash,
	}

	insertedID, err := r.dbClient.InsertOne(ctx, constants.UsersCollection, doc)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return "", fmt.Errorf("%w: %v", interfaces.ErrDuplicateKey, err)
		}
		return "", fmt.Errorf("failed to add user to PostgreSQL: %w", err)
	}

	strID, ok := insertedID.(string)
	if !ok {
		return "", fmt.Errorf("failed to assert inserted ID to string (expected UUID)")
	}
	return strID, nil
}

// GetUserByUsername retrieves a user by username, or (nil, nil) when absent.
func (r *PostgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, map[string]interface{}{"username": username})
}

// GetUserByUsernameOrEmail retrieves any user whose username or email
// matches. The generic SQL client only ANDs filter fields, so this probes
// each field in turn.
func (r *PostgresUserRepository) GetUserByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	user, err := r.findOne(ctx, map[string]interface{}{"username": username})
	if err != nil || user != nil {
		return user, err
	}
	return r.findOne(ctx, map[string]interface{}{"email": email})
}

func (r *PostgresUserRepository) findOne(ctx context.Context, filter map[string]interface{}) (*models.User, error) {
	var row map[string]interface{}
	err := r.dbClient.FindOne(ctx, constants.UsersCollection, filter, &row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // not found
		}
		return nil, fmt.Errorf("failed to get user from PostgreSQL: %w", err)
	}

	return userFromRow(row), nil
}

// GetAllUsers returns every user record.
func (r *PostgresUserRepository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.dbClient.FindMany(ctx, constants.UsersCollection, map[string]interface{}{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users from PostgreSQL: %w", err)
	}

	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		rowMap, ok := row.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("unexpected user row type %T", row)
		}
		users = append(users, *userFromRow(rowMap))
	}
	return users, nil
}

func userFromRow(row map[string]interface{}) *models.User {
	user := &models.User{}
	if v, ok := row["id"].(string); ok {
		user.ID = v
	}
	if v, ok := row["username"].(string); ok {
		user.Username = v
	}
	if v, ok := row["email"].(string); ok {
		user.Email = v
	}
	if v, ok := row["password"].(string); ok {
		user.PasswordHash = v
	}
	return user
}

// EnsureIndices creates the users table with its unique constraints.
func (r *PostgresUserRepository) EnsureIndices(ctx context.Context) error {
	return r.dbClient.EnsureSchema(ctx, constants.UsersCollection, createUsersTable)
}

// Close closes the PostgreSQL database connection.
func (r *PostgresUserRepository) Close(ctx context.Context) error {
	return r.dbClient.Disconnect(ctx)
}
