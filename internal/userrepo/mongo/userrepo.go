package mongo

import (
	"context"
	"fmt"
	"strings"

	"github.com/khushi71103/travelpin/internal/interfaces"
	"github.com/khushi71103/travelpin/internal/models"
	"github.com/khushi71103/travelpin/internal/userrepo/constants"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/go-viper/mapstructure/v2"
	mongoClient "github.com/khushi71103/travelpin/pkg/databases/mongo"
	mongosdk "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	MAXLENGTH_USERNAME = 64 // Maximum length for username
)

// mongoUser mirrors models.User with the driver's id type.
type mongoUser struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"`
}

func (u *mongoUser) toModel() *models.User {
	return &models.User{
		ID:           u.ID.Hex(),
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.Password,
	}
}

// MongoUserRepository implements UserRepository using the generic DBClient.
type MongoUserRepository struct {
	dbClient interfaces.DBClient
}

// NewMongoUserRepository creates a new MongoDB repository instance.
func NewMongoUserRepository(dbClient interfaces.DBClient) (interfaces.UserRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	// Ensure the dbClient is of type MongoDBClient
	if _, ok := dbClient.(*mongoClient.MongoDBClient); !ok {
		return nil, fmt.Errorf("dbClient must be a MongoDB client")
	}
	return &MongoUserRepository{dbClient: dbClient}, nil
}

// AddUser saves a new user and returns the hex of the generated ObjectID.
func (r *MongoUserRepository) AddUser(ctx context.Context, user models.User) (string, error) {
	doc := map[string]interface{}{
		"username": user.Username,
		"email":    user.Email,
		"password": user.PasswordHash,
	}

	insertedID, err := r.dbClient.InsertOne(ctx, constants.UsersCollection, doc)
	if err != nil {
		if mongosdk.IsDuplicateKeyError(err) { // unique index violation
			return "", fmt.Errorf("%w: %v", interfaces.ErrDuplicateKey, err)
		}
		return "", fmt.Errorf("failed to add user to MongoDB: %w", err)
	}

	objID, ok := insertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to assert inserted ID to ObjectID")
	}
	return objID.Hex(), nil
}

// GetUserByUsername retrieves a user by username, or (nil, nil) when absent.
func (r *MongoUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if len(username) == 0 || len(username) > MAXLENGTH_USERNAME {
		return nil, fmt.Errorf("invalid username: must be between 1 and %d characters", MAXLENGTH_USERNAME)
	}

	return r.findOne(ctx, map[string]interface{}{"username": username})
}

// GetUserByUsernameOrEmail retrieves any user whose username or email
// matches, or (nil, nil) when neither does.
func (r *MongoUserRepository) GetUserByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	filter := map[string]interface{}{
		"$or": []map[string]interface{}{
			{"username": username},
			{"email": email},
		},
	}
	return r.findOne(ctx, filter)
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter map[string]interface{}) (*models.User, error) {
	var u mongoUser
	err := r.dbClient.FindOne(ctx, constants.UsersCollection, filter, &u)
	if err != nil {
		if err == mongosdk.ErrNoDocuments || strings.Contains(err.Error(), mongosdk.ErrNoDocuments.Error()) {
			return nil, nil // not found
		}
		return nil, fmt.Errorf("failed to get user from MongoDB: %w", err)
	}
	if u.ID.IsZero() {
		return nil, nil
	}

	return u.toModel(), nil
}

// GetAllUsers returns every user record.
func (r *MongoUserRepository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	docs, err := r.dbClient.FindMany(ctx, constants.UsersCollection, map[string]interface{}{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users from MongoDB: %w", err)
	}

	users := make([]models.User, 0, len(docs))
	for _, doc := range docs {
		user, err := decodeUserDocument(doc)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}

// decodeUserDocument converts a raw document map into a models.User,
// rendering the ObjectID as hex.
func decodeUserDocument(doc interfaces.Document) (*models.User, error) {
	docMap, ok := doc.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected user document type %T", doc)
	}
	if objID, ok := docMap["_id"].(primitive.ObjectID); ok {
		docMap["_id"] = objID.Hex()
	}

	var user models.User
	if err := mapstructure.Decode(docMap, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user document: %w", err)
	}
	return &user, nil
}

// EnsureIndices creates the unique indices on username and email. These are
// what make concurrent registrations with the same name safe.
func (r *MongoUserRepository) EnsureIndices(ctx context.Context) error {
	for _, field := range []string{"username", "email"} {
		indexModel := mongosdk.IndexModel{
			Keys:    bson.M{field: 1},
			Options: options.Index().SetUnique(true),
		}
		if err := r.dbClient.EnsureSchema(ctx, constants.UsersCollection, indexModel); err != nil {
			return fmt.Errorf("failed to ensure %s index: %w", field, err)
		}
	}
	return nil
}

// Close disconnects the MongoDB client.
func (r *MongoUserRepository) Close(ctx context.Context) error {
	return r.dbClient.Disconnect(ctx)
}
