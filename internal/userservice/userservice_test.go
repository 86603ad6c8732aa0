package userservice

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khushi71103/travelpin/internal/auth"
	"github.com/khushi71103/travelpin/internal/credentials"
	"github.com/khushi71103/travelpin/internal/interfaces"
	"github.com/khushi71103/travelpin/internal/interfaces/mocks"
	"github.com/khushi71103/travelpin/internal/models"
	"github.com/khushi71103/travelpin/pkg/zerolog"
)

var (
	testPrivateKey *ecdsa.PrivateKey
	testLogger     interfaces.Logger
)

func TestMain(m *testing.M) {
	var err error
	testPrivateKey, err = ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		fmt.Printf("failed to generate ECDSA key: %v\n", err)
		os.Exit(1)
	}
	testLogger = zerolog.NewZerologLogger("userservice-test")

	os.Exit(m.Run())
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful registration returns verifiable token", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(t)
		userRepo.On("GetUserByUsernameOrEmail", mock.Anything, "alice", "alice@x.com").
			Return(nil, nil)
		userRepo.On("AddUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
			if u.Username != "alice" || u.Email != "alice@x.com" {
				return false
			}
			// The stored credential must be a hash of the password, not the
			// password itself.
			match, err := credentials.Verify("pw123", u.PasswordHash)
			return err == nil && match
		})).Return("64f1c2e8a1b2c3d4e5f60718", nil)

		svc := NewUserService(userRepo, testPrivateKey, testLogger)

		payload, err := svc.Register(ctx, "alice", "alice@x.com", "pw123")
		require.NoError(t, err)
		require.NotNil(t, payload)

		assert.Equal(t, "64f1c2e8a1b2c3d4e5f60718", payload.User.ID)
		assert.Equal(t, "alice", payload.User.Username)
		assert.Empty(t, payload.User.PasswordHash, "hash must not leave the service")

		claims, err := auth.VerifyToken(payload.Token, &testPrivateKey.PublicKey)
		require.NoError(t, err)
		assert.Equal(t, "64f1c2e8a1b2c3d4e5f60718", claims.UserID)
	})

	t.Run("Duplicate username fails without an insert", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(t)
		userRepo.On("GetUserByUsernameOrEmail", mock.Anything, "alice", "other@x.com").
			Return(&models.User{ID: "existing", Username: "alice"}, nil)

		svc := NewUserService(userRepo, testPrivateKey, testLogger)

		payload, err := svc.Register(ctx, "alice", "other@x.com", "pw456")
		assert.Nil(t, payload)
		assert.ErrorIs(t, err, ErrDuplicateAccount)
	})

	t.Run("Duplicate email fails without an insert", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(t)
		userRepo.On("GetUserByUsernameOrEmail", mock.Anything, "bob", "alice@x.com").
			Return(&models.User{ID: "existing", Email: "alice@x.com"}, nil)

		svc := NewUserService(userRepo, testPrivateKey, testLogger)

		_, err := svc.Register(ctx, "bob", "alice@x.com", "pw456")
		assert.ErrorIs(t, err, ErrDuplicateAccount)
	})

	t.Run("Unique index violation on insert maps to duplicate account", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(t)
		userRepo.On("GetUserByUsernameOrEmail", mock.Anything, "carol", "carol@x.com").
			Return(nil, nil)
		userRepo.On("AddUser", mock.Anything, mock.AnythingOfType("models.User")).
			Return("", fmt.Errorf("%w: E11000 duplicate key error", interfaces.ErrDuplicateKey))

		svc := NewUserService(userRepo, testPrivateKey, testLogger)

		_, err := svc.Register(ctx, "carol", "carol@x.com", "pw789")
		assert.ErrorIs(t, err, ErrDuplicateAccount)
	})

	t.Run("Repository failure surfaces", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(t)
		userRepo.On("GetUserByUsernameOrEmail", mock.Anything, "dave", "dave@x.com").
			Return(nil, errors.New("connection reset"))

		svc := NewUserService(userRepo, testPrivateKey, testLogger)

		_, err := svc.Register(ctx, "dave", "dave@x.com", "pw")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrDuplicateAccount)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()

	hashed, err := credentials.Hash("pw123")
	require.NoError(t, err)
	storedUser := &models.User{
		ID:           "64f1c2e8a1b2c3d4e5f60718",
		Username:     "alice",
		Email:        "alice@x.com",
		PasswordHash: hashed,
	}

	t.Run("Successful login returns verifiable token", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(t)
		userRepo.On("GetUserByUsername", mock.Anything, "alice").Return(storedUser, nil)

		svc := NewUserService(userRepo, testPrivateKey, testLogger)

		payload, err := svc.Login(ctx, "alice", "pw123")
		require.NoError(t, err)
		assert.Empty(t, payload.User.PasswordHash)

		claims, err := auth.VerifyToken(payload.Token, &testPrivateKey.PublicKey)
		require.NoError(t, err)
		assert.Equal(t, storedUser.ID, claims.UserID)
	})

	t.Run("Wrong password fails with invalid credentials", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(t)
		userRepo.On("GetUserByUsername", mock.Anything, "alice").Return(storedUser, nil)

		svc := NewUserService(userRepo, testPrivateKey, testLogger)

		_, err := svc.Login(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown username fails with account not found", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(t)
		userRepo.On("GetUserByUsername", mock.Anything, "nobody").Return(nil, nil)

		svc := NewUserService(userRepo, testPrivateKey, testLogger)

		_, err := svc.Login(ctx, "nobody", "pw123")
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("Corrupt stored hash surfaces as corrupt credential", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(t)
		userRepo.On("GetUserByUsername", mock.Anything, "mallory").Return(&models.User{
			ID:           "id",
			Username:     "mallory",
			PasswordHash: "garbage",
		}, nil)

		svc := NewUserService(userRepo, testPrivateKey, testLogger)

		_, err := svc.Login(ctx, "mallory", "pw")
		assert.ErrorIs(t, err, credentials.ErrCorruptCredential)
	})
}

func TestUserService_ListUsers(t *testing.T) {
	ctx := context.Background()

	userRepo := mocks.NewMockUserRepository(t)
	userRepo.On("GetAllUsers", mock.Anything).Return([]models.User{
		{ID: "1", Username: "alice", Email: "alice@x.com", PasswordHash: "secret-hash"},
		{ID: "2", Username: "bob", Email: "bob@x.com", PasswordHash: "secret-hash"},
	}, nil)

	svc := NewUserService(userRepo, testPrivateKey, testLogger)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.PasswordHash, "outward projection must exclude the hash")
	}
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
}

// Scenario from the product contract: register, duplicate register, login,
// wrong-password login.
func TestUserService_RegisterLoginScenario(t *testing.T) {
	ctx := context.Background()

	userRepo := mocks.NewMockUserRepository(t)
	svc := NewUserService(userRepo, testPrivateKey, testLogger)

	var storedHash string
	userRepo.On("GetUserByUsernameOrEmail", mock.Anything, "alice", "alice@x.com").
		Return(nil, nil).Once()
	userRepo.On("AddUser", mock.Anything, mock.AnythingOfType("models.User")).
		Run(func(args mock.Arguments) {
			storedHash = args.Get(1).(models.User).PasswordHash
		}).
		Return("id-alice", nil).Once()

	payload, err := svc.Register(ctx, "alice", "alice@x.com", "pw123")
	require.NoError(t, err)
	require.NotEmpty(t, payload.Token)

	userRepo.On("GetUserByUsernameOrEmail", mock.Anything, "alice", "other@x.com").
		Return(&models.User{ID: "id-alice", Username: "alice"}, nil).Once()

	_, err = svc.Register(ctx, "alice", "other@x.com", "pw456")
	assert.ErrorIs(t, err, ErrDuplicateAccount)

	registered := &models.User{ID: "id-alice", Username: "alice", Email: "alice@x.com", PasswordHash: storedHash}
	userRepo.On("GetUserByUsername", mock.Anything, "alice").Return(registered, nil)

	loginPayload, err := svc.Login(ctx, "alice", "pw123")
	require.NoError(t, err)
	assert.NotEmpty(t, loginPayload.Token)

	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
