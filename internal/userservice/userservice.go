// userservice.go
package userservice

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/khushi71103/travelpin/internal/auth"
	"github.com/khushi71103/travelpin/internal/credentials"
	"github.com/khushi71103/travelpin/internal/interfaces"
	"github.com/khushi71103/travelpin/internal/models"
	"github.com/khushi71103/travelpin/internal/models/dto"
	"github.com/khushi71103/travelpin/pkg/helper"
)

var (
	// ErrDuplicateAccount is returned by Register when the username or email
	// is already taken. The message does not reveal which field collided.
	ErrDuplicateAccount = errors.New(ErrMsgDuplicateAccount)
	// ErrAccountNotFound is returned by Login for an unknown username.
	ErrAccountNotFound = errors.New(ErrMsgAccountNotFound)
	// ErrInvalidCredentials is returned by Login on a password mismatch.
	ErrInvalidCredentials = errors.New(ErrMsgInvalidCredentials)
)

// UserService implements registration, login and user listing over a
// UserRepository. Tokens are signed with the process-wide private key.
type UserService struct {
	UserRepo   interfaces.UserRepository
	PrivateKey *ecdsa.PrivateKey
	Logger     interfaces.Logger
}

// NewUserService creates a new UserService instance.
func NewUserService(repo interfaces.UserRepository, privateKey *ecdsa.PrivateKey, logger interfaces.Logger) *UserService {
	return &UserService{
		UserRepo:   repo,
		PrivateKey: privateKey,
		Logger:     logger,
	}
}

// Register creates a new account: probes the store for a username or email
// collision, hashes the password, persists the user and issues a bearer
// token for the new id.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*dto.AuthPayloadDTO, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "user", username)
	s.Logger.Info("Registering user", "func", funcName, "user", username)

	existing, err := s.UserRepo.GetUserByUsernameOrEmail(ctx, username, email)
	if err != nil {
		s.Logger.Error(ErrRetrievingUser, "func", funcName, "user", username, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingUser, err)
	}
	if existing != nil {
		s.Logger.Warn(ErrMsgDuplicateAccount, "func", funcName, "user", username)
		return nil, ErrDuplicateAccount
	}

	hashedPassword, err := credentials.Hash(password)
	if err != nil {
		s.Logger.Error(ErrFailedToHashPassword, "func", funcName, "user", username, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToHashPassword, err)
	}

	user := models.NewUser(username, email, hashedPassword)

	userID, err := s.UserRepo.AddUser(ctx, *user)
	if err != nil {
		// The unique indices on username/email close the window between the
		// probe above and this insert: a concurrent duplicate lands here.
		if isDuplicateKey(err) {
			s.Logger.Warn(ErrMsgDuplicateAccount, "func", funcName, "user", username)
			return nil, ErrDuplicateAccount
		}
		s.Logger.Error(ErrFailedToRegisterUser, "func", funcName, "user", username, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToRegisterUser, err)
	}
	user.ID = userID

	token, err := auth.CreateToken(userID, s.PrivateKey)
	if err != nil {
		s.Logger.Error(ErrFailedToIssueToken, "func", funcName, "user", username, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToIssueToken, err)
	}

	s.Logger.Info("User registered successfully", "func", funcName, "user", username, "ID", userID)
	s.Logger.Debug("Exiting function", "func", funcName, "user", username)
	return &dto.AuthPayloadDTO{Token: token, User: user.Public()}, nil
}

// Login verifies a user's credentials and issues a bearer token.
func (s *UserService) Login(ctx context.Context, username, password string) (*dto.AuthPayloadDTO, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "user", username)

	user, err := s.UserRepo.GetUserByUsername(ctx, username)
	if err != nil {
		s.Logger.Error(ErrRetrievingUser, "func", funcName, "user", username, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingUser, err)
	}
	if user == nil {
		s.Logger.Warn(ErrMsgAccountNotFound, "func", funcName, "user", username)
		return nil, ErrAccountNotFound
	}

	match, err := credentials.Verify(password, user.PasswordHash)
	if err != nil {
		s.Logger.Error("stored credential could not be verified", "func", funcName, "user", username, "error", err)
		return nil, err
	}
	if !match {
		s.Logger.Warn(ErrMsgInvalidCredentials, "func", funcName, "user", username)
		return nil, ErrInvalidCredentials
	}

	token, err := auth.CreateToken(user.ID, s.PrivateKey)
	if err != nil {
		s.Logger.Error(ErrFailedToIssueToken, "func", funcName, "user", username, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToIssueToken, err)
	}

	s.Logger.Info("User authenticated successfully", "func", funcName, "user", username)
	s.Logger.Debug("Exiting function", "func", funcName, "user", username)
	return &dto.AuthPayloadDTO{Token: token, User: user.Public()}, nil
}

// ListUsers returns every account, password hashes cleared.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName)

	users, err := s.UserRepo.GetAllUsers(ctx)
	if err != nil {
		s.Logger.Error(ErrListingUsers, "func", funcName, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrListingUsers, err)
	}

	public := make([]models.User, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}
	return public, nil
}

// isDuplicateKey recognizes a unique-constraint violation surfaced by a
// repository.
func isDuplicateKey(err error) bool {
	return errors.Is(err, interfaces.ErrDuplicateKey)
}
