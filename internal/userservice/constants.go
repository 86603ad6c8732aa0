package userservice

const (
	// Error messages for user service operations
	ErrMsgDuplicateAccount   = "username or email already exists"
	ErrMsgAccountNotFound    = "account not found"
	ErrMsgInvalidCredentials = "invalid credentials"

	ErrFailedToHashPassword = "failed to hash password" // #nosec G101
	ErrFailedToRegisterUser = "failed to register user"
	ErrFailedToIssueToken   = "failed to issue token"
	ErrRetrievingUser       = "error retrieving user"
	ErrListingUsers         = "error listing users"
)
