package models

// User represents an account holder. PasswordHash is the bcrypt output
// produced at registration; it never leaves the service through the API.
type User struct {
	ID           string `bson:"_id,omitempty" mapstructure:"_id" db:"id" json:"id"`
	Username     string `bson:"username" mapstructure:"username" db:"username" json:"username"`
	Email        string `bson:"email" mapstructure:"email" db:"email" json:"email"`
	PasswordHash string `bson:"password" mapstructure:"password" db:"password" json:"-"`
}

// NewUser creates a new User instance with the given fields.
// Note: No validation is performed here.
func NewUser(username, email, passwordHash string) *User {
	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
}

// Public returns a copy of the user with the password hash cleared.
// Everything handed to the API boundary goes through this.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}
