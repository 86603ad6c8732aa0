package models

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestNewUser(t *testing.T) {
	type args struct {
		username     string
		email        string
		passwordHash string
	}
	tests := []struct {
		name string
		args args
		want *User
	}{
		{
			name: "Create new user with all fields",
			args: args{
				username:     "testuser",
				email:        "testuser@example.com",
				passwordHash: "$2a$10$abcdefghijklmnopqrstuv",
			},
			want: &User{
				ID:           "", // left empty for the database to populate
				Username:     "testuser",
				Email:        "testuser@example.com",
				PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
			},
		},
		{
			name: "Create new user with empty fields",
			args: args{
				username:     "",
				email:        "",
				passwordHash: "",
			},
			want: &User{
				ID:           "",
				Username:     "",
				Email:        "",
				PasswordHash: "",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewUser(tt.args.username, tt.args.email, tt.args.passwordHash); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NewUser() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUser_Public(t *testing.T) {
	user := User{
		ID:           "abc123",
		Username:     "testuser",
		Email:        "testuser@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
	}

	got := user.Public()

	if got.PasswordHash != "" {
		t.Errorf("Public() PasswordHash = %q, want empty", got.PasswordHash)
	}
	if got.ID != user.ID || got.Username != user.Username || got.Email != user.Email {
		t.Errorf("Public() = %v, want all non-secret fields preserved from %v", got, user)
	}
	// Original must not be mutated.
	if user.PasswordHash == "" {
		t.Error("Public() mutated the receiver")
	}
}

func TestUser_JSONOmitsPasswordHash(t *testing.T) {
	user := User{
		ID:           "abc123",
		Username:     "testuser",
		Email:        "testuser@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
	}

	encoded, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if strings.Contains(string(encoded), user.PasswordHash) {
		t.Errorf("json.Marshal() leaked the password hash: %s", encoded)
	}
}
