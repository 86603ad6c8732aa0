package constants

const (
	// UsersCollection is the collection/table holding account records.
	UsersCollection = "users"
)
