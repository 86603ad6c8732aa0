package constants

const (
	// PinsCollection is the collection/table holding pin records.
	PinsCollection = "pins"
)
