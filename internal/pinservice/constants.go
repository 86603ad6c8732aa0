package pinservice

const (
	// Error messages for pin service operations
	ErrFailedToCreatePin = "failed to create pin"
	ErrListingPins       = "error listing pins"
)
