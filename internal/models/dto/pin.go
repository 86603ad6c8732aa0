package dto

// AddPinRequestDTO carries the addPin mutation arguments. Rating and the
// coordinates deliberately carry no bounds tags: the stored values are
// whatever the caller sent.
type AddPinRequestDTO struct {
	Title    string  `mapstructure:"title" validate:"required,min=1"`
	Desc     string  `mapstructure:"desc"`
	Rating   int     `mapstructure:"rating"`
	Lat      float64 `mapstructure:"lat"`
	Long     float64 `mapstructure:"long"`
	Username string  `mapstructure:"username" validate:"required,min=1,max=64"`
}

// GraphQLRequestDTO is the body of a POST /graphql request.
type GraphQLRequestDTO struct {
	Query         string         `json:"query" validate:"required"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}
