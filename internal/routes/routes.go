package routes

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/khushi71103/travelpin/internal/interfaces"
	"github.com/khushi71103/travelpin/internal/models/dto"

	structValidator "github.com/go-playground/validator/v10"
)

// Route is the API gateway: it parses GraphQL requests off HTTP, dispatches
// named operations to the domain services through the schema, and writes the
// result envelope back. Domain error messages pass through unaltered.
type Route struct {
	Metrics     interfaces.Metrics
	UserService interfaces.UserService
	PinService  interfaces.PinService
	Logger      interfaces.Logger
	validator   *structValidator.Validate
	schema      graphql.Schema
}

// NewRoute creates a new Route instance with a compiled schema.
func NewRoute(metrics interfaces.Metrics, userService interfaces.UserService,
	pinService interfaces.PinService, logger interfaces.Logger,
	validator *structValidator.Validate,
) (*Route, error) {
	route := &Route{
		Metrics:     metrics,
		UserService: userService,
		PinService:  pinService,
		Logger:      logger,
		validator:   validator,
	}

	schema, err := route.buildSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to build schema: %w", err)
	}
	route.schema = schema

	return route, nil
}

// GraphQL handles POST /graphql requests.
func (r *Route) GraphQL(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		r.errorResponse(w, fmt.Errorf("method %s not allowed", req.Method), ErrMethodNotAllowed)
		return
	}

	if r.Metrics != nil {
		r.Metrics.IncCounter(GraphQLRequestsTotal)
	}

	if req.Header.Get(ContentType) != ContentTypeJson {
		w.WriteHeader(http.StatusBadRequest)
		r.errorResponse(w, fmt.Errorf("invalid content-type: %s", req.Header.Get(ContentType)), ErrInvalidContentType)
		if r.Metrics != nil {
			r.Metrics.IncCounter(GraphQLErrorsTotal)
		}
		return
	}

	gqlRequest := &dto.GraphQLRequestDTO{}
	err := json.NewDecoder(req.Body).Decode(gqlRequest)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		r.errorResponse(w, err, ErrInvalidRequestBody)
		if r.Metrics != nil {
			r.Metrics.IncCounter(GraphQLErrorsTotal)
		}
		return
	}

	if err := r.validator.Struct(gqlRequest); err != nil {
		// Validation failed, handle the error
		errors := err.(structValidator.ValidationErrors)
		w.WriteHeader(http.StatusBadRequest)
		r.errorResponse(w, fmt.Errorf("invalid graphql request: %s", errors), ErrValidationFailed)
		if r.Metrics != nil {
			r.Metrics.IncCounter(GraphQLErrorsTotal)
		}
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         r.schema,
		RequestString:  gqlRequest.Query,
		OperationName:  gqlRequest.OperationName,
		VariableValues: gqlRequest.Variables,
		Context:        req.Context(),
	})

	if len(result.Errors) > 0 {
		r.Logger.Warn("GraphQL request produced errors", "errors", result.Errors)
		if r.Metrics != nil {
			r.Metrics.IncCounter(GraphQLErrorsTotal)
		}
	}

	w.Header().Set(ContentType, ContentTypeJson)
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(result); err != nil {
		r.Logger.Error(ErrFailedToEncodeResponse, "error", err)
	}
}

func (r *Route) errorResponse(w http.ResponseWriter, err error, message string) {
	jsonResponse := map[string]string{
		"error":   err.Error(),
		"message": message,
	}
	_ = json.NewEncoder(w).Encode(jsonResponse)
}
