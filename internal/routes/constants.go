package routes

var (
	AddUserDurationSecondsBuckets = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	LoginDurationSecondsBuckets   = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	AddPinDurationSecondsBuckets  = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
)

const (
	// API route constants
	GraphQLRouteAPI = "/graphql"
	MetricsRouteAPI = "/metrics"

	// Content-Type constants
	ContentType     = "Content-Type"
	ContentTypeJson = "application/json"

	// GraphQL operation names
	OpGetUsers = "getUsers"
	OpGetPins  = "getPins"
	OpAddUser  = "addUser"
	OpLogin    = "login"
	OpAddPin   = "addPin"

	// Error messages
	ErrMethodNotAllowed       = "method not allowed"
	ErrInvalidContentType     = "content-Type must be application/json"
	ErrInvalidRequestBody     = "invalid request body"
	ErrValidationFailed       = "data validation failed"
	ErrFailedToEncodeResponse = "failed to encode response"

	// metrics constants
	GraphQLRequestsTotal      = "graphql_requests_total"
	GraphQLRequestsTotalHelp  = "Total number of GraphQL requests received"
	GraphQLErrorsTotal        = "graphql_errors_total"
	GraphQLErrorsTotalHelp    = "Total number of GraphQL requests that produced errors"
	AddUserRequestsTotal      = "add_user_requests_total"
	AddUserRequestsTotalHelp  = "Total number of addUser mutations received"
	AddUserSuccessTotal       = "add_user_success_total"
	AddUserSuccessTotalHelp   = "Total number of successful addUser mutations"
	AddUserErrorsTotal        = "add_user_errors_total"
	AddUserErrorsTotalHelp    = "Total number of failed addUser mutations"
	AddUserDurationSeconds    = "add_user_duration_seconds"
	AddUserDurationHelp       = "Duration of addUser mutations in seconds"
	LoginRequestsTotal        = "login_requests_total"
	LoginRequestsTotalHelp    = "Total number of login mutations received"
	LoginSuccessTotal         = "login_success_total"
	LoginSuccessTotalHelp     = "Total number of successful login mutations"
	LoginFailedTotal          = "login_failed_total"
	LoginFailedTotalHelp      = "Total number of failed login mutations"
	LoginDurationSeconds      = "login_duration_seconds"
	LoginDurationSecondsHelp  = "Duration of login mutations in seconds"
	AddPinRequestsTotal       = "add_pin_requests_total"
	AddPinRequestsTotalHelp   = "Total number of addPin mutations received"
	AddPinSuccessTotal        = "add_pin_success_total"
	AddPinSuccessTotalHelp    = "Total number of successful addPin mutations"
	AddPinErrorsTotal         = "add_pin_errors_total"
	AddPinErrorsTotalHelp     = "Total number of failed addPin mutations"
	AddPinDurationSeconds     = "add_pin_duration_seconds"
	AddPinDurationSecondsHelp = "Duration of addPin mutations in seconds"
)
