package routes

import (
	"fmt"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/graphql-go/graphql"

	"github.com/khushi71103/travelpin/internal/models"
	"github.com/khushi71103/travelpin/internal/models/dto"
)

// buildSchema wires the five operations to the domain services. Argument
// non-null checks live in the schema itself; anything past them is decoded
// into a DTO and structurally validated before a service sees it.
func (r *Route) buildSchema() (graphql.Schema, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		// No password field is declared, and models.User clears the hash
		// before reaching a resolver. Both guards are intentional.
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"username": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	pinType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Pin",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"title":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"desc":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"rating":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"lat":      &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"long":     &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"username": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					pin, ok := p.Source.(models.Pin)
					if !ok {
						return nil, fmt.Errorf("unexpected pin source type %T", p.Source)
					}
					return pin.CreatedAt.Format(time.RFC3339), nil
				},
			},
		},
	})

	authPayloadType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"token": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"user":  &graphql.Field{Type: graphql.NewNonNull(userType)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			OpGetUsers: &graphql.Field{
				Type: graphql.NewList(userType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.UserService.ListUsers(p.Context)
				},
			},
			OpGetPins: &graphql.Field{
				Type: graphql.NewList(pinType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.PinService.ListPins(p.Context)
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			OpAddUser: &graphql.Field{
				Type: authPayloadType,
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveAddUser,
			},
			OpLogin: &graphql.Field{
				Type: authPayloadType,
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveLogin,
			},
			OpAddPin: &graphql.Field{
				Type: pinType,
				Args: graphql.FieldConfigArgument{
					"title":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"desc":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"rating":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"lat":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"long":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveAddPin,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

func (r *Route) resolveAddUser(p graphql.ResolveParams) (interface{}, error) {
	if r.Metrics != nil {
		r.Metrics.IncCounter(AddUserRequestsTotal)
	}
	startTime := time.Now()

	req := dto.RegisterRequestDTO{}
	if err := r.bindArgs(p.Args, &req); err != nil {
		if r.Metrics != nil {
			r.Metrics.IncCounter(AddUserErrorsTotal)
		}
		return nil, err
	}

	payload, err := r.UserService.Register(p.Context, req.Username, req.Email, req.Password)
	if r.Metrics != nil {
		r.Metrics.ObserveHistogram(AddUserDurationSeconds, time.Since(startTime).Seconds())
	}
	if err != nil {
		if r.Metrics != nil {
			r.Metrics.IncCounter(AddUserErrorsTotal)
		}
		return nil, err
	}

	if r.Metrics != nil {
		r.Metrics.IncCounter(AddUserSuccessTotal)
	}
	return *payload, nil
}

func (r *Route) resolveLogin(p graphql.ResolveParams) (interface{}, error) {
	if r.Metrics != nil {
		r.Metrics.IncCounter(LoginRequestsTotal)
	}
	startTime := time.Now()

	req := dto.LoginRequestDTO{}
	if err := r.bindArgs(p.Args, &req); err != nil {
		if r.Metrics != nil {
			r.Metrics.IncCounter(LoginFailedTotal)
		}
		return nil, err
	}

	payload, err := r.UserService.Login(p.Context, req.Username, req.Password)
	if r.Metrics != nil {
		r.Metrics.ObserveHistogram(LoginDurationSeconds, time.Since(startTime).Seconds())
	}
	if err != nil {
		if r.Metrics != nil {
			r.Metrics.IncCounter(LoginFailedTotal)
		}
		return nil, err
	}

	if r.Metrics != nil {
		r.Metrics.IncCounter(LoginSuccessTotal)
	}
	return *payload, nil
}

func (r *Route) resolveAddPin(p graphql.ResolveParams) (interface{}, error) {
	if r.Metrics != nil {
		r.Metrics.IncCounter(AddPinRequestsTotal)
	}
	startTime := time.Now()

	req := dto.AddPinRequestDTO{}
	if err := r.bindArgs(p.Args, &req); err != nil {
		if r.Metrics != nil {
			r.Metrics.IncCounter(AddPinErrorsTotal)
		}
		return nil, err
	}

	pin, err := r.PinService.CreatePin(p.Context, req)
	if r.Metrics != nil {
		r.Metrics.ObserveHistogram(AddPinDurationSeconds, time.Since(startTime).Seconds())
	}
	if err != nil {
		if r.Metrics != nil {
			r.Metrics.IncCounter(AddPinErrorsTotal)
		}
		return nil, err
	}

	if r.Metrics != nil {
		r.Metrics.IncCounter(AddPinSuccessTotal)
	}
	return *pin, nil
}

// bindArgs decodes a resolver's argument map into a DTO and validates it.
func (r *Route) bindArgs(args map[string]interface{}, target interface{}) error {
	if err := mapstructure.Decode(args, target); err != nil {
		return fmt.Errorf("%s: %v", ErrInvalidRequestBody, err)
	}
	if err := r.validator.Struct(target); err != nil {
		return fmt.Errorf("%s: %v", ErrValidationFailed, err)
	}
	return nil
}
