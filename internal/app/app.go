package app

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"net/http"

	"github.com/khushi71103/travelpin/config"
	"github.com/khushi71103/travelpin/internal/auth"
	"github.com/khushi71103/travelpin/internal/interfaces"
	"github.com/khushi71103/travelpin/internal/pinservice"
	"github.com/khushi71103/travelpin/internal/routes"
	"github.com/khushi71103/travelpin/internal/server"
	"github.com/khushi71103/travelpin/internal/userservice"
	"github.com/khushi71103/travelpin/pkg/databases/mongo"
	"github.com/khushi71103/travelpin/pkg/databases/postgres"
	"github.com/khushi71103/travelpin/pkg/metrics"
	"github.com/khushi71103/travelpin/pkg/zerolog"

	mongoPinRepo "github.com/khushi71103/travelpin/internal/pinrepo/mongo"
	postgresPinRepo "github.com/khushi71103/travelpin/internal/pinrepo/postgres"
	mongoUserRepo "github.com/khushi71103/travelpin/internal/userrepo/mongo"
	postgresUserRepo "github.com/khushi71103/travelpin/internal/userrepo/postgres"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// App represents the main application, containing server and configuration.
// It initializes with a config file, validates settings, and manages routes.
type App struct {
	Server     interfaces.Server
	Config     *config.ServiceConfig
	Logger     interfaces.Logger
	privateKey *ecdsa.PrivateKey
}

// NewApp creates and configures a new App instance.
func NewApp(configPath string) (*App, error) {
	// A local .env may carry the database DSN; missing is fine.
	_ = godotenv.Load()

	cfg, err := config.ReadLocalConfig(configPath)
	if err != nil {
		return nil, err
	}

	// Validate the configuration
	validator := structValidator.New()
	if err := validator.Struct(cfg); err != nil {
		errors := err.(structValidator.ValidationErrors)
		return nil, fmt.Errorf("validation error: %s", errors)
	}

	logger := zerolog.NewZerologLogger(cfg.ServiceName)
	logger.SetLevel(cfg.LogLevel)

	app := &App{
		Config: cfg,
		Logger: logger,
	}

	app.Server = server.NewServer(cfg.Host, cfg.Port, logger)

	metricsInstance := app.initializeMetrics()

	if err := app.initializePrivateKey(); err != nil {
		return nil, fmt.Errorf("failed to initialize private key: %v", err)
	}

	dbClient, err := app.initializeDBClient()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database client: %v", err)
	}

	userRepo, pinRepo, err := app.initializeRepos(dbClient)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize repositories: %v", err)
	}

	userService := userservice.NewUserService(userRepo, app.privateKey, logger)
	pinService := pinservice.NewPinService(pinRepo, logger)

	route, err := routes.NewRoute(metricsInstance, userService, pinService, logger, validator)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize routes: %v", err)
	}

	metricsHandler := promhttp.HandlerFor(
		metricsInstance.GetRegistry(),
		promhttp.HandlerOpts{})

	tracedMetricsHandler := otelhttp.NewHandler(metricsHandler, routes.MetricsRouteAPI)

	err = app.Server.AddRoute(routes.MetricsRouteAPI, tracedMetricsHandler.ServeHTTP)
	if err != nil {
		return nil, fmt.Errorf("failed to add metrics route: %v", err)
	}

	tracedGraphQLHandler := otelhttp.NewHandler(http.HandlerFunc(route.GraphQL), routes.GraphQLRouteAPI)

	err = app.Server.AddRoute(routes.GraphQLRouteAPI, tracedGraphQLHandler.ServeHTTP)
	if err != nil {
		return nil, fmt.Errorf("failed to add graphql route: %v", err)
	}

	return app, nil
}

func (app *App) Run() error {
	if err := app.Server.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %v", err)
	}

	return nil
}

func (app *App) initializeMetrics() interfaces.Metrics {
	appMetrics := metrics.NewMetrics(app.Config.ServiceName)
	appMetrics.RegisterCounter(routes.GraphQLRequestsTotal, routes.GraphQLRequestsTotalHelp)
	appMetrics.RegisterCounter(routes.GraphQLErrorsTotal, routes.GraphQLErrorsTotalHelp)

	appMetrics.RegisterCounter(routes.AddUserRequestsTotal, routes.AddUserRequestsTotalHelp)
	appMetrics.RegisterCounter(routes.AddUserSuccessTotal, routes.AddUserSuccessTotalHelp)
	appMetrics.RegisterCounter(routes.AddUserErrorsTotal, routes.AddUserErrorsTotalHelp)
	appMetrics.RegisterHistogram(
		routes.AddUserDurationSeconds,
		routes.AddUserDurationHelp,
		routes.AddUserDurationSecondsBuckets)

	appMetrics.RegisterCounter(routes.LoginRequestsTotal, routes.LoginRequestsTotalHelp)
	appMetrics.RegisterCounter(routes.LoginSuccessTotal, routes.LoginSuccessTotalHelp)
	appMetrics.RegisterCounter(routes.LoginFailedTotal, routes.LoginFailedTotalHelp)
	appMetrics.RegisterHistogram(
		routes.LoginDurationSeconds,
		routes.LoginDurationSecondsHelp,
		routes.LoginDurationSecondsBuckets)

	appMetrics.RegisterCounter(routes.AddPinRequestsTotal, routes.AddPinRequestsTotalHelp)
	appMetrics.RegisterCounter(routes.AddPinSuccessTotal, routes.AddPinSuccessTotalHelp)
	appMetrics.RegisterCounter(routes.AddPinErrorsTotal, routes.AddPinErrorsTotalHelp)
	appMetrics.RegisterHistogram(
		routes.AddPinDurationSeconds,
		routes.AddPinDurationSecondsHelp,
		routes.AddPinDurationSecondsBuckets)

	return appMetrics
}

func (app *App) initializeDBClient() (interfaces.DBClient, error) {
	var dbClient interfaces.DBClient
	var err error

	dsn := app.Config.DatabaseDSN()

	switch app.Config.Database.Type {
	case "mongo":
		dbClient, err = mongo.NewMongoDB(&app.Config.Database.MongoDB, app.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize MongoDB client: %v", err)
		}

	case "postgres":
		dbClient = postgres.NewPostgresDatabaseClient(&app.Config.Database.Postgres, app.Logger)

	default:
		return nil, fmt.Errorf("unsupported database type: %s", app.Config.Database.Type)
	}

	if err = dbClient.Connect(context.Background(), dsn); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %v", app.Config.Database.Type, err)
	}

	return dbClient, nil
}

func (app *App) initializeRepos(dbClient interfaces.DBClient) (interfaces.UserRepository, interfaces.PinRepository, error) {
	var userRepo interfaces.UserRepository
	var pinRepo interfaces.PinRepository
	var err error

	switch app.Config.Database.Type {
	case "mongo":
		userRepo, err = mongoUserRepo.NewMongoUserRepository(dbClient)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize MongoDB user repository: %v", err)
		}
		pinRepo, err = mongoPinRepo.NewMongoPinRepository(dbClient)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize MongoDB pin repository: %v", err)
		}

	case "postgres":
		userRepo, err = postgresUserRepo.NewPostgresUserRepository(dbClient)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize PostgreSQL user repository: %v", err)
		}
		pinRepo, err = postgresPinRepo.NewPostgresPinRepository(dbClient)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize PostgreSQL pin repository: %v", err)
		}

	default:
		return nil, nil, fmt.Errorf("unsupported database type: %s", app.Config.Database.Type)
	}

	// The unique username/email indices close the register race; create
	// them before serving traffic.
	if err = userRepo.EnsureIndices(context.Background()); err != nil {
		return nil, nil, fmt.Errorf("failed to ensure user indices: %v", err)
	}
	if err = pinRepo.EnsureIndices(context.Background()); err != nil {
		return nil, nil, fmt.Errorf("failed to ensure pin indices: %v", err)
	}

	return userRepo, pinRepo, nil
}

func (app *App) initializePrivateKey() error {
	if app.Config.PrivateKeyPath == "" {
		return fmt.Errorf("private key path is not provided in the configuration")
	}

	privateKey, err := auth.LoadECDSAPrivateKey(app.Config.PrivateKeyPath)
	if err != nil {
		return fmt.Errorf("failed to load private key: %v", err)
	}

	app.privateKey = privateKey
	return nil
}
