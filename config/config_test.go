package config

import (
	"os"
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestMain(m *testing.M) {
	invalidYamlPath := "./invalid_config.yaml"
	invalidContent := []byte("invalid: [unclosed_list\nanother: value")

	// Create invalid YAML file
	if err := os.WriteFile(invalidYamlPath, invalidContent, 0600); err != nil {
		panic("failed to create invalid YAML file: " + err.Error())
	}

	// Run tests
	code := m.Run()

	// Clean up
	os.Remove(invalidYamlPath)

	os.Exit(code)
}

func TestReadLocalConfig(t *testing.T) {
	type args struct {
		configPath string
	}
	tests := []struct {
		name    string
		args    args
		want    *ServiceConfig
		wantErr bool
	}{
		{
			name: "successful",
			args: args{
				configPath: "../res/config.yaml",
			},
			want: &ServiceConfig{
				ServiceName:    "travelpin",
				Host:           "0.0.0.0",
				Port:           "8800",
				LogLevel:       "info",
				PrivateKeyPath: "./res/private.pem",
				Database: Database{
					Type: "mongo",
					MongoDB: MongoDBConfig{
						Timeout:          10 * time.Second,
						ValidCollections: []string{"users", "pins"},
						ValidFields: []string{
							"username", "email", "password",
							"title", "desc", "rating", "lat", "long", "createdAt",
						},
						Options: MongoServerOptions{
							APIVersion:           "1",
							SetStrict:            true,
							SetDeprecationErrors: true,
						},
					},
					Postgres: PostgresConfig{
						Options: PostgresServerOptions{
							MaxOpenConns:    10,
							MaxIdleConns:    5,
							ConnMaxLifetime: 30 * time.Second,
						},
						ValidTables: []string{"users", "pins"},
						ValidFields: []string{
							"id", "username", "email", "password",
							"title", "desc", "rating", "lat", "long", "created_at",
						},
					},
				},
			},
			wantErr: false,
		},
		{
			name: "file does not exist",
			args: args{
				configPath: "",
			},
			want:    nil,
			wantErr: true,
		},
		{
			name: "invalid YAML file",
			args: args{
				configPath: "./invalid_config.yaml",
			},
			want:    nil,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadLocalConfig(tt.args.configPath)
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadLocalConfig() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadLocalConfig() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestServiceConfig_DatabaseDSN(t *testing.T) {
	tests := []struct {
		name   string
		dbType string
		envVar string
		dsn    string
	}{
		{
			name:   "mongo type reads MONGO_DSN",
			dbType: "mongo",
			envVar: MongoDSNEnv,
			dsn:    "mongodb://localhost:27017/travelpin",
		},
		{
			name:   "postgres type reads POSTGRES_DSN",
			dbType: "postgres",
			envVar: PostgresDSNEnv,
			dsn:    "postgres://localhost:5432/travelpin?sslmode=disable",
		},
		{
			name:   "unknown type falls back to MONGO_DSN",
			dbType: "cockroach",
			envVar: MongoDSNEnv,
			dsn:    "mongodb://localhost:27017/fallback",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envVar, tt.dsn)
			cfg := &ServiceConfig{Database: Database{Type: tt.dbType}}
			if got := cfg.DatabaseDSN(); got != tt.dsn {
				t.Errorf("DatabaseDSN() = %v, want %v", got, tt.dsn)
			}
		})
	}
}

func TestBuildServerAPIOptions(t *testing.T) {
	type args struct {
		cfg MongoServerOptions
	}
	tests := []struct {
		name string
		args args
		want *options.ServerAPIOptions
	}{
		{
			name: "default options",
			args: args{
				cfg: MongoServerOptions{
					APIVersion:           "1",
					SetStrict:            true,
					SetDeprecationErrors: true,
				},
			},
			want: options.ServerAPI(options.ServerAPIVersion("1")).
				SetStrict(true).
				SetDeprecationErrors(true),
		},
		{
			name: "empty options",
			args: args{
				cfg: MongoServerOptions{
					APIVersion:           "",
					SetStrict:            false,
					SetDeprecationErrors: false,
				},
			},
			want: options.ServerAPI(options.ServerAPIVersion("")).
				SetStrict(false).
				SetDeprecationErrors(false),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildServerAPIOptions(tt.args.cfg); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildServerAPIOptions() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestListToMap(t *testing.T) {
	tests := []struct {
		name string
		list []string
		want map[string]bool
	}{
		{
			name: "non-empty list",
			list: []string{"users", "pins"},
			want: map[string]bool{"users": true, "pins": true},
		},
		{
			name: "empty list",
			list: []string{},
			want: map[string]bool{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ListToMap(tt.list); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ListToMap() = %v, want %v", got, tt.want)
			}
		})
	}
}
