package config

import (
	"encoding/json"
	"os"

	"github.com/schoolcloud/identity/internal/flagx"
	"github.com/schoolcloud/identity/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "3600s" and integer nanoseconds.
//
// It is an intermediate DTO used only for reading JSON configuration files;
// after unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	StoreBackend          string         `json:"store_backend"`
	DatabaseDSN           string         `json:"database_dsn"`
	UsersTable            string         `json:"users_table"`
	EventsTable           string         `json:"events_table"`
	AWSRegion             string         `json:"aws_region"`
	AWSEndpoint           string         `json:"aws_endpoint"`
	AWSAccessKeyID        string         `json:"aws_access_key_id"`
	AWSSecretAccessKey    string         `json:"aws_secret_access_key"`
	JWTParam              string         `json:"jwt_param"`
	JWTSecret             string         `json:"jwt_secret"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; when neither is set, no file is loaded. An unreadable or invalid
// file panics: startup must not continue on a half-applied configuration.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		panic(err)
	}

	if c.StoreBackend != "" {
		config.StoreBackend = c.StoreBackend
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.UsersTable != "" {
		config.UsersTable = c.UsersTable
	}
	if c.EventsTable != "" {
		config.EventsTable = c.EventsTable
	}
	if c.AWSRegion != "" {
		config.AWSRegion = c.AWSRegion
	}
	if c.AWSEndpoint != "" {
		config.AWSEndpoint = c.AWSEndpoint
	}
	if c.AWSAccessKeyID != "" {
		config.AWSAccessKeyID = c.AWSAccessKeyID
	}
	if c.AWSSecretAccessKey != "" {
		config.AWSSecretAccessKey = c.AWSSecretAccessKey
	}
	if c.JWTParam != "" {
		config.JWTParam = c.JWTParam
	}
	if c.JWTSecret != "" {
		config.JWTSecret = c.JWTSecret
	}
	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
}
