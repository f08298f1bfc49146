package config

import (
	"flag"
	"os"
	"time"

	"github.com/schoolcloud/identity/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-b string   store backend: "dynamodb" or "postgres"
//	-d string   PostgreSQL DSN
//	-u string   DynamoDB users table name
//	-e string   DynamoDB events table name
//	-g string   AWS region
//	-n string   custom AWS endpoint (e.g., "http://127.0.0.1:8000/")
//	-k string   AWS access key id
//	-p string   AWS secret access key
//	-j string   SSM parameter name for the JWT secret
//	-s string   explicit JWT HMAC secret key
//	-t int      session token validity, seconds
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-d", "-u", "-e", "-g", "-n", "-k", "-p", "-j", "-s", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.StoreBackend, "b", config.StoreBackend, "store backend (dynamodb|postgres)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.UsersTable, "u", config.UsersTable, "users table name")
	fs.StringVar(&config.EventsTable, "e", config.EventsTable, "events table name")
	fs.StringVar(&config.AWSRegion, "g", config.AWSRegion, "AWS region")
	fs.StringVar(&config.AWSEndpoint, "n", config.AWSEndpoint, "AWS endpoint override")
	fs.StringVar(&config.AWSAccessKeyID, "k", config.AWSAccessKeyID, "AWS access key id")
	fs.StringVar(&config.AWSSecretAccessKey, "p", config.AWSSecretAccessKey, "AWS secret access key")
	fs.StringVar(&config.JWTParam, "j", config.JWTParam, "SSM parameter holding the JWT secret")
	fs.StringVar(&config.JWTSecret, "s", config.JWTSecret, "JWT secret key")

	tokenValiditySeconds := fs.Int("t", int(config.TokenValidityDuration.Seconds()), "token_validity_duration (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValiditySeconds) * time.Second
}
