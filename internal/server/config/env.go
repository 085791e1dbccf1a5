package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/jourin/internal/flagx"
	"github.com/joho/godotenv"
)

// dotenvFile is loaded before the environment is read. A missing file is
// not an error.
var dotenvFile = ".env"

// parseEnv overlays Config with JOURIN_* environment variables. Variables
// already set in the process win over the .env file.
//
//	JOURIN_GRPC_ADDR, JOURIN_HTTP_ADDR, JOURIN_DATABASE_DSN, JOURIN_SECRET_KEY,
//	JOURIN_S3_USER, JOURIN_S3_PASSWORD, JOURIN_S3_BUCKET, JOURIN_S3_REGION,
//	JOURIN_S3_ENDPOINT, JOURIN_EXPORT_LINK_VALIDITY (Go duration),
//	JOURIN_CORS_ORIGINS (comma-separated)
func parseEnv(cfg *Config) {
	if _, err := os.Stat(dotenvFile); err == nil {
		if err := godotenv.Load(dotenvFile); err != nil {
			panic(err)
		}
	}

	flagx.StringsFromEnv(map[string]*string{
		"JOURIN_GRPC_ADDR":    &cfg.EndpointAddrGRPC,
		"JOURIN_HTTP_ADDR":    &cfg.EndpointAddrHTTP,
		"JOURIN_DATABASE_DSN": &cfg.DatabaseDSN,
		"JOURIN_SECRET_KEY":   &cfg.SecretKey,
		"JOURIN_S3_USER":      &cfg.S3RootUser,
		"JOURIN_S3_PASSWORD":  &cfg.S3RootPassword,
		"JOURIN_S3_BUCKET":    &cfg.S3Bucket,
		"JOURIN_S3_REGION":    &cfg.S3Region,
		"JOURIN_S3_ENDPOINT":  &cfg.S3BaseEndpoint,
	})

	if v := os.Getenv("JOURIN_EXPORT_LINK_VALIDITY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.ExportLinkValidity = d
	}
	if v := os.Getenv("JOURIN_CORS_ORIGINS"); v != "" {
		cfg.CORSAllowedOrigins = splitList(v)
	}
}
