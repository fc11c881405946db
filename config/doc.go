// Package config loads client configuration from YAML files, .env files and
// environment variables.
//
// Files are searched in the working directory, ./config and the user's
// config directory. Environment variables use the upper-case client name as
// prefix and underscores between nested keys:
//
//	WEBCLIENT_SESSION_BASE_URL=https://example.com
//	WEBCLIENT_LOGGING_LEVEL=debug
//
// Usage:
//
//	var cfg config.ClientConfig
//	if err := config.LoadConfig("webclient", &cfg); err != nil {
//		return err
//	}
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil {
//		return err
//	}
package config
