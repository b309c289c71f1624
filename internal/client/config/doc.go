// Package config loads runtime configuration for the casekeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory and the process environment
//     (variables prefixed with CASEKEEPER_; the environment wins over .env).
//  3. Optional JSON file selected with -c / -config or CASEKEEPER_CONFIG.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the backend API
//	-t int      request timeout (seconds)
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Durations use timex.Duration, so "10s" and integer nanoseconds both work:
//
//	{
//	  "api_base_url": "https://admin.example.org",
//	  "request_timeout": "10s",
//	  "requests_per_second": 10,
//	  "request_burst": 5,
//	  "database_path": "casekeeper.db",
//	  "log_level": "info",
//	  "log_driver": "slog",
//	  "upload_backend": "s3",
//	  "s3": {"bucket": "cases", "region": "eu-central-1", "base_endpoint": "http://localhost:9000",
//	         "access_key": "...", "secret_key": "...", "public_base_url": "http://cdn.local/cases"}
//	}
package config
