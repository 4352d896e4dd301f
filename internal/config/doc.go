// Package config loads runtime settings for the heavygym client.
//
// Sources, later ones win:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file named by -c/-config or HEAVYGYM_CONFIG.
//  3. HEAVYGYM_* environment variables.
//
// Durations in JSON and the environment use time.ParseDuration syntax ("10s").
//
//	{
//	  "sqlite_path": "heavygym.db",
//	  "profile_store": "postgres",
//	  "postgres_dsn": "postgres://heavygym@localhost/heavygym?sslmode=disable",
//	  "call_timeout": "10s",
//	  "webhook_url": "https://hooks.example.com/onboarding"
//	}
package config
