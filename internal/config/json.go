package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// jsonConfig is the file shape. Pointers distinguish absent keys from zero
// values so the file only overrides what it names.
type jsonConfig struct {
	Env                    *string `json:"env"`
	SQLitePath             *string `json:"sqlite_path"`
	ProfileStore           *string `json:"profile_store"`
	PostgresDSN            *string `json:"postgres_dsn"`
	SlowQueryMs            *int    `json:"slow_query_ms"`
	JWTSigningKey          *string `json:"jwt_signing_key"`
	SessionTTL             *string `json:"session_ttl"`
	CallTimeout            *string `json:"call_timeout"`
	RequireTrainingProfile *bool   `json:"require_training_profile"`
	WebhookURL             *string `json:"webhook_url"`
	ResendAPIKey           *string `json:"resend_api_key"`
	EmailFrom              *string `json:"email_from"`
	CoachEmail             *string `json:"coach_email"`
	LogFormat              *string `json:"log_format"`
	LogLevel               *string `json:"log_level"`
}

func loadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.Env, jc.Env)
	setString(&cfg.SQLitePath, jc.SQLitePath)
	setString(&cfg.ProfileStore, jc.ProfileStore)
	setString(&cfg.PostgresDSN, jc.PostgresDSN)
	setString(&cfg.JWTSigningKey, jc.JWTSigningKey)
	setString(&cfg.WebhookURL, jc.WebhookURL)
	setString(&cfg.ResendAPIKey, jc.ResendAPIKey)
	setString(&cfg.EmailFrom, jc.EmailFrom)
	setString(&cfg.CoachEmail, jc.CoachEmail)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.SlowQueryMs != nil {
		cfg.SlowQueryMs = *jc.SlowQueryMs
	}
	if jc.RequireTrainingProfile != nil {
		cfg.RequireTrainingProfile = *jc.RequireTrainingProfile
	}
	if err := setDuration(&cfg.SessionTTL, jc.SessionTTL, "session_ttl"); err != nil {
		return err
	}
	return setDuration(&cfg.CallTimeout, jc.CallTimeout, "call_timeout")
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *string, key string) error {
	if v == nil {
		return nil
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return fmt.Errorf("config %s: %w", key, err)
	}
	*dst = d
	return nil
}
