package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	apierrors "github.com/diogo/kondate/internal/errors"
)

// Environment variables checked for the API key, in order
var APIKeyEnvVars = []string{"GEMINI_API_KEY", "KONDATE_API_KEY"}

// DotEnvFile is read from the working directory when no variable is set
const DotEnvFile = ".env"

// KeySource names where a resolved API key came from
type KeySource string

const (
	SourceFlag   KeySource = "flag"
	SourceEnv    KeySource = "environment"
	SourceDotEnv KeySource = ".env"
	SourceConfig KeySource = "config"
	SourceNone   KeySource = "none"
)

// ResolveAPIKey picks the API key from the flag, the environment, a .env file
// and the config file, in that order.
func ResolveAPIKey(flagValue string, cfg Config) (string, KeySource, error) {
	if key := strings.TrimSpace(flagValue); key != "" {
		return key, SourceFlag, nil
	}

	for _, name := range APIKeyEnvVars {
		if key := strings.TrimSpace(os.Getenv(name)); key != "" {
			return key, SourceEnv, nil
		}
	}

	// .env values are read, never exported into the process environment
	if values, err := godotenv.Read(DotEnvFile); err == nil {
		for _, name := range APIKeyEnvVars {
			if key := strings.TrimSpace(values[name]); key != "" {
				return key, SourceDotEnv, nil
			}
		}
	}

	if key := strings.TrimSpace(cfg.APIKey); key != "" {
		return key, SourceConfig, nil
	}

	return "", SourceNone, apierrors.ErrMissingAPIKey
}

// MaskKey hides all but the last four characters of a key
func MaskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
