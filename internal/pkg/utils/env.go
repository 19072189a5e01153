package utils

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// lookupEnv returns the trimmed value of key, or false when it is unset or blank.
func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

// parseEnv applies parse to the variable and falls back to defaultValue when
// the variable is missing or malformed. Config loads before the zap logger
// exists, so parse failures go to the standard logger.
func parseEnv[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	raw, ok := lookupEnv(key)
	if !ok {
		return defaultValue
	}
	value, err := parse(raw)
	if err != nil {
		log.Printf("config: %s=%q is invalid (%v), using default %v", key, raw, err, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvString(key, defaultValue string) string {
	if value, ok := lookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func GetEnvInt(key string, defaultValue int) int {
	return parseEnv(key, defaultValue, strconv.Atoi)
}

func GetEnvBool(key string, defaultValue bool) bool {
	return parseEnv(key, defaultValue, strconv.ParseBool)
}

func GetEnvFloat(key string, defaultValue float64) float64 {
	return parseEnv(key, defaultValue, func(raw string) (float64, error) {
		return strconv.ParseFloat(raw, 64)
	})
}

// GetEnvStringSlice splits a comma separated variable, dropping blank items.
func GetEnvStringSlice(key string, defaultValue []string) []string {
	raw, ok := lookupEnv(key)
	if !ok {
		return defaultValue
	}
	var values []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			values = append(values, item)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
