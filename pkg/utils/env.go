package utils

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Getenv retrieves the value of the environment variable named by the key.
// If the variable is not present or its value is empty, Getenv returns the fallback string.
func Getenv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}

// GetenvInt is Getenv for integers; unparsable values fall back.
func GetenvInt(key string, fallback int) int {
	n, err := strconv.Atoi(Getenv(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

// GetenvBool is Getenv for booleans; unparsable values fall back.
func GetenvBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(Getenv(key, ""))
	if err != nil {
		return fallback
	}
	return b
}

// GetenvDuration accepts Go durations ("30s") or plain milliseconds ("900000").
func GetenvDuration(key string, fallback time.Duration) time.Duration {
	raw := Getenv(key, "")
	if raw == "" {
		return fallback
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

// GetenvList splits a comma separated variable, dropping blank entries.
func GetenvList(key string) []string {
	var out []string
	for _, part := range strings.Split(Getenv(key, ""), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
