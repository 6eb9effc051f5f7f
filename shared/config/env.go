// Package config reads typed settings from the environment. Every lookup
// takes a list of variable names tried in order, so a service-prefixed name
// can shadow a conventional one (PORT, DATABASE_URL).
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func lookup(keys []string) (string, bool) {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value, true
		}
	}
	return "", false
}

func String(def string, keys ...string) string {
	if value, ok := lookup(keys); ok {
		return value
	}
	return def
}

func Int(def int, keys ...string) int {
	if value, ok := lookup(keys); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return def
}

func Bool(def bool, keys ...string) bool {
	if value, ok := lookup(keys); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return def
}

func Duration(def time.Duration, keys ...string) time.Duration {
	if value, ok := lookup(keys); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return def
}

// Slice splits a comma-separated value, dropping empty entries.
func Slice(def []string, keys ...string) []string {
	value, ok := lookup(keys)
	if !ok {
		return def
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return def
	}
	return result
}
