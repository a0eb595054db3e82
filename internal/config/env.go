package config

import (
	"os"
	"strconv"
)

// FromEnv overlays ZIMDIR_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("ZIMDIR_LANGUAGE"); v != "" {
		cfg.Language = v
	}
	if v := os.Getenv("ZIMDIR_PATTERN"); v != "" {
		cfg.Pattern = v
	}
	if v := os.Getenv("ZIMDIR_FILTER"); v != "" {
		cfg.Filter = v
	}
	if v := os.Getenv("ZIMDIR_NAMESPACE"); v != "" {
		cfg.Namespace = v
	}
	if v := os.Getenv("ZIMDIR_DOCUMENTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Documents = n
		}
	}
	if v := os.Getenv("ZIMDIR_ZEROES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Zeroes = n
		}
	}
	if v := os.Getenv("ZIMDIR_THREADS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Threads = n
		}
	}
	if v := os.Getenv("ZIMDIR_QUEUE_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.QueueDepth = n
		}
	}
	if v := os.Getenv("ZIMDIR_COMPRESS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Compress = b
		}
	}
	if v := os.Getenv("ZIMDIR_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("ZIMDIR_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
}
