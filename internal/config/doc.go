// Package config provides loading and environment overlay for zimdir
// configuration. It exposes a Default() baseline, JSON/YAML file loading,
// and a ZIMDIR_* environment overlay. Precedence, lowest to highest:
// defaults, config file, environment, command-line flags.
//
// Example:
//
//	cfg := config.Default()
//	if fileCfg, err := config.Load("/etc/zimdir.yaml"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
package config
