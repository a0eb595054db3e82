// Package log provides zimdir's structured logging facade.
//
// # Overview
//
// The package exposes a small Logger interface with leveled methods and a
// simple Field type for structured context. Formatting (text or JSON) and
// output destinations are pluggable, so components log against one facade
// regardless of how the process was configured.
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	    log.WithOutput(log.NewConsoleOutput()),
//	)
//	l = l.With(log.Component("scanner"))
//	l.Info("batch pushed", log.Uint64("seq", 12), log.Int("ids", 2500))
//
// # Configuration
//
// Use ApplyConfig to build a logger from a declarative Config, supporting
// text or JSON formatting and a level parsed from a string.
package log
