package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/corpustools/zimdir/internal/archive"
	extractrun "github.com/corpustools/zimdir/internal/cmd/extract"
	cfgpkg "github.com/corpustools/zimdir/internal/config"
	"github.com/corpustools/zimdir/internal/exclude"
	logpkg "github.com/corpustools/zimdir/pkg/log"
)

// Exit codes: 0 success, 1 missing arguments or runtime failure, 2 invalid
// exclusion pattern or filter expression.
const (
	exitFailure    = 1
	exitBadPattern = 2
)

func main() {
	level := os.Getenv("ZIMDIR_LOG_LEVEL")
	parsed, err := logpkg.ParseLevel(level)
	if err != nil || level == "" {
		parsed = logpkg.InfoLevel
	}
	logger := logpkg.NewLogger(
		logpkg.WithLevel(parsed),
		logpkg.WithFormatter(&logpkg.TextFormatter{}),
		logpkg.WithOutput(logpkg.NewConsoleOutput()),
	)

	// Redirect standard library logs (used by Pebble) to our logger
	logpkg.RedirectStdLog(logger)

	rootCmd := &cobra.Command{
		Use:   "zimdir",
		Short: "zimdir corpus extraction CLI",
		Long:  "zimdir extracts document archives into numbered batch files for corpus building.",
	}
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	extractCmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract an archive into numbered batch files",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile, _ := cmd.Flags().GetString("input-file")
			outputDir, _ := cmd.Flags().GetString("output-dir")
			configPath, _ := cmd.Flags().GetString("config")

			cfg, err := cfgpkg.Load(configPath)
			if err != nil {
				return err
			}
			cfgpkg.FromEnv(&cfg)

			// Flags win over config file and environment.
			if cmd.Flags().Changed("language") {
				cfg.Language, _ = cmd.Flags().GetString("language")
			}
			if cmd.Flags().Changed("pattern") {
				cfg.Pattern, _ = cmd.Flags().GetString("pattern")
			}
			if cmd.Flags().Changed("filter") {
				cfg.Filter, _ = cmd.Flags().GetString("filter")
			}
			if cmd.Flags().Changed("namespace") {
				cfg.Namespace, _ = cmd.Flags().GetString("namespace")
			}
			if cmd.Flags().Changed("documents") {
				cfg.Documents, _ = cmd.Flags().GetInt("documents")
			}
			if cmd.Flags().Changed("zeroes") {
				cfg.Zeroes, _ = cmd.Flags().GetInt("zeroes")
			}
			if cmd.Flags().Changed("threads") {
				cfg.Threads, _ = cmd.Flags().GetInt("threads")
			}
			if cmd.Flags().Changed("queue") {
				cfg.QueueDepth, _ = cmd.Flags().GetInt("queue")
			}
			if noCompress, _ := cmd.Flags().GetBool("no-compress"); noCompress {
				cfg.Compress = false
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
			}
			if cmd.Flags().Changed("log-format") {
				cfg.LogFormat, _ = cmd.Flags().GetString("log-format")
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return extractrun.Run(ctx, extractrun.Options{
				InputFile: inputFile,
				OutputDir: outputDir,
				Config:    cfg,
			})
		},
	}
	extractCmd.Flags().StringP("input-file", "i", "", "archive to extract (required)")
	extractCmd.Flags().StringP("output-dir", "o", "", "directory for the batch files (required)")
	extractCmd.Flags().StringP("language", "l", "hu", "language of the archive")
	extractCmd.Flags().StringP("pattern", "p", "", "explicit title exclusion regexp (overrides --language)")
	extractCmd.Flags().StringP("filter", "f", "", "CEL expression over entry metadata; entries it rejects are skipped")
	extractCmd.Flags().String("namespace", "A", "content namespace (single character)")
	extractCmd.Flags().IntP("documents", "d", 2500, "entries per batch file")
	extractCmd.Flags().IntP("zeroes", "Z", 4, "padding width of the batch file numbers")
	extractCmd.Flags().IntP("threads", "t", 10, "number of parallel writers")
	extractCmd.Flags().IntP("queue", "q", 0, "pending batch limit (default: same as --threads)")
	extractCmd.Flags().Bool("no-compress", false, "write plain files instead of gzip")
	extractCmd.Flags().String("log-level", "", "debug|info|warn|error|fatal")
	extractCmd.Flags().String("log-format", "", "text|json")
	extractCmd.Flags().StringP("config", "c", "", "JSON or YAML config file")
	_ = extractCmd.MarkFlagRequired("input-file")
	_ = extractCmd.MarkFlagRequired("output-dir")
	rootCmd.AddCommand(extractCmd)

	packCmd := &cobra.Command{
		Use:   "pack",
		Short: "Build an archive from a directory of documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputDir, _ := cmd.Flags().GetString("input-dir")
			outputFile, _ := cmd.Flags().GetString("output-file")
			namespace, _ := cmd.Flags().GetString("namespace")
			if len(namespace) != 1 {
				return fmt.Errorf("namespace must be a single character, got %q", namespace)
			}

			names, err := collectDocuments(inputDir)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				return fmt.Errorf("no documents found under %s", inputDir)
			}

			arc, err := archive.Create(outputFile)
			if err != nil {
				return err
			}
			defer arc.Close()

			ctx := cmd.Context()
			for _, name := range names {
				content, err := os.ReadFile(name)
				if err != nil {
					return err
				}
				title := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
				if _, err := arc.Append(ctx, title, namespace[0], false, false, content); err != nil {
					return err
				}
			}
			logger.Info("archive packed",
				logpkg.Str("path", outputFile),
				logpkg.Uint64("entries", arc.Count()))
			return nil
		},
	}
	packCmd.Flags().StringP("input-dir", "i", "", "directory of documents to pack (required)")
	packCmd.Flags().StringP("output-file", "o", "", "archive path to create (required)")
	packCmd.Flags().String("namespace", "A", "namespace assigned to every entry")
	_ = packCmd.MarkFlagRequired("input-dir")
	_ = packCmd.MarkFlagRequired("output-file")
	rootCmd.AddCommand(packCmd)

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print entry counts for an archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile, _ := cmd.Flags().GetString("input-file")

			arc, err := archive.Open(inputFile)
			if err != nil {
				return err
			}
			defer arc.Close()

			reader := arc.NewReader()
			defer reader.Close()

			var redirects, deleted uint64
			perNamespace := map[byte]uint64{}
			if err := reader.Scan(func(e archive.Entry) bool {
				perNamespace[e.Namespace]++
				if e.Redirect {
					redirects++
				}
				if e.Deleted {
					deleted++
				}
				return true
			}); err != nil {
				return err
			}

			fmt.Printf("entries:   %d\n", arc.Count())
			fmt.Printf("redirects: %d\n", redirects)
			fmt.Printf("deleted:   %d\n", deleted)
			namespaces := make([]int, 0, len(perNamespace))
			for ns := range perNamespace {
				namespaces = append(namespaces, int(ns))
			}
			sort.Ints(namespaces)
			for _, ns := range namespaces {
				fmt.Printf("namespace %c: %d\n", ns, perNamespace[byte(ns)])
			}
			return nil
		},
	}
	inspectCmd.Flags().StringP("input-file", "i", "", "archive to inspect (required)")
	_ = inspectCmd.MarkFlagRequired("input-file")
	rootCmd.AddCommand(inspectCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error(err.Error())
		if errors.Is(err, exclude.ErrBadPattern) {
			os.Exit(exitBadPattern)
		}
		os.Exit(exitFailure)
	}
}

// collectDocuments lists regular files under dir in sorted order so packing
// assigns ids deterministically.
func collectDocuments(dir string) ([]string, error) {
	var names []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			names = append(names, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}
