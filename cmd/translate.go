/*
Copyright © 2025 dfop02

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dfop02/lokyll/internal/detector"
	"github.com/dfop02/lokyll/internal/orchestrator"
	"github.com/dfop02/lokyll/internal/store"
	"github.com/dfop02/lokyll/internal/translator"
	"github.com/dfop02/lokyll/internal/walker"
)

var (
	srcPath  string
	repoURL  string
	destPath string
	fromLang string
	toLang   string

	includeMarkdown bool
	translateJS     bool

	services     []string
	credentials  string
	projectID    string
	systranKey   string
	mymemoryAddr string
	ollamaURL    string
	ollamaModels []string

	dbPath     string
	noCache    bool
	maxRetries int
	svcTimeout time.Duration
	maxChars   int
)

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate a site tree into another language",
	Long: `Translate a static site repository into a new directory.

The source is either a local path (--src) or a git URL (--repo-url,
shallow-cloned into a temporary directory next to the destination).
HTML files are always translated; pass --include-markdown and
--translate-js to widen coverage.

Available services (tried in order, first success wins):
  - google    Google Translate (requires credentials)
  - systran   Systran Translate (requires API key)
  - mymemory  MyMemory (free, 5000 chars/day)
  - ollama    Ollama LLM (self-hosted)

Use multiple services: --services google,ollama`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if entries, err := os.ReadDir(destPath); err == nil && len(entries) > 0 {
			return fmt.Errorf("destination %s already exists and is not empty", destPath)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		source := srcPath
		sourceLabel := srcPath
		if repoURL != "" {
			clone, err := filepath.Abs(destPath + "__src_clone")
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Cloning %s...\n", repoURL)
			if err := walker.CloneRepo(ctx, repoURL, clone); err != nil {
				return err
			}
			defer os.RemoveAll(clone)
			source = clone
			sourceLabel = repoURL
		} else {
			abs, err := filepath.Abs(srcPath)
			if err != nil {
				return err
			}
			if _, err := os.Stat(abs); err != nil {
				return fmt.Errorf("source path not found: %s", abs)
			}
			source = abs
		}

		if fromLang == "auto" {
			sample := walker.SampleText(source, 2000)
			if detected, ok := detector.New().DetectISO(sample); ok {
				fromLang = strings.ToLower(detected)
				fmt.Fprintf(os.Stderr, "Detected source language: %s\n", fromLang)
			} else {
				fmt.Fprintln(os.Stderr, "Could not detect source language; services will detect per request")
			}
		}

		var mem *store.Store
		if !noCache && dbPath != "" {
			if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
				return fmt.Errorf("failed to create database directory: %w", err)
			}
			var err error
			mem, err = store.New(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer mem.Close()
		}

		svcCfg := translator.ServiceConfig{
			Credentials: stringOr(credentials, "credentials"),
			ProjectID:   stringOr(projectID, "project_id"),
		}

		serviceList, err := buildServices(services,
			stringOr(ollamaURL, "ollama_url"),
			stringOr(systranKey, "systran_key"),
			stringOr(mymemoryAddr, "mymemory_email"),
			ollamaModels)
		if err != nil {
			return err
		}

		fn, err := orchestrator.BuildFunc(ctx, serviceList, svcCfg, orchestrator.BuildConfig{
			Chain: orchestrator.Config{
				Timeout:     svcTimeout,
				MaxAttempts: maxRetries,
			},
			MaxChars: maxChars,
			Validate: true,
		}, fromLang, toLang, mem)
		if err != nil {
			return err
		}

		w := walker.New(walker.Config{
			Source:          source,
			Dest:            destPath,
			FromLang:        fromLang,
			ToLang:          toLang,
			IncludeMarkdown: includeMarkdown,
			TranslateJS:     translateJS,
			SourceLabel:     sourceLabel,
		}, fn)

		if err := os.MkdirAll(destPath, 0o755); err != nil {
			return fmt.Errorf("failed to create destination: %w", err)
		}

		if err := w.Run(ctx); err != nil {
			return err
		}

		fmt.Printf("Done. New site at: %s\n", destPath)
		return nil
	},
}

// stringOr returns the flag value, falling back to the viper key so
// secrets can live in the config file or LOKYLL_* environment.
func stringOr(flagValue, viperKey string) string {
	if flagValue != "" {
		return flagValue
	}
	return viper.GetString(viperKey)
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVar(&srcPath, "src", "", "Path to a local source repo")
	translateCmd.Flags().StringVar(&repoURL, "repo-url", "", "Git URL to clone from (shallow clone)")
	translateCmd.Flags().StringVar(&destPath, "dest", "", "Destination folder for the translated site (required)")
	translateCmd.Flags().StringVar(&fromLang, "from-lang", "auto", "Source language code (e.g. en)")
	translateCmd.Flags().StringVar(&toLang, "to-lang", "", "Target language code (e.g. pt, required)")

	translateCmd.Flags().BoolVar(&includeMarkdown, "include-markdown", false, "Translate Markdown files (recommended for Jekyll sites)")
	translateCmd.Flags().BoolVar(&translateJS, "translate-js", false, "Try translating JS string literals that render HTML/text")

	translateCmd.Flags().StringSliceVar(&services, "services", []string{"google"}, "Translation services to try in order (comma-separated)")
	translateCmd.Flags().StringVarP(&credentials, "credentials", "c", "", "Path to Google Cloud credentials")
	translateCmd.Flags().StringVarP(&projectID, "project", "p", "", "Google Cloud Project ID")
	translateCmd.Flags().StringVar(&systranKey, "systran-key", "", "Systran API key")
	translateCmd.Flags().StringVar(&mymemoryAddr, "mymemory-email", "", "MyMemory email (for higher limits)")
	translateCmd.Flags().StringVar(&ollamaURL, "ollama-url", "http://localhost:11434", "Ollama base URL")
	translateCmd.Flags().StringSliceVar(&ollamaModels, "ollama-models", nil, "Ollama models to rotate (default list used if empty)")

	translateCmd.Flags().StringVar(&dbPath, "db", "./data/lokyll.db", "Database path for translation memory")
	translateCmd.Flags().BoolVar(&noCache, "no-cache", false, "Disable translation memory cache")
	translateCmd.Flags().IntVar(&maxRetries, "max-retries", 3, "Total attempts per service including the first (1 = no retries)")
	translateCmd.Flags().DurationVar(&svcTimeout, "timeout", 30*time.Second, "Timeout per service attempt")
	translateCmd.Flags().IntVar(&maxChars, "max-chars", 4000, "Maximum characters per service request (0 = unlimited)")

	translateCmd.MarkFlagsMutuallyExclusive("src", "repo-url")
	translateCmd.MarkFlagsOneRequired("src", "repo-url")
	translateCmd.MarkFlagRequired("dest")
	translateCmd.MarkFlagRequired("to-lang")
}
