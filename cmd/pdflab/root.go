package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdflab/internal/adapters/driven/backend"
	"github.com/custodia-labs/pdflab/internal/adapters/driven/history"
	"github.com/custodia-labs/pdflab/internal/core/domain"
	"github.com/custodia-labs/pdflab/internal/core/services"
)

var (
	flagAPIURL    string
	flagWorkerURL string
	flagBasePath  string
	flagTimeout   time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "pdflab",
	Short:         "Upload PDFs, ask questions about one document, read summaries",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	defaults := backend.DefaultConfig()
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", getEnv("PDFLAB_API_URL", defaults.APIURL), "document API root")
	rootCmd.PersistentFlags().StringVar(&flagWorkerURL, "worker-url", getEnv("PDFLAB_WORKER_URL", defaults.WorkerURL), "PDF worker root")
	rootCmd.PersistentFlags().StringVar(&flagBasePath, "base-path", getEnv("PDFLAB_BASE_PATH", domain.DefaultBasePath), "path the views are mounted under")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", getEnvDuration("HTTP_TIMEOUT", 10*time.Minute), "collaborator request timeout (0 disables)")
}

func newBackend() *backend.Client {
	return backend.NewClient(backend.Config{
		APIURL:    flagAPIURL,
		WorkerURL: flagWorkerURL,
		Timeout:   flagTimeout,
	})
}

// newLocalWorkspace builds a single workspace for one-shot commands
func newLocalWorkspace() *services.Workspace {
	return services.NewWorkspace(services.WorkspaceConfig{
		Backend:  newBackend(),
		History:  history.NewMemory(flagBasePath),
		BasePath: flagBasePath,
	})
}
