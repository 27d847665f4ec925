package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/raaihank/owoify/internal/config"
	"github.com/raaihank/owoify/internal/logger"
	"github.com/raaihank/owoify/internal/server"
	"github.com/raaihank/owoify/pkg/owoify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds what the subcommands share once the root has loaded configuration
type app struct {
	configPath string
	level      string

	cfg *config.Config
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "owoify [text...]",
		Short: "Rewrite text into cute-speak",
		Long: `owoify rewrites text word by word with an ordered set of substitution rules.

Levels, from lightest to heaviest: basic (owo), medium (uwu), heavy (uvu).
Without arguments every line of stdin is transformed.`,
		Version:           version,
		SilenceUsage:      true,
		Args:              cobra.ArbitraryArgs,
		PersistentPreRunE: a.setup,
		RunE:              a.runTransform,
	}

	root.SetVersionTemplate(fmt.Sprintf("owoify %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to configuration file")
	root.Flags().StringVarP(&a.level, "level", "l", "", "basic|medium|heavy (default from configuration)")

	root.AddCommand(a.serveCmd())
	root.AddCommand(a.healthCheckCmd())
	root.AddCommand(versionCmd())

	return root
}

// setup loads configuration and builds the logger
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	loggerConfig := logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}
	if cfg.Logging.File.Enabled {
		loggerConfig.File = &logger.FileConfig{
			Enabled: true,
			Path:    cfg.Logging.File.Path,
		}
	}

	log, err := logger.New(loggerConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.cfg = cfg
	a.log = log
	return nil
}

// resolveLevel prefers the --level flag over the configured default
func (a *app) resolveLevel() (owoify.Level, error) {
	if a.level == "" {
		return a.cfg.DefaultLevel(), nil
	}
	return owoify.ParseLevel(a.level)
}

func (a *app) runTransform(cmd *cobra.Command, args []string) error {
	defer a.log.Sync()

	level, err := a.resolveLevel()
	if err != nil {
		return err
	}

	log := a.log.WithComponent("cli")
	o := owoify.New(
		owoify.WithWorkers(a.cfg.Owoify.Workers),
		owoify.WithLogger(log.Logger),
	)

	out := cmd.OutOrStdout()
	if len(args) > 0 {
		text := strings.Join(args, " ")
		start := time.Now()
		result := o.Owoify(text, level)
		log.LogTransform("args", level.String(), len(text), len(result), time.Since(start))
		_, err := fmt.Fprintln(out, result)
		return err
	}

	start := time.Now()
	text, result, err := transformInput(cmd.InOrStdin(), out, o, level, a.cfg.Owoify.MaxInputBytes)
	if err != nil {
		return err
	}
	log.LogTransform("stdin", level.String(), len(text), len(result), time.Since(start))
	return nil
}

// transformInput owoifies everything read from r in one pass and writes the
// result without touching line endings.
func transformInput(r io.Reader, w io.Writer, o *owoify.Owoifier, level owoify.Level, limit int64) (string, string, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", "", fmt.Errorf("failed to read input: %w", err)
	}
	if int64(len(data)) > limit {
		return "", "", fmt.Errorf("input exceeds %d bytes", limit)
	}

	text := string(data)
	result := o.Owoify(text, level)
	if _, err := io.WriteString(w, result); err != nil {
		return "", "", err
	}
	return text, result, nil
}

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve owoify over HTTP and WebSocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.log.Sync()

			a.log.Info("Starting owoify",
				zap.String("version", version),
				zap.String("commit", commit),
				zap.String("build_date", date),
				zap.Int("port", a.cfg.Server.Port),
			)

			server.Version = version
			srv, err := server.New(a.cfg, a.log)
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			if err := config.Watch(srv.UpdateConfig, func(err error) {
				a.log.Warn("Ignoring configuration change", zap.Error(err))
			}); err != nil {
				return fmt.Errorf("failed to watch configuration: %w", err)
			}

			serverErrors := make(chan error, 1)
			go func() {
				serverErrors <- srv.Start()
			}()

			select {
			case err := <-serverErrors:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server error: %w", err)
			case <-cmd.Context().Done():
				a.log.Info("Shutdown signal received")

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := srv.Stop(ctx); err != nil {
					return fmt.Errorf("failed to shutdown server gracefully: %w", err)
				}

				a.log.Info("Server shutdown complete")
				return nil
			}
		},
	}
}

func (a *app) healthCheckCmd() *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "health-check",
		Short: "Check that a running server is healthy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" {
				url = fmt.Sprintf("http://localhost:%d/health", a.cfg.Server.Port)
			}
			return healthCheck(cmd.Context(), url, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "health endpoint (default http://localhost:<port>/health)")
	return cmd
}

// healthCheck performs a health check against the running server
func healthCheck(ctx context.Context, url string, out io.Writer) error {
	client := &http.Client{Timeout: 5 * time.Second}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed: HTTP %d", resp.StatusCode)
	}

	_, err = fmt.Fprintln(out, "Health check passed")
	return err
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "owoify %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}
