// Package cli provides the cobra command tree for cliprelay.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
	"github.com/custodia-labs/cliprelay/internal/core/ports/driven"
	"github.com/custodia-labs/cliprelay/internal/core/ports/driving"
	"github.com/custodia-labs/cliprelay/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose   bool
	configDir string
)

// Services holds what commands run against. It is built once per process
// by the bootstrap function after flags are parsed.
type Services struct {
	Settings driving.SettingsService
	Relay    driving.Relay
	History  driving.HistoryService

	// Packer decodes spool files and validates received payloads.
	Packer driven.ItemPacker

	// Clipboard reads the system clipboard. Nil when unsupported.
	Clipboard driven.ClipboardHost

	// NewDispatcher creates a dispatcher that reports every outcome to
	// onOutcome, which may be nil.
	NewDispatcher func(onOutcome func(domain.Outcome)) driving.Dispatcher

	// Close releases stores. May be nil.
	Close func() error
}

// Bootstrap builds services for a configuration directory. An empty
// directory selects the default location.
type Bootstrap func(configDir string) (*Services, error)

var (
	bootstrap Bootstrap
	services  *Services
)

var errNotConfigured = errors.New("services not configured")

var rootCmd = &cobra.Command{
	Use:   "cliprelay",
	Short: "Upload clipboard items to an HTTP endpoint",
	Long: `cliprelay forwards clipboard items to a remote HTTP endpoint.

Each item is checked against a size limit, packed with all of its formats,
wrapped in a versioned JSON envelope and posted once. Items at or over the
limit are skipped.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug and info logs")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.cliprelay)")
}

// SetBootstrap registers the function that builds services.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices injects ready-made services, bypassing bootstrap.
func SetServices(s *Services) {
	services = s
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if services != nil || bootstrap == nil || !needsServices(cmd) {
		return nil
	}

	s, err := bootstrap(configDir)
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	services = s
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if services == nil || services.Close == nil {
		return nil
	}
	err := services.Close()
	services.Close = nil
	return err
}

// needsServices is false for commands that only print static text.
func needsServices(cmd *cobra.Command) bool {
	if cmd == versionCmd {
		return false
	}
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd:
			return false
		}
	}
	return true
}

// requireServices returns the services or an error if bootstrap did not run.
func requireServices() (*Services, error) {
	if services == nil {
		return nil, errNotConfigured
	}
	return services, nil
}
