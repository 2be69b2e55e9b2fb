package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the endpoint, wire schema, size limit, dispatch and
watch settings.

Settings are stored in config.toml inside the configuration directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting by its dotted key.

Run 'cliprelay settings keys' for the list of keys.

Examples:
  cliprelay settings set endpoint.base_url http://192.168.1.10:8080
  cliprelay settings set gate.threshold_bytes 500000
  cliprelay settings set watch.mode spool`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List settable keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

var settingsSchemaCmd = &cobra.Command{
	Use:   "schema [version]",
	Short: "Select the wire schema",
	Long: `Select the wire schema used to deliver envelopes.

Available schemas:
  v1          - POST /api/v1/ClipboardItem with time, text, hash and data
  v2          - POST /api/v2/Item with time and data
  v2-urlpath  - POST /api/v2/Item{time} with data

Without an argument the schema is chosen from a list.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsSchema,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsSchemaCmd)
	rootCmd.AddCommand(settingsCmd)
}

func settingsService() (*Services, error) {
	s, err := requireServices()
	if err != nil {
		return nil, err
	}
	if s.Settings == nil {
		return nil, errors.New("settings service not configured")
	}
	return s, nil
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	s, err := settingsService()
	if err != nil {
		return err
	}

	settings, err := s.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Endpoint]")
	cmd.Printf("  Base URL: %s\n", settings.Endpoint.BaseURL)
	cmd.Printf("  Schema: %s\n", settings.Endpoint.Schema.Description())
	cmd.Printf("  Request URL: %s\n", settings.Endpoint.URL(""))
	cmd.Printf("  Timeout: %s\n", settings.Endpoint.Timeout)
	if settings.Endpoint.InsecureSkipVerify {
		cmd.Println("  TLS verification: disabled")
	}
	cmd.Println()

	cmd.Println("[Gate]")
	cmd.Printf("  Threshold: %d bytes\n", settings.Gate.ThresholdBytes)
	cmd.Println()

	cmd.Println("[Dispatch]")
	cmd.Printf("  Queue size: %d\n", settings.Dispatch.QueueSize)
	if settings.Dispatch.RatePerSecond > 0 {
		cmd.Printf("  Rate: %g/s (burst %d)\n", settings.Dispatch.RatePerSecond, settings.Dispatch.Burst)
	} else {
		cmd.Println("  Rate: unlimited")
	}
	cmd.Println()

	cmd.Println("[Timestamp]")
	cmd.Printf("  Missing copy time: %s\n", settings.Timestamp.Missing)
	cmd.Println()

	cmd.Println("[History]")
	cmd.Printf("  Backend: %s\n", settings.History.Backend)
	cmd.Printf("  Keep: %d\n", settings.History.Keep)
	cmd.Println()

	cmd.Println("[Watch]")
	cmd.Printf("  Mode: %s\n", settings.Watch.Mode)
	switch settings.Watch.Mode {
	case domain.WatchSpool:
		cmd.Printf("  Spool directory: %s\n", settings.Watch.SpoolDir)
	default:
		cmd.Printf("  Interval: %s\n", settings.Watch.Interval.Round(time.Millisecond))
	}
	cmd.Println()

	if err := s.Settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'cliprelay settings set <key> <value>' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	s, err := settingsService()
	if err != nil {
		return err
	}

	if err := s.Settings.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s = %s\n", args[0], args[1])

	if err := s.Settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	}
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	s, err := settingsService()
	if err != nil {
		return err
	}
	for _, key := range s.Settings.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runSettingsSchema(cmd *cobra.Command, args []string) error {
	s, err := settingsService()
	if err != nil {
		return err
	}

	var selected domain.SchemaVersion
	if len(args) == 1 {
		selected = domain.SchemaVersion(args[0])
	} else {
		schemas := domain.AllSchemas()
		cmd.Println("Select Wire Schema")
		cmd.Println("------------------")
		for i, schema := range schemas {
			cmd.Printf("  %d. %s\n", i+1, schema.Description())
		}
		cmd.Print("\nEnter choice: ")
		idx := parseChoice(readLine(bufio.NewReader(cmd.InOrStdin())), len(schemas), 0)
		if idx == 0 {
			return errors.New("invalid selection")
		}
		selected = schemas[idx-1]
	}

	if err := s.Settings.SetSchema(selected); err != nil {
		return fmt.Errorf("failed to set schema: %w", err)
	}
	cmd.Printf("Wire schema set to: %s\n", selected.Description())
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}
