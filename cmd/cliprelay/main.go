// Command cliprelay uploads clipboard items to an HTTP endpoint.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/cliprelay/internal/adapters/driven/clipboard/system"
	"github.com/custodia-labs/cliprelay/internal/adapters/driven/codec/cbor"
	"github.com/custodia-labs/cliprelay/internal/adapters/driven/config/file"
	"github.com/custodia-labs/cliprelay/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cliprelay/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/cliprelay/internal/adapters/driven/transport/httpclient"
	"github.com/custodia-labs/cliprelay/internal/adapters/driving/cli"
	"github.com/custodia-labs/cliprelay/internal/core/domain"
	"github.com/custodia-labs/cliprelay/internal/core/ports/driven"
	"github.com/custodia-labs/cliprelay/internal/core/ports/driving"
	"github.com/custodia-labs/cliprelay/internal/core/services"
	"github.com/custodia-labs/cliprelay/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap wires the services used by every command.
func bootstrap(configDir string) (*cli.Services, error) {
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		logger.Warn("settings: %v", err)
	}

	packer, err := cbor.NewPacker()
	if err != nil {
		return nil, fmt.Errorf("creating packer: %w", err)
	}

	history, closeHistory, err := openHistory(*settings, configDir)
	if err != nil {
		return nil, err
	}

	transport := httpclient.New(httpclient.ConfigFromSettings(*settings, "cliprelay/"+version))
	relay := services.NewRelayService(
		services.RelayConfigFromSettings(*settings),
		services.NewItemEncoder(packer),
		services.NewEnvelopeBuilder(settings.Timestamp.Missing),
		transport,
		history,
	)

	queueSize := settings.Dispatch.QueueSize
	return &cli.Services{
		Settings:  settingsService,
		Relay:     relay,
		History:   services.NewHistoryService(history),
		Packer:    packer,
		Clipboard: system.NewHost(),
		NewDispatcher: func(onOutcome func(domain.Outcome)) driving.Dispatcher {
			d := services.NewDispatchService(relay, queueSize)
			d.OnOutcome(onOutcome)
			return d
		},
		Close: closeHistory,
	}, nil
}

// openHistory opens the outcome store selected by settings.
func openHistory(settings domain.AppSettings, configDir string) (driven.OutcomeStore, func() error, error) {
	if settings.History.Backend != domain.HistorySQLite {
		return memory.NewOutcomeStore(), func() error { return nil }, nil
	}

	store, err := sqlite.NewStore(filepath.Join(configDir, "data"))
	if err != nil {
		return nil, nil, fmt.Errorf("opening history: %w", err)
	}
	logger.Debug("history: %s", store.Path())
	return store.OutcomeStore(), store.Close, nil
}
