// Command bag-device runs the Weight Aware Bag firmware core on a host.
//
// The radio is replaced by a TCP link simulator. Centrals connect with
// bag-device's console ("connect") or any client speaking the link frames.
// The first central to connect becomes the owner; every other central is
// disconnected.
//
// Usage:
//
//	bag-device [flags]
//
// Flags:
//
//	-config string        Configuration file path (YAML)
//	-data-dir string      Storage partition directory (default "bag-data")
//	-ephemeral            Keep the trust record in memory only
//	-listen string        Link simulator listen address (default "127.0.0.1:7430")
//	-mdns                 Advertise the link simulator via mDNS (default true)
//	-log-level string     Log level: debug, info, warn, error (default "info")
//	-protocol-log string  Write a protocol capture to this .blog file
//	-interactive          Start the interactive console
//
// Examples:
//
//	# Start with a persistent trust record
//	bag-device -data-dir /var/lib/bag
//
//	# Start a throwaway device and pair from the console
//	bag-device -ephemeral -mdns=false -interactive
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/weightaware/bag-go/cmd/bag-device/interactive"
	"github.com/weightaware/bag-go/pkg/discovery"
	"github.com/weightaware/bag-go/pkg/log"
	"github.com/weightaware/bag-go/pkg/motion"
	"github.com/weightaware/bag-go/pkg/persistence"
	"github.com/weightaware/bag-go/pkg/service"
)

func main() {
	config, err := loadConfig(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(2)
	}

	if err := run(config); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(config Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The console owns the terminal, so logs go through it.
	var console *interactive.Console
	var logOutput io.Writer = os.Stderr
	if config.Interactive {
		var err error
		console, err = interactive.New()
		if err != nil {
			return err
		}
		defer console.Close()
		logOutput = console.Stdout()
	}

	level, _ := parseLogLevel(config.LogLevel)
	logger := slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{Level: level}))
	logger.Info("Weight Aware Bag", "name", config.DeviceName, "listen", config.ListenAddress)

	protocolLogger, closeProtocolLog, err := setupProtocolLog(config, logger)
	if err != nil {
		return err
	}
	defer closeProtocolLog()

	partition, err := openPartition(config, logger)
	if err != nil {
		return err
	}

	svcConfig := service.DefaultDeviceConfig()
	svcConfig.ListenAddress = config.ListenAddress
	svcConfig.DeviceName = config.DeviceName
	svcConfig.ConnParams = config.ConnParams
	svcConfig.Supervision = config.Supervision
	svcConfig.Logger = logger
	svcConfig.ProtocolLogger = protocolLogger

	svc, err := service.NewDeviceService(partition, svcConfig)
	if err != nil {
		return err
	}

	if config.MDNS.Enabled {
		advertiser, err := discovery.NewMDNSAdvertiser(config.MDNS.AdvertiserConfig)
		if err != nil {
			return err
		}
		svc.SetAdvertiser(advertiser)
	}

	sensor := motion.NewSimSensor(config.Motion.Config)
	sensor.Present = config.Motion.Simulated
	svc.SetSensor(sensor)

	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("boot failed: %w", err)
	}

	if console != nil {
		go console.Run(ctx, cancel, svc)
	} else {
		svc.OnEvent(func(e service.Event) {
			if e.Type == service.EventPaired {
				logger.Info("paired", "owner", e.Peer.Describe())
			}
		})
	}

	// Wait for shutdown signal or context cancellation
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received signal", "signal", sig.String())
	case <-ctx.Done():
		// Context was cancelled (e.g., by the console quit command)
	}

	logger.Info("shutting down")
	cancel()
	return svc.Stop()
}

// openPartition mounts the storage partition. A partition that cannot be
// mounted aborts the boot.
func openPartition(config Config, logger *slog.Logger) (persistence.Partition, error) {
	if config.Ephemeral {
		logger.Warn("running ephemeral, the owner is forgotten on exit")
		return persistence.NewMemoryPartition(), nil
	}

	opts := []persistence.FileOption{persistence.WithFileLogger(logger)}
	if config.EraseOnCorrupt {
		opts = append(opts, persistence.WithEraseOnCorrupt())
	}
	partition, err := persistence.MountFilePartition(config.DataDir, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to mount storage: %w", err)
	}
	logger.Debug("storage mounted", "root", partition.Root())
	return partition, nil
}

// setupProtocolLog returns the protocol logger and a function closing it.
// At debug level events are also written to the operational log.
func setupProtocolLog(config Config, logger *slog.Logger) (log.Logger, func(), error) {
	var loggers []log.Logger
	closeFn := func() {}

	if config.ProtocolLog != "" {
		fileLogger, err := log.NewFileLogger(config.ProtocolLog)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open protocol log: %w", err)
		}
		loggers = append(loggers, fileLogger)
		closeFn = func() {
			if err := fileLogger.Close(); err != nil {
				logger.Warn("failed to close protocol log", "error", err)
			}
		}
		logger.Info("protocol log enabled", "path", config.ProtocolLog)
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		loggers = append(loggers, log.NewSlogAdapter(logger))
	}

	switch len(loggers) {
	case 0:
		return nil, closeFn, nil
	case 1:
		return loggers[0], closeFn, nil
	default:
		return log.NewMultiLogger(loggers...), closeFn, nil
	}
}
