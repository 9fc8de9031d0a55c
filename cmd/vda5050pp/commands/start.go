package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cmraaron/libvda5050pp-sub001/internal/logger"
	"github.com/cmraaron/libvda5050pp-sub001/internal/telemetry"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/config"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/handle"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/metrics"

	// Import the Prometheus metrics implementation to register its init().
	_ "github.com/cmraaron/libvda5050pp-sub001/pkg/metrics/prometheus"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/transport/memtransport"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the vehicle runtime",
	Long: `Start wires the configured AGVDescription, driver callbacks, and the
StateUpdateTimer into a Handle.

No MQTT transport ships with this command (it is a caller-supplied
interface, per this runtime's scope): start uses an in-process recording
Transport, suitable for smoke-testing the order logic and state reporting
without a broker. Integrators embed pkg/handle directly and supply their
own Transport to speak VDA 5050 over MQTT.`,
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(GetConfigFile(), cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := InitLogger(cfg); err != nil {
		return err
	}

	if cfg.Metrics.Enabled {
		metrics.Init()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		ServiceName:    "vda5050pp",
		ServiceVersion: Version,
		SampleRate:     cfg.Telemetry.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			logger.Error("failed to shut down telemetry", "error", err)
		}
	}()

	tr := memtransport.New()
	h := handle.New(cfg.AGV, handle.Drivers{}, tr, cfg.UpdatePeriod.Heartbeat, metrics.NewRuntimeMetrics())
	defer h.Close()

	logger.Info("vehicle runtime started", "agv_id", cfg.AGV.AGVID)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	signal.Stop(sigChan)
	logger.Info("shutdown signal received")

	if err := tr.PublishConnection(ctx, false); err != nil {
		logger.Error("failed to publish final disconnect", "error", err)
	}

	return nil
}
