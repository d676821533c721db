package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/analytical-sim/analytical-sim/netsim"
	"github.com/analytical-sim/analytical-sim/netsim/workload"
)

var (
	networkConfiguration string  // Path to the network configuration document (JSON or YAML)
	logLevel             string  // Log verbosity level
	runName              string  // Label echoed in the run report
	seed                 int64   // Seed for synthetic traffic generation
	commScale            float64 // Multiplier applied to message sizes
	injectionScale       float64 // Multiplier applied to the injection rate

	// Synthetic traffic driver flags
	pattern           string  // Traffic pattern (uniform, neighbor, alltoall)
	messages          int     // Message count (full rounds for alltoall)
	rate              float64 // Mean injections per simulated time unit
	messageBytes      float64 // Average message size in bytes
	messageBytesStdev float64 // Stddev of message size
	messageBytesMin   float64 // Min message size
	messageBytesMax   float64 // Max message size
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "analytical-sim",
	Short: "Analytical congestion-unaware network simulator for multi-NPU interconnects",
}

// runCmd loads the network configuration, assembles the simulation, fires
// the synthetic workload, and drains the event queue.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the network simulation",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if networkConfiguration == "" {
			logrus.Fatalf("Network configuration file path not given")
		}

		cfg, err := netsim.LoadConfig(networkConfiguration)
		if err != nil {
			logrus.Fatalf("Network configuration rejected: %v", err)
		}

		sim, err := netsim.NewSimulation(cfg)
		if err != nil {
			logrus.Fatalf("Failed to build simulation: %v", err)
		}

		gen, err := workload.NewGenerator(workload.Config{
			Pattern:           workload.Pattern(pattern),
			Messages:          messages,
			Rate:              rate,
			Seed:              seed,
			MessageBytes:      messageBytes,
			MessageBytesStdev: messageBytesStdev,
			MessageBytesMin:   messageBytesMin,
			MessageBytesMax:   messageBytesMax,
			CommScale:         commScale,
			InjectionScale:    injectionScale,
		})
		if err != nil {
			logrus.Fatalf("Invalid workload: %v", err)
		}

		logrus.Infof("Starting run %q: topology=%s npus=%d dimensions=%d pattern=%s messages=%d",
			runName, cfg.TopologyName, cfg.NPUsCount(), cfg.DimensionsCount, pattern, messages)

		metrics := netsim.NewMetrics(runName)
		gen.Fire(sim, metrics)

		startTime := time.Now()
		finalTime := sim.Run()
		metrics.Print(finalTime, time.Since(startTime))

		logrus.Info("Simulation complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&networkConfiguration, "network-configuration", "", "Network configuration file (JSON or YAML)")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&runName, "run-name", "unnamed run", "Run name")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for synthetic traffic generation")
	runCmd.Flags().Float64Var(&commScale, "comm-scale", 1.0, "Communication scale (message size multiplier)")
	runCmd.Flags().Float64Var(&injectionScale, "injection-scale", 1.0, "Injection scale (rate multiplier)")

	runCmd.Flags().StringVar(&pattern, "pattern", "uniform", "Traffic pattern (uniform, neighbor, alltoall)")
	runCmd.Flags().IntVar(&messages, "messages", 100, "Number of messages (full rounds for alltoall)")
	runCmd.Flags().Float64Var(&rate, "rate", 0.001, "Mean injections per simulated time unit")
	runCmd.Flags().Float64Var(&messageBytes, "message-bytes", 65536, "Average message size in bytes")
	runCmd.Flags().Float64Var(&messageBytesStdev, "message-bytes-stdev", 16384, "Stddev message size in bytes")
	runCmd.Flags().Float64Var(&messageBytesMin, "message-bytes-min", 64, "Min message size in bytes")
	runCmd.Flags().Float64Var(&messageBytesMax, "message-bytes-max", 1048576, "Max message size in bytes")

	rootCmd.AddCommand(runCmd)
}
