package main

import (
	"os"

	"cosmossdk.io/log"
)

func main() {
	home := resolveNodeHome(os.Args[1:])
	metricsPort, healthPort := loadTelemetryPorts(home)

	StartMetricsServer(metricsPort, log.NewLogger(os.Stderr))

	rootCmd := NewRootCmd(home, healthPort)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
