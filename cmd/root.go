// Package cmd implements CLI commands using cobra framework.
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wireview/wireview/internal/app"
	"github.com/wireview/wireview/internal/config"
	"github.com/wireview/wireview/internal/core"
	"github.com/wireview/wireview/internal/log"
	"github.com/wireview/wireview/internal/ui"
)

var (
	// Global flags
	configFile string
	device     string
	backend    string
)

var rootCmd = &cobra.Command{
	Use:   "wireview",
	Short: "Wireview - live network traffic inspector for the terminal",
	Long: `Wireview captures packets from a network interface, decodes the
L2-L4 layers (Ethernet, ARP, IPv4/IPv6, TCP, UDP, ICMP), and shows the
live traffic in a terminal UI with per-protocol counters.

Keys: q quit, p pause, i switch interface, j/k select, enter detail.`,
	Version:      "0.1.0",
	SilenceUsage: true,
	RunE:         runInspector,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"config file path (default: ./wireview.yml if present)")
	rootCmd.Flags().StringVarP(&device, "interface", "i", "",
		"interface to capture on (default: first active interface)")
	rootCmd.Flags().StringVarP(&backend, "backend", "b", "",
		"capture backend: pcap or afpacket")

	rootCmd.AddCommand(interfacesCmd)
	rootCmd.AddCommand(configCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if device != "" {
		cfg.Capture.Device = device
	}
	if backend != "" {
		cfg.Capture.Backend = backend
	}
	return cfg, nil
}

func runInspector(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := log.Init(cfg.Logger); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	view, err := ui.New()
	if err != nil {
		return err
	}
	defer view.Close()

	err = app.New(cfg, view, view.Keys()).Run()
	if errors.Is(err, core.ErrInterfaceUnavailable) {
		// Print the hint after the terminal is restored.
		view.Close()
		return fmt.Errorf("%w\n(capture usually needs root or CAP_NET_RAW; try `wireview interfaces`)", err)
	}
	return err
}
