package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wireview/wireview/internal/netif"
)

var interfacesCmd = &cobra.Command{
	Use:   "interfaces",
	Short: "List capturable network interfaces",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := netif.NewRegistry()
		if err := registry.Refresh(); err != nil {
			return err
		}

		for _, iface := range registry.List() {
			var flags []string
			if iface.Up {
				flags = append(flags, "up")
			}
			if iface.Loopback {
				flags = append(flags, "loopback")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-14s %s\n",
				iface.Name, strings.Join(flags, ","), strings.Join(iface.Addresses, " "))
		}
		return nil
	},
}
