package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wheelease/wheelease/internal/common/discovery"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List healthy service instances registered in Consul",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := bootstrap()
		if err != nil {
			return err
		}

		client, err := discovery.NewConsulClient(cfg.Consul.Host, cfg.Consul.Port)
		if err != nil {
			return fmt.Errorf("failed to connect to Consul: %w", err)
		}
		addrs, err := discovery.Healthy(client, cfg.Server.Name)
		if err != nil {
			return fmt.Errorf("failed to query Consul: %w", err)
		}
		if len(addrs) == 0 {
			fmt.Println("no healthy instances")
			return nil
		}
		for _, addr := range addrs {
			fmt.Println(addr)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
