package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wheelease/wheelease/internal/common/config"
	"github.com/wheelease/wheelease/internal/common/logger"
)

var rootCmd = &cobra.Command{
	Use:   "wheelease",
	Short: "Vehicle rental management",
	Long:  "Wheelease manages a vehicle fleet, customers, the rental ledger and read-side reports.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "configs/rental-service.json", "path to the JSON config file")
	viper.BindPFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(reportCmd)
}

// bootstrap 加载配置并初始化日志，三个子命令共用。
func bootstrap() (*config.Config, logger.Logger, error) {
	cfg, err := config.LoadConfig(viper.GetString("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init logger: %w", err)
	}
	return cfg, log, nil
}
