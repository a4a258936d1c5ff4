package main

import (
	"fmt"
	"os"

	"store-admin-service/pkg/config"
	"store-admin-service/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "store-admin",
		Short:         "Multi-tenant store catalog administration service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newTokenCommand(),
	)
	return root
}

// setup loads configuration and initializes the logger shared by every command
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	appConfig, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.InitLogger(&logger.LogConfig{
		Level:       appConfig.Log.Level,
		Environment: appConfig.Server.Env,
		ServiceName: appConfig.ServiceName,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return appConfig, log, nil
}
