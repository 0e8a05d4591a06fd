// Package cmd wires configuration, storage and services into the CLI.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"visitor-management/config"
	"visitor-management/pkg/metrics"
	"visitor-management/pkg/notifier"
	"visitor-management/pkg/paseto"
	"visitor-management/repository"
	"visitor-management/repository/memory"
	"visitor-management/services"
)

// Execute runs the root command. With no subcommand it serves the API.
func Execute() error {
	serve := newServeCmd()

	root := &cobra.Command{
		Use:           "visitor-management",
		Short:         "Visitor management API: visit requests, pre-approvals and passcode check-in",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	root.Flags().AddFlagSet(serve.Flags())
	root.AddCommand(serve, newCreateAdminCmd(), newGenKeyCmd())

	return root.Execute()
}

// stores is the persistence backend chosen at startup.
type stores struct {
	users        repository.UserRepository
	visits       repository.VisitRepository
	preApprovals repository.PreApprovalRepository
	client       *mongo.Client
}

func (s *stores) Close() {
	config.DisconnectDB(s.client)
}

func openStores(ctx context.Context, cfg *config.AppConfig, inMemory bool, log *slog.Logger) (*stores, error) {
	if inMemory {
		log.Warn("using the in-memory store; data is lost on exit")
		mem := memory.New()
		return &stores{users: mem.Users(), visits: mem.Visits(), preApprovals: mem.PreApprovals()}, nil
	}

	client, err := config.MongoConnect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.DBName)
	if err := config.InitDatabase(ctx, db); err != nil {
		config.DisconnectDB(client)
		return nil, err
	}
	return &stores{
		users:        repository.NewUserRepository(db),
		visits:       repository.NewVisitRepository(db),
		preApprovals: repository.NewPreApprovalRepository(db),
		client:       client,
	}, nil
}

// bootstrap loads the config and installs the process logger.
func bootstrap() (*config.AppConfig, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := config.NewLogger(cfg, os.Stdout)
	slog.SetDefault(log)
	return cfg, log, nil
}

func newRuntime(cfg *config.AppConfig, log *slog.Logger, stats *metrics.Metrics) services.Runtime {
	return services.Runtime{
		Logger:   log,
		Metrics:  stats,
		Notifier: notifier.FromConfig(cfg, log, stats),
		Location: cfg.Location,
	}
}

func newAuthService(cfg *config.AppConfig, users repository.UserRepository, rt services.Runtime) (*services.AuthService, *paseto.Maker, error) {
	maker, err := paseto.NewPasetoMaker(cfg.PasetoSecret, cfg.TokenTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create token maker: %w", err)
	}
	return services.NewAuthService(users, maker, rt), maker, nil
}
