package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"visitor-management/pkg/credential"
	"visitor-management/pkg/metrics"
	"visitor-management/pkg/photostore"
	"visitor-management/router"
	"visitor-management/seeder"
	"visitor-management/services"
)

type serveOptions struct {
	inMemory bool
	seedDemo bool
}

func newServeCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	cmd.Flags().BoolVar(&opts.inMemory, "in-memory", false, "use an in-memory store instead of MongoDB")
	cmd.Flags().BoolVar(&opts.seedDemo, "seed-demo", false, "create demo receptionist, guard and visitor accounts")
	return cmd
}

func runServe(ctx context.Context, opts serveOptions) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	st, err := openStores(ctx, cfg, opts.inMemory, log)
	if err != nil {
		return err
	}
	defer st.Close()

	photos, err := photostore.New(cfg.UploadPath, cfg.MaxPhotoBytes)
	if err != nil {
		return fmt.Errorf("failed to prepare upload directory: %w", err)
	}

	stats := metrics.New()
	rt := newRuntime(cfg, log, stats)
	issuer := credential.NewIssuer(cfg.PasscodeLength)

	auth, maker, err := newAuthService(cfg, st.users, rt)
	if err != nil {
		return err
	}

	if err := seeder.SeedAdmin(auth, cfg.Admin, log); err != nil {
		return err
	}
	if opts.seedDemo {
		if err := seeder.SeedDemoUsers(st.users, log); err != nil {
			return err
		}
	}

	app := router.NewApp(cfg, log, os.Stdout)
	router.SetupRoutes(app, router.Dependencies{
		Auth:         auth,
		Visits:       services.NewVisitService(st.visits, st.preApprovals, st.users, issuer, rt),
		PreApprovals: services.NewPreApprovalService(st.preApprovals, issuer, rt),
		Users:        services.NewUserService(st.users, photos, rt),
		Tokens:       maker,
		Metrics:      stats,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			"port", cfg.Port,
			"env", cfg.AppEnv,
			"docs", fmt.Sprintf("http://localhost:%s/docs/index.html", cfg.Port),
			"origins", cfg.AllowedOrigins,
		)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
