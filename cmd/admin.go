package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"visitor-management/config"
	"visitor-management/seeder"
	"visitor-management/services"
)

func newCreateAdminCmd() *cobra.Command {
	var seed config.AdminSeed

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create the first admin account if none exists",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}

			st, err := openStores(cmd.Context(), cfg, false, log)
			if err != nil {
				return err
			}
			defer st.Close()

			auth, _, err := newAuthService(cfg, st.users, services.Runtime{Logger: log, Location: cfg.Location})
			if err != nil {
				return err
			}
			if err := seeder.SeedAdmin(auth, seed, log); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "done")
			return nil
		},
	}

	cmd.Flags().StringVar(&seed.Name, "name", "Administrator", "admin display name")
	cmd.Flags().StringVar(&seed.Email, "email", "", "admin email")
	cmd.Flags().StringVar(&seed.Password, "password", "", "admin password (min 8 chars, one uppercase)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
