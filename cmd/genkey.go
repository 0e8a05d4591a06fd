package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	util "visitor-management/pkg/utils"
)

func newGenKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genkey",
		Short: "Print a new PASETO_SECRET",
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := util.GenerateBase64Key(32)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
}
