package main

import (
	"context"
	"fmt"

	"github.com/hireai/waitlist-manager/app"
	"github.com/hireai/waitlist-manager/config"
	"github.com/hireai/waitlist-manager/internal/apisrv/auth"
	"github.com/hireai/waitlist-manager/internal/form"
	"github.com/spf13/cobra"
)

func createAdminCmd() *cobra.Command {
	req := &form.CreateAdminRequest{}
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("cannot load a config %v", err.Error())
			}
			ctx := context.Background()
			rep, err := app.OpenRepository(ctx, cfg)
			if err != nil {
				return err
			}
			defer rep.Close()

			authS, err := auth.New(&cfg.Auth, rep.Admin())
			if err != nil {
				return err
			}
			a, err := authS.CreateAdmin(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s %s (%s)\n", a.Role, a.Email, a.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "admin email")
	cmd.Flags().StringVar(&req.Name, "name", "", "admin display name")
	cmd.Flags().StringVar(&req.Password, "password", "", "admin password")
	cmd.Flags().StringVar(&req.Role, "role", "super_admin", "admin or super_admin")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
