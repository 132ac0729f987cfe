package main

import (
	"context"
	"fmt"

	"github.com/hireai/waitlist-manager/config"
	"github.com/hireai/waitlist-manager/internal/store"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply MySQL migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("cannot load a config %v", err.Error())
		}
		if cfg.Storage.Type != config.StorageMySQL {
			return fmt.Errorf("migrations only apply to mysql storage, got %q", cfg.Storage.Type)
		}
		cfg.DB.Automigrate = true
		ms, err := store.New(context.Background(), cfg.DB)
		if err != nil {
			return err
		}
		ms.Close()
		return nil
	},
}
