package main

import (
	"fmt"

	"github.com/St1cky1/task-calendar/migrations"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Применить или откатить миграции схемы",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if len(args) == 1 && args[0] == "down" {
				if err := migrations.Down(cfg.DB.DSN()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "✅ Миграции откачены")
				return nil
			}

			if err := migrations.Up(cfg.DB.DSN()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✅ Миграции выполнены успешно")
			return nil
		},
	}
}
