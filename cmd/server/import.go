package main

import (
	"fmt"
	"os"

	"github.com/St1cky1/task-calendar/internal/entity"
	"github.com/St1cky1/task-calendar/internal/infrastructure/client"
	"github.com/St1cky1/task-calendar/internal/repository"
	"github.com/St1cky1/task-calendar/internal/service"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	var calendar string

	cmd := &cobra.Command{
		Use:   "import [file.yaml]",
		Short: "Импортировать задачи из YAML в календарь",
		Long: `Импортирует задачи из YAML-документа вида:

  tasks:
    - title: Quarterly report
      status: in-progress
      start: 2026-02-01
      end: 2026-02-10
      tags: [work]
      deadlines:
        - title: Draft
          date: 2026-02-05`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("ошибка чтения файла: %w", err)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg.Log)
			ctx := cmd.Context()

			pg, err := client.NewPostgresClient(ctx, cfg.DB.DSN())
			if err != nil {
				return fmt.Errorf("ошибка подключения к БД: %w", err)
			}
			defer pg.Close()

			gen := entity.SystemGenerator()
			svc := service.NewCalendarService(repository.NewCalendarRepository(pg.Pool, gen), nil, nil, gen, logger)

			n, err := svc.Import(ctx, calendar, data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Импортировано задач: %d (календарь %s)\n", n, calendar)
			return nil
		},
	}

	cmd.Flags().StringVar(&calendar, "calendar", "default", "имя календаря")
	return cmd
}
