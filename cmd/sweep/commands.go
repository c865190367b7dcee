package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ignatzorin/conectar-backend/internal/app"
	"github.com/ignatzorin/conectar-backend/internal/config"
	"github.com/ignatzorin/conectar-backend/internal/logger"
	"github.com/ignatzorin/conectar-backend/internal/usecase/notification"
)

var (
	debug      bool
	textFormat bool

	rootCmd = &cobra.Command{
		Use:           "sweep",
		Short:         "Периодические проверки вакансий и рассылка напоминаний",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "подробный вывод")
	rootCmd.PersistentFlags().BoolVar(&textFormat, "text", false, "текстовый формат логов вместо JSON")

	commands := []struct {
		kind  notification.SweepKind
		short string
	}{
		{notification.SweepPendingIdealizer, "Напомнить идеализаторам о кандидатах, ожидающих оценки"},
		{notification.SweepInvitations, "Напомнить о приглашениях без ответа и закрыть просроченные"},
		{notification.SweepCompleteness, "Попросить владельцев дополнить проекты и вакансии без навыков"},
		{notification.SweepAll, "Выполнить все проверки по очереди"},
	}
	for _, c := range commands {
		kind := c.kind
		rootCmd.AddCommand(&cobra.Command{
			Use:   string(kind),
			Short: c.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runSweep(cmd.Context(), kind)
			},
		})
	}
}

func runSweep(parent context.Context, kind notification.SweepKind) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	logger.Init(level)
	if textFormat {
		logger.SetTextFormatter()
	}

	container, err := app.Build(ctx, cfg, nil)
	if err != nil {
		logger.Log.WithError(err).Error("sweep: ошибка инициализации")
		return err
	}
	defer container.Close()

	result, err := container.Sweep.Execute(ctx, kind)
	if err != nil {
		logger.Log.WithError(err).WithField("sweep", kind).Error("sweep: проверка завершилась ошибкой")
		return err
	}

	fmt.Printf("%s: уведомлений %d, просрочено вакансий %d\n", kind, len(result.Notifications), len(result.ExpiredSlots))
	return nil
}
