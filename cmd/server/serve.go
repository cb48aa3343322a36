package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/St1cky1/task-calendar/internal/api"
	"github.com/St1cky1/task-calendar/internal/api/handlers"
	grpcapi "github.com/St1cky1/task-calendar/internal/api/grpc"
	"github.com/St1cky1/task-calendar/internal/entity"
	"github.com/St1cky1/task-calendar/internal/infrastructure/client"
	"github.com/St1cky1/task-calendar/internal/repository"
	"github.com/St1cky1/task-calendar/internal/service"
	"github.com/St1cky1/task-calendar/internal/worker"
	"github.com/St1cky1/task-calendar/migrations"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/hashicorp/go-multierror"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP и gRPC серверы и воркер событий",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	var wg sync.WaitGroup

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stdout, cfg.Log)

	// Запускаем миграции
	if err := migrations.Up(cfg.DB.DSN()); err != nil {
		return err
	}
	logger.Info("миграции выполнены")

	// Подключаемся к БД
	pg, err := client.NewPostgresClient(ctx, cfg.DB.DSN())
	if err != nil {
		return fmt.Errorf("ошибка подключения к БД: %w", err)
	}
	logger.Info("подключение к БД установлено")

	gen := entity.SystemGenerator()
	checks := map[string]handlers.HealthChecker{"postgres": pg}

	// Репозитории; кеш Redis подключается, только если он доступен
	var calendars repository.ICalendarRepository = repository.NewCalendarRepository(pg.Pool, gen)
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = client.NewRedisClient(ctx, cfg.Redis.Addr)
		if err != nil {
			logger.Warn("Redis недоступен, работаем без кеша", "error", err)
		} else {
			calendars = repository.NewCachedCalendarRepository(calendars, rdb, cfg.Redis.TTL, logger)
			checks["redis"] = client.RedisHealth{Client: rdb}
			logger.Info("кеш календарей в Redis включен", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
		}
	}
	events := repository.NewCalendarEventRepository(pg.Pool)

	// Подключаемся к RabbitMQ
	mq, err := client.NewRabbitMQClient(cfg.RabbitMQ.URL(), cfg.RabbitMQ.Queue, logger)
	if err != nil {
		pg.Close()
		return fmt.Errorf("ошибка подключения к RabbitMQ: %w", err)
	}
	checks["rabbitmq"] = mq
	logger.Info("подключение к RabbitMQ установлено", "queue", cfg.RabbitMQ.Queue)

	svc := service.NewCalendarService(calendars, events, mq, gen, logger)

	// Воркер сохраняет события календарей
	eventWorker := worker.NewEventWorker(cfg.RabbitMQ.URL(), cfg.RabbitMQ.Queue, events, logger)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	wg.Add(1)
	go func() {
		defer wg.Done()
		eventWorker.Start(workerCtx)
	}()

	// gRPC
	grpcServer := grpcapi.NewGRPCServer(svc, logger)
	go func() {
		if err := grpcServer.Start(cfg.GRPC.Port); err != nil {
			logger.Error("gRPC сервер остановлен с ошибкой", "error", err)
		}
	}()

	// HTTP
	httpServer := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: api.NewRouter(svc, checks, logger),
	}
	go func() {
		logger.Info("HTTP сервер запущен", "addr", cfg.HTTP.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP сервер остановлен с ошибкой", "error", err)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			// порядок важен: сначала входящие запросы, потом воркер, потом соединения
			"task-calendar": func(ctx context.Context) error {
				logger.Info("завершение работы...")
				var result *multierror.Error
				result = multierror.Append(result, httpServer.Shutdown(ctx))
				grpcServer.Stop()

				workerCancel()
				wg.Wait()

				result = multierror.Append(result, mq.Close())
				if rdb != nil {
					result = multierror.Append(result, rdb.Close())
				}
				pg.Close()
				return result.ErrorOrNil()
			},
		},
	)

	if code := <-wait; code != 0 {
		return fmt.Errorf("завершение с кодом %d", code)
	}
	logger.Info("приложение завершено корректно")
	return nil
}
