package app

import (
	"context"
	"net/http"
	"time"

	haas "github.com/iwtcode/haasAdapter"
	"github.com/iwtcode/haasAdapter/internal/adapters/handlers"
	"github.com/iwtcode/haasAdapter/internal/config"
	"github.com/iwtcode/haasAdapter/internal/interfaces"
	"github.com/iwtcode/haasAdapter/internal/middleware/logging"
	"github.com/iwtcode/haasAdapter/internal/middleware/swagger"
	"github.com/iwtcode/haasAdapter/internal/services/haas_service"
	"github.com/iwtcode/haasAdapter/internal/services/host"
	"github.com/iwtcode/haasAdapter/internal/services/kafka"
	"github.com/iwtcode/haasAdapter/internal/usecases"

	"go.uber.org/fx"
)

// New создает новый экземпляр fx.App
func New() *fx.App {
	return fx.New(
		ConfigModule,
		LoggingModule,
		ClientModule,
		ProducerModule,
		ServiceModule,
		UsecaseModule,
		HttpServerModule,
		// Фоновый сбор, если интервал задан в конфигурации
		fx.Invoke(InvokeCollector),
	)
}

// --- Модули FX ---

var ConfigModule = fx.Module("config_module",
	fx.Provide(config.LoadConfiguration),
)

func ProvideLogger(lc fx.Lifecycle, cfg *config.AppConfig) *logging.Logger {
	loggerCfg := &logging.Config{
		Enabled:    cfg.Logging.Enable,
		Level:      cfg.Logging.Level,
		LogsDir:    cfg.Logging.LogsDir,
		SavingDays: uint(cfg.Logging.SavingDays),
	}
	logger := logging.NewLogger(loggerCfg, "HaasAdapterApp")
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return logger.Close()
		},
	})
	return logger
}

var LoggingModule = fx.Module("logging_module",
	fx.Provide(ProvideLogger),
)

// ProvideClient открывает клиент последовательного порта станка.
func ProvideClient(lc fx.Lifecycle, cfg *config.AppConfig, logger *logging.Logger) (*haas.Client, error) {
	client, err := haas.New(cfg.Haas, haas.WithLogger(logger.WithPrefix("HAAS").Entry()))
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing serial port", "port", cfg.Haas.SerialPort)
			client.Close()
			return nil
		},
	})
	return client, nil
}

var ClientModule = fx.Module("client_module",
	fx.Provide(
		ProvideClient,
		func(c *haas.Client) interfaces.MachineReader { return c },
		func(c *haas.Client) interfaces.MachinePoller { return c },
	),
)

// ProvidePublisher выбирает Kafka или запись в лог и закрывает его при остановке.
func ProvidePublisher(lc fx.Lifecycle, cfg *config.AppConfig, logger *logging.Logger) interfaces.SnapshotPublisher {
	publisher := kafka.NewPublisher(cfg, logger)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return publisher.Close()
		},
	})
	return publisher
}

var ProducerModule = fx.Module("producer_module",
	fx.Provide(ProvidePublisher),
)

func ProvideCollector(poller interfaces.MachinePoller, producer interfaces.SnapshotPublisher, cfg *config.AppConfig, logger *logging.Logger) interfaces.SnapshotCollector {
	return haas_service.NewCollector(poller, producer, cfg.Haas.SerialPort, logger)
}

var ServiceModule = fx.Module("service_module",
	fx.Provide(
		ProvideCollector,
		fx.Annotate(host.NewMonitor, fx.As(new(interfaces.HostMonitor))),
	),
)

var UsecaseModule = fx.Module("usecases_module",
	fx.Provide(usecases.NewUsecases),
)

func NewSwaggerConfig() *swagger.Config {
	return &swagger.Config{
		Enabled: true,
		Path:    "/swagger",
	}
}

var HttpServerModule = fx.Module("http_server_module",
	fx.Provide(
		NewSwaggerConfig,
		handlers.NewHandler,
		handlers.ProvideRouter,
	),
	fx.Invoke(InvokeHttpServer),
)

// InvokeCollector запускает фоновый сбор при старте, если COLLECTION_INTERVAL_MS больше нуля.
func InvokeCollector(lc fx.Lifecycle, cfg *config.AppConfig, usecase interfaces.Usecases, logger *logging.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if cfg.CollectionInterval <= 0 {
				logger.Info("Background collection disabled")
				return nil
			}
			logger.Info("Starting background collection", "interval", cfg.CollectionInterval)
			if err := usecase.StartPolling(cfg.CollectionInterval); err != nil {
				logger.Warn("Failed to start background collection", "error", err)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cfg.CollectionInterval <= 0 {
				return nil
			}
			if err := usecase.StopPolling(); err != nil {
				logger.Debug("Collector was not running on shutdown", "error", err)
			}
			return nil
		},
	})
}

// InvokeHttpServer запускает HTTP-сервер.
func InvokeHttpServer(lc fx.Lifecycle, cfg *config.AppConfig, h http.Handler, logger *logging.Logger) {
	serverAddr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     h,
		ReadTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("HTTP Server is starting", "address", serverAddr)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("Failed to start server", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server...")
			return server.Shutdown(ctx)
		},
	})
}
