package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/orsoie/gallery-service/config"
	kafkactrl "github.com/orsoie/gallery-service/internal/controller/kafka"
	"github.com/orsoie/gallery-service/internal/controller/restapi"
	"github.com/orsoie/gallery-service/internal/infrastructure"
	infrakafka "github.com/orsoie/gallery-service/internal/infrastructure/kafka"
	"github.com/orsoie/gallery-service/internal/infrastructure/listcache"
	"github.com/orsoie/gallery-service/internal/infrastructure/processor"
	"github.com/orsoie/gallery-service/internal/repo/persistent"
	"github.com/orsoie/gallery-service/internal/usecase/gallery"
	"github.com/orsoie/gallery-service/internal/usecase/guest"
	"github.com/orsoie/gallery-service/internal/usecase/thumbnailer"
	"github.com/orsoie/gallery-service/pkg/httpserver"
	"github.com/orsoie/gallery-service/pkg/kafka/consumer"
	"github.com/orsoie/gallery-service/pkg/kafka/producer"
	"github.com/orsoie/gallery-service/pkg/logger"
	"github.com/orsoie/gallery-service/pkg/postgres"
	"github.com/orsoie/gallery-service/pkg/redisclient"
	"github.com/orsoie/gallery-service/pkg/s3client"
)

func Run(cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Logger
	l := logger.New(cfg.Log.Level)

	// Repository

	// s3 (R2 speaks the S3 API)
	s3Ctx, s3Cancel := context.WithTimeout(ctx, cfg.S3.CfgLoadTimeout)
	defer s3Cancel()
	s3c, err := s3client.New(s3Ctx, cfg.S3.Endpoint, cfg.S3.AccessKey, cfg.S3.SecretKey, s3client.Region(cfg.S3.Region))
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - s3client.New: %w", err))
	}
	blobRepo := persistent.NewBlobRepo(s3c, cfg.S3.Bucket)

	// postgres
	pg, err := postgres.New(cfg.PG.URL, postgres.MaxPoolSize(cfg.PG.PoolMax))
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - postgres.New: %w", err))
	}
	defer pg.Close()

	// Listing cache
	var (
		cache infrastructure.ListingCache
		rc    *redisclient.RedisClient
	)
	if cfg.Cache.Backend == "redis" {
		rc, err = redisclient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			l.Fatal(fmt.Errorf("app - Run - redisclient.New: %w", err))
		}
		cache = listcache.NewRedis(rc, cfg.Cache.TTL, l)
	} else {
		cache = listcache.NewMemory(cfg.Cache.TTL)
	}

	// Thumbnail precompute pipeline (optional)
	var (
		tasks           infrastructure.TaskSender
		thumbController *kafkactrl.ThumbnailController
	)
	if cfg.Thumbnails.Enabled {
		kafkaProducer, err := producer.New(ctx, cfg.Kafka.Brokers)
		if err != nil {
			l.Fatal(fmt.Errorf("app - Run - producer.New: %w", err))
		}
		tasks = infrakafka.NewTaskProducer(kafkaProducer, cfg.Kafka.Topic)

		kafkaConsumer, err := consumer.New(ctx, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic)
		if err != nil {
			l.Fatal(fmt.Errorf("app - Run - consumer.New: %w", err))
		}

		thumbnailerUseCase := thumbnailer.New(
			blobRepo,
			processor.New(cfg.Thumbnails.MaxWidth, cfg.Thumbnails.MaxHeight),
		)

		thumbController = kafkactrl.New(
			thumbnailerUseCase,
			infrakafka.NewTaskConsumer(kafkaConsumer),
			l,
			cfg.Thumbnails.CommitTimeout,
			cfg.Thumbnails.ProcessTimeout,
			runtime.NumCPU(),
		)
	}

	// Use-Case
	galleryUseCase := gallery.New(
		blobRepo,
		cache,
		tasks,
		cfg.Gallery.MaxArchiveFiles,
		cfg.Gallery.FetchTimeout,
		l,
	)
	guestUseCase := guest.New(persistent.NewGuestRepo(pg))

	// HTTP Server
	httpServer := httpserver.New(l, httpserver.Port(cfg.HTTP.Port), httpserver.Prefork(cfg.HTTP.UsePreforkMode))
	restapi.NewRouter(httpServer.App, cfg, galleryUseCase, guestUseCase, l)

	// Start Components
	if thumbController != nil {
		err = thumbController.Start(ctx)
		if err != nil {
			l.Fatal(fmt.Errorf("app - Run - thumbController.Start: %w", err))
		}
	}
	httpServer.Start()

	// Waiting Signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		l.Info("app - Run - signal: %s", s.String())
	case err = <-httpServer.Notify():
		l.Error(fmt.Errorf("app - Run - httpServer.Notify: %w", err))
	}

	// Shutdown
	err = httpServer.Shutdown()
	if err != nil {
		l.Error(fmt.Errorf("app - Run - httpServer.Shutdown: %w", err))
	}

	if thumbController != nil {
		tcShutdownCtx, tcShutdownCancel := context.WithTimeout(ctx, cfg.Thumbnails.ShutdownTimeout)
		defer tcShutdownCancel()
		err = thumbController.Shutdown(tcShutdownCtx)
		if err != nil {
			l.Error(fmt.Errorf("app - Run - thumbController.Shutdown: %w", err))
		}
	}

	if tasks != nil {
		err = tasks.Close()
		if err != nil {
			l.Error(fmt.Errorf("app - Run - tasks.Close: %w", err))
		}
	}

	if rc != nil {
		err = rc.Close()
		if err != nil {
			l.Error(fmt.Errorf("app - Run - rc.Close: %w", err))
		}
	}
}
