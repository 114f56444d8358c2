package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meinhoongagan/booking-marketplace/config"
	"github.com/meinhoongagan/booking-marketplace/cron"
	"github.com/meinhoongagan/booking-marketplace/db"
	"github.com/meinhoongagan/booking-marketplace/logging"
	"github.com/meinhoongagan/booking-marketplace/redis"
	"github.com/meinhoongagan/booking-marketplace/repository"
	"github.com/meinhoongagan/booking-marketplace/routes"
	"github.com/meinhoongagan/booking-marketplace/services"
	"github.com/meinhoongagan/booking-marketplace/utils"
	"github.com/rs/zerolog"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	if closer != nil {
		defer closer.Close()
	}

	if err := run(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		return fmt.Errorf("booking timezone %q: %w", cfg.Booking.Timezone, err)
	}

	conn, err := db.Open(cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close(conn)

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(conn, cfg.Database.UniqueBookingSlots); err != nil {
			return err
		}
		log.Info().Bool("unique_slots", cfg.Database.UniqueBookingSlots).Msg("database migrated")
	}

	var revoked services.RevocationStore = redis.NewMemoryBlacklist()
	if cfg.Redis.Enabled {
		client, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		revoked = redis.NewTokenBlacklist(client)
		log.Info().Str("address", cfg.Redis.Address).Msg("token blacklist backed by redis")
	}

	var notifier services.Notifier = services.NopNotifier{}
	if cfg.SMTP.Enabled {
		notifier = utils.NewMailer(cfg.SMTP)
	}

	var uploader services.Uploader
	if cfg.Cloudinary.Enabled {
		u, err := utils.NewCloudinaryUploader(cfg.Cloudinary)
		if err != nil {
			return err
		}
		uploader = u
	}

	repo := repository.New(conn)
	tokens := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.RefreshTTL)
	bookings := services.NewBookingService(repo, notifier, log, services.BookingOptions{
		Location:    loc,
		AlignGrid:   cfg.Booking.SlotGridEnforced(),
		UniqueSlots: cfg.Database.UniqueBookingSlots,
	})

	app := routes.New(routes.Deps{
		Config:   cfg,
		Log:      log,
		Tokens:   tokens,
		Auth:     services.NewAuthService(repo, tokens, revoked, log),
		Accounts: services.NewAccountService(repo, uploader, log),
		Catalog:  services.NewCatalogService(repo, log),
		Bookings: bookings,
		Feedback: services.NewFeedbackService(repo, log, cfg.Feedback.RequireCompleted),
		Schedule: services.NewScheduleService(repo, loc, cfg.Schedule.HorizonDays),
		Ping:     func(ctx context.Context) error { return db.Ping(ctx, conn) },
	})

	if cfg.Reminders.Enabled {
		scheduler, err := cron.New(cfg.Reminders, repo, notifier, loc, log)
		if err != nil {
			return err
		}
		scheduler.Start()
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			scheduler.Stop(stopCtx)
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		log.Info().Str("addr", addr).Str("env", cfg.App.Environment).Msg("server started")
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	return app.ShutdownWithTimeout(10 * time.Second)
}
