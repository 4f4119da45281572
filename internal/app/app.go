package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/avstrong/zenith/internal/account"
	"github.com/avstrong/zenith/internal/booking"
	"github.com/avstrong/zenith/internal/catalog"
	"github.com/avstrong/zenith/internal/config"
	"github.com/avstrong/zenith/internal/contact"
	"github.com/avstrong/zenith/internal/idgen/random"
	"github.com/avstrong/zenith/internal/idgen/simple"
	"github.com/avstrong/zenith/internal/logger"
	"github.com/avstrong/zenith/internal/migration"
	"github.com/avstrong/zenith/internal/notify"
	"github.com/avstrong/zenith/internal/quote"
	"github.com/avstrong/zenith/internal/storage/memory"
	"github.com/avstrong/zenith/internal/storage/redis"
	"github.com/avstrong/zenith/internal/storage/sqlite"
	"github.com/avstrong/zenith/internal/transport/web"
)

type storage interface {
	Append(ctx context.Context, record *booking.Record) error
	List(ctx context.Context) ([]*booking.Record, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*booking.Record, error)
	Close() error
}

type idGenerator interface {
	GetID(ctx context.Context) (string, error)
}

// App wires the configured storage, pricing and booking services together.
// Both the CLI and the HTTP server run on top of it.
type App struct {
	Conf     config.Config
	L        *logger.Logger
	Catalog  *catalog.Catalog
	Quotes   *quote.Engine
	Bookings *booking.Manager
	Accounts *account.Service
	Contact  *contact.Desk

	storage storage
}

func openStorage(conf config.Config, l *logger.Logger) (storage, error) {
	switch conf.StorageDriver {
	case "memory":
		return memory.New(memory.Config{L: l}), nil
	case "sqlite":
		return sqlite.Open(sqlite.Config{L: l, Path: conf.SQLitePath})
	case "redis":
		return redis.New(redis.Config{
			L:        l,
			Addr:     conf.RedisAddr,
			Password: conf.RedisPassword,
			DB:       conf.RedisDB,
			Key:      conf.BookingsKey,
		})
	}

	return nil, fmt.Errorf("storage driver %q: %w", conf.StorageDriver, config.ErrUnknownDriver)
}

func newIDGenerator(name string) idGenerator {
	if name == "sequential" {
		return simple.New()
	}

	return random.New()
}

func New(conf config.Config, l *logger.Logger) (*App, error) {
	store, err := openStorage(conf, l)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", conf.StorageDriver, err)
	}

	l.With(zap.String("driver", conf.StorageDriver)).LogInfo("Booking storage is ready")

	c := catalog.New()
	q := quote.New(c)

	mailer := notify.New(notify.Config{
		L:        l,
		Host:     conf.SMTPHost,
		Port:     conf.SMTPPort,
		Username: conf.SMTPUser,
		Password: conf.SMTPPassword,
		From:     conf.SMTPFrom,
	})

	return &App{
		Conf:    conf,
		L:       l,
		Catalog: c,
		Quotes:  q,
		Bookings: booking.New(booking.Config{
			L:           l,
			Storage:     store,
			IDGenerator: newIDGenerator(conf.IDGenerator),
			Catalog:     c,
			Quotes:      q,
			Notifier:    mailer,
			SubmitDelay: conf.SubmitDelay,
		}),
		Accounts: account.New(account.Config{L: l, Delay: conf.AuthDelay}),
		Contact:  contact.New(contact.Config{L: l, Notifier: mailer, Delay: conf.SubmitDelay}),
		storage:  store,
	}, nil
}

// Import loads a browser-storage export into the configured storage.
func (a *App) Import(ctx context.Context, r io.Reader) (int, error) {
	return migration.Import(ctx, a.L, a.storage, r)
}

// Serve runs the HTTP API until ctx is done.
func (a *App) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	webConf := web.Conf{
		L:                 a.L,
		ServerLogger:      zap.NewStdLog(a.L.Zap()),
		Host:              a.Conf.HTTPHost,
		Port:              a.Conf.HTTPPort,
		ReadHeaderTimeout: a.Conf.HTTPReadHeaderTimeout,
		LivenessEndpoint:  "/liveness",
		MaxRequestsPerMin: a.Conf.MaxRequestsPerMin,
	}

	srv, err := web.New(ctx, webConf, web.Deps{
		Bookings: a.Bookings,
		Catalog:  a.Catalog,
		Quotes:   a.Quotes,
		Accounts: a.Accounts,
		Contact:  a.Contact,
	})
	if err != nil {
		return fmt.Errorf("init http server: %w", err)
	}

	//nolint:contextcheck
	go func() {
		<-ctx.Done()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*4) //nolint:gomnd
		defer cancel()

		if err := srv.Srv().Shutdown(ctx); err != nil {
			a.L.LogErrorf("Failed to stop http server: %v", err.Error())
		}
	}()

	a.L.LogInfo("Application is running on %v:%v...", webConf.Host, webConf.Port)

	if err := srv.Srv().ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("run http server: %w", err)
	}

	a.L.LogInfo("Application stopped gracefully")

	return nil
}

func (a *App) Close() error {
	if err := a.storage.Close(); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}

	return nil
}
