package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"                 // periodic session sweeping
	"github.com/labstack/echo/v4"                   // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware" // panic recovery
	"github.com/redis/go-redis/v9"                  // shared Redis client
	"github.com/sirupsen/logrus"                    // structured logging
	"golang.org/x/sync/errgroup"                    // runs the server and the consumer together

	"github.com/iliyamo/cinema-admin-console/internal/config"
	"github.com/iliyamo/cinema-admin-console/internal/handler"
	"github.com/iliyamo/cinema-admin-console/internal/middleware"
	"github.com/iliyamo/cinema-admin-console/internal/queue"
	"github.com/iliyamo/cinema-admin-console/internal/repository"
	"github.com/iliyamo/cinema-admin-console/internal/router"
	"github.com/iliyamo/cinema-admin-console/internal/service"
	"github.com/iliyamo/cinema-admin-console/internal/session"
	"github.com/iliyamo/cinema-admin-console/web"
)

func main() {
	cfg := config.Load()                           // Load environment config
	config.ConfigureLogging(cfg.Env, cfg.LogLevel) // Text in dev, JSON in prod

	cacheCfg := config.LoadCacheConfig()
	sessCfg := config.LoadSessionConfig()
	queueCfg := config.LoadQueueConfig()
	rlCfg := config.LoadRateLimitConfig()

	rdb := config.NewRedisClient() // nil when Redis is unreachable
	if rdb != nil {
		defer rdb.Close()
	}

	// ---- Backend access ----
	client := repository.NewClient(cfg.APIBaseURL, cfg.APITimeout, repository.NewRedisCache(cacheCfg, rdb))
	movies := repository.NewMovieRepo(client)
	rooms := repository.NewRoomRepo(client)
	showtimes := repository.NewShowtimeRepo(client)
	reservations := repository.NewReservationRepo(client)
	events := queue.NewPublisher(queueCfg)

	// ---- Page sessions ----
	checkouts, layouts, sweepers := sessionStores(sessCfg, rdb)
	sched, err := gocron.NewScheduler(gocron.WithLocation(cfg.Location))
	if err != nil {
		logrus.WithError(err).Fatal("scheduler")
	}
	if err := session.ScheduleSweep(sched, sessCfg.SweepEvery, sweepers...); err != nil {
		logrus.WithError(err).Fatal("scheduler")
	}
	sched.Start()
	defer func() { _ = sched.Shutdown() }()

	// ---- Services ----
	checkout := service.NewCheckout(movies, rooms, showtimes, reservations, checkouts, events)
	roomSvc := service.NewRoomService(movies, rooms, showtimes, layouts, cfg.Location)
	movieSvc := service.NewMovieService(movies, rooms, showtimes, cfg.Location)
	dashboard := service.NewDashboardService(movies, rooms, showtimes, reservations, events, cfg.Location)

	// ---- HTTP ----
	renderer, err := handler.NewRenderer(web.FS, cfg.Location)
	if err != nil {
		logrus.WithError(err).Fatal("templates")
	}
	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Renderer = renderer
	e.HTTPErrorHandler = handler.ErrorHandler
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger())

	ready := map[string]handler.Pinger{"backend": client, "redis": nil}
	if rdb != nil {
		ready["redis"] = handler.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}
	router.RegisterRoutes(e, ready)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg), middleware.NewTokenBucket(rlCfg, rdb))

	g := router.Console(e, cfg.JWTSecret)
	router.RegisterDashboard(g, handler.NewDashboardHandler(dashboard))
	router.RegisterRooms(g, handler.NewRoomHandler(rooms, roomSvc))
	router.RegisterMovies(g, handler.NewMovieHandler(movies, movieSvc))
	router.RegisterCheckout(g, handler.NewCheckoutHandler(checkout))

	// ---- Run ----
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	grp, gctx := errgroup.WithContext(ctx)

	addr := ":" + cfg.Port
	grp.Go(func() error {
		logrus.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env, "backend": cfg.APIBaseURL}).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	grp.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
	if queueCfg.Enabled && queueCfg.ConsumerEnabled {
		grp.Go(func() error { return queue.RunAuditConsumer(gctx, queueCfg) })
	}

	if err := grp.Wait(); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
	logrus.Info("shut down")
}

// sessionStores keeps page sessions in Redis when asked to and Redis is up,
// and in process memory otherwise.  Memory stores are returned as sweepers.
func sessionStores(cfg config.SessionConfig, rdb *redis.Client) (session.Store[service.CheckoutSession], session.Store[service.LayoutSession], []session.Sweeper) {
	if cfg.Store == "redis" && rdb != nil {
		return session.NewRedisStore[service.CheckoutSession](rdb, cfg.Prefix, "checkout", cfg.TTL),
			session.NewRedisStore[service.LayoutSession](rdb, cfg.Prefix, "layout", cfg.TTL),
			nil
	}
	if cfg.Store == "redis" {
		logrus.Warn("redis unavailable, keeping page sessions in memory")
	}
	checkouts := session.NewMemoryStore[service.CheckoutSession](cfg.TTL)
	layouts := session.NewMemoryStore[service.LayoutSession](cfg.TTL)
	return checkouts, layouts, []session.Sweeper{checkouts, layouts}
}
