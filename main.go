// @title Articles API
// @version 1.0
// @description Articles, comments and bookmarks with like and bookmark toggles.
// @host localhost:5000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"

	_ "github.com/pllus/articles-server/docs"

	"github.com/pllus/articles-server/bootstrap"
	"github.com/pllus/articles-server/config"
	"github.com/pllus/articles-server/database"
	"github.com/pllus/articles-server/internal/auth"
	"github.com/pllus/articles-server/internal/controllers"
	"github.com/pllus/articles-server/internal/logger"
	"github.com/pllus/articles-server/internal/metrics"
	"github.com/pllus/articles-server/internal/middleware"
	"github.com/pllus/articles-server/internal/repository"
	"github.com/pllus/articles-server/internal/routes"
)

const ServiceName = "articles"

func main() {
	var (
		printRoutes = flag.Bool("routes", false, "print the route table and exit")
		reconcile   = flag.Bool("reconcile", false, "recompute likesCount and commentCount for every article and exit")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync() // flushes buffer, if any
	sugar := zlog.Sugar()

	if *printRoutes {
		if err := writeRoutes(cfg); err != nil {
			sugar.Fatalw("print routes", "error", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := database.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		sugar.Fatalw("mongo", "error", err)
	}
	db := client.Database(cfg.MongoDB)
	sugar.Infow("connected to mongo", "db", cfg.MongoDB)

	if *reconcile {
		repo := &repository.ArticleRepository{
			Client:      client,
			ColArticles: db.Collection(config.CollArticles),
			ColComments: db.Collection(config.CollComments),
		}
		n, err := repo.RecountCounters(ctx)
		_ = client.Disconnect(context.Background())
		if err != nil {
			sugar.Fatalw("reconcile failed", "fixed", n, "error", err)
		}
		sugar.Infow("reconcile done", "fixed", n)
		return
	}

	idxCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	if err := bootstrap.EnsureIndexes(idxCtx, db); err != nil {
		cancel()
		sugar.Fatalw("ensure indexes failed", "error", err)
	}
	cancel()

	m, err := metrics.New(ServiceName)
	if err != nil {
		sugar.Fatalw("failed to initialize prometheus exporter", "error", err)
	}

	jwtSvc := auth.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)
	app := newApp(cfg, zlog, m)
	routes.Register(app, routes.NewHandlers(routes.Deps{
		Client:       client,
		DB:           db,
		Verifier:     jwtSvc,
		Issuer:       jwtSvc,
		Recorder:     m,
		Timeout:      cfg.RequestTimeout,
		CookieSecure: cfg.CookieSecure,
	}))

	diag := fiber.New(fiber.Config{DisableStartupMessage: true})
	diag.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	serveErr := make(chan error, 2)
	go func() { serveErr <- app.Listen(":" + cfg.Port) }()
	go func() { serveErr <- diag.Listen(cfg.DiagAddr) }()
	sugar.Infow("listening", "addr", ":"+cfg.Port, "diag_addr", cfg.DiagAddr)

	select {
	case <-ctx.Done():
		sugar.Infow("shutting down")
	case err := <-serveErr:
		if err != nil {
			sugar.Errorw("server stopped", "error", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		sugar.Errorw("shutdown", "error", err)
	}
	if err := diag.ShutdownWithContext(shutdownCtx); err != nil {
		sugar.Errorw("diag shutdown", "error", err)
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		sugar.Errorw("mongo disconnect", "error", err)
	}
}

func newApp(cfg config.Config, zlog *zap.Logger, m *metrics.Metrics) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "articles-server",
		ErrorHandler:          controllers.ErrorHandler(zlog.Sugar()),
		DisableStartupMessage: cfg.IsProduction(),
	})

	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(zlog))
	if m != nil {
		app.Use(m.Middleware())
	}
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: cfg.CORSOrigins != "*",
	}))

	// Swagger API document
	app.Get("/docs/*", swagger.HandlerDefault)
	return app
}

// writeRoutes prints the route table without contacting the database.
func writeRoutes(cfg config.Config) error {
	client, err := database.NewClient(cfg.MongoURI)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	app := newApp(cfg, zap.NewNop(), nil)
	routes.Register(app, routes.NewHandlers(routes.Deps{
		Client:   client,
		DB:       client.Database(cfg.MongoDB),
		Verifier: auth.NewJWTService(cfg.JWTSecret, cfg.JWTTTL),
		Issuer:   auth.NewJWTService(cfg.JWTSecret, cfg.JWTTTL),
	}))

	all := app.GetRoutes(true)
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Path != all[j].Path {
			return all[i].Path < all[j].Path
		}
		return all[i].Method < all[j].Method
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, r := range all {
		if r.Method == fiber.MethodHead {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", r.Method, r.Path); err != nil {
			return err
		}
	}
	return w.Flush()
}
