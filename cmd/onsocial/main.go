package main

import (
	"context"
	"database/sql"
	"flag"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/onsocialhq/onsocial"
	"github.com/onsocialhq/onsocial/config"
)

func main() {
	configPath := flag.String("config", os.Getenv("ONSOCIAL_CONFIG"), "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Refuse to start without usable key material
	keys, err := onsocial.LoadKeyPair(cfg.GetSigningPrivateKey(), cfg.GetSigningPublicKey())
	if err != nil {
		log.Fatalf("load signing keys: %v", err)
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DBDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	// PRAGMA foreign_keys only holds per connection
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		log.Fatalf("enable foreign keys: %v", err)
	}

	if err := applyMigrations(ctx, db); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	repo := onsocial.NewRepositoryManager(db)
	repo.MustValidate()

	provider := onsocial.NewUserProvider(repo.Users())

	tokenService := onsocial.NewTokenService(keys, cfg.GetTokenExpiration(), cfg.GetIssuer(), nil)
	auther := onsocial.NewAuthenticator(provider, tokenService)

	guard := onsocial.NewGuard().
		RegisterResolver(onsocial.ResourcePosts, onsocial.NewPostOwnership(repo.Posts())).
		RegisterResolver(onsocial.ResourceUsers, onsocial.NewUserOwnership())

	middleware := onsocial.NewGuardMiddleware(auther, onsocial.DefaultRouteTable(), guard, cfg)

	controller := onsocial.NewHTTPController(
		auther,
		provider,
		onsocial.NewRegisterUserHandler(repo),
		onsocial.NewUserService(repo),
		onsocial.NewPostService(repo),
		keys,
	).WithDebug(cfg.Debug).WithContextKey(cfg.GetContextKey())

	app := fiber.New(fiber.Config{
		ErrorHandler: onsocial.ErrorHandler(nil),
	})

	app.Use(middleware.Handler())
	controller.RegisterRoutes(app)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := app.Listen(cfg.HTTPAddr); err != nil {
		log.Fatalf("listen: %v", err)
	}
}

func applyMigrations(ctx context.Context, db *bun.DB) error {
	migrations := onsocial.GetMigrationsFS()

	entries, err := fs.ReadDir(migrations, "data/sql/migrations")
	if err != nil {
		return err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		raw, err := fs.ReadFile(migrations, "data/sql/migrations/"+name)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, string(raw)); err != nil {
			return err
		}
	}

	return nil
}
