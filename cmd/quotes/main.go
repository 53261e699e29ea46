// Command quotes runs the quotes HTTP API: username/password login minting
// short-lived bearer tokens, and a quotes CRUD surface behind an access gate.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/skillsenselab/quotes/internal/api"
	"github.com/skillsenselab/quotes/internal/auth"
	"github.com/skillsenselab/quotes/internal/auth/password"
	"github.com/skillsenselab/quotes/internal/auth/token"
	"github.com/skillsenselab/quotes/internal/config"
	"github.com/skillsenselab/quotes/internal/logger"
	"github.com/skillsenselab/quotes/internal/quote"
	"github.com/skillsenselab/quotes/internal/server"
	"github.com/skillsenselab/quotes/internal/store"
	"github.com/skillsenselab/quotes/internal/user"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// Misconfiguration (including a missing or placeholder token secret)
		// is fatal at startup, never discovered per-request.
		logger.NewDefault("quotes").Fatal("Configuration error", map[string]interface{}{"error": err.Error()})
	}

	logger.Init(cfg.Log, cfg.App.Name)
	log := logger.GetGlobalLogger()
	log.Info("Starting service", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	ctx := context.Background()

	db, err := store.Open(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal("Database unavailable", map[string]interface{}{"error": err.Error()})
	}
	defer db.Close()

	if err := db.AutoMigrate(&user.User{}, &quote.Quote{}); err != nil {
		log.Fatal("Migration failed", map[string]interface{}{"error": err.Error()})
	}

	hasher := password.NewBcryptHasher(password.WithCost(cfg.Auth.BcryptCost))
	users := user.NewStore(db.Gorm)

	if seed := cfg.Auth.Seed; seed.Username != "" && seed.Password != "" {
		if err := users.Seed(ctx, seed.Username, seed.Email, seed.Password, hasher); err != nil {
			log.Fatal("User seeding failed", map[string]interface{}{"error": err.Error()})
		}
		log.Info("Seed user ensured", map[string]interface{}{"username": seed.Username})
	}

	tokens, err := token.NewService(cfg.Auth.Token)
	if err != nil {
		log.Fatal("Token service configuration error", map[string]interface{}{"error": err.Error()})
	}
	bearer := auth.NewBearerJWT(tokens)
	authSvc := auth.NewService(auth.NewLocalPassword(users, hasher), bearer)

	quotes := quote.NewService(quote.NewRepository(db.Gorm))

	engine := api.NewRouter(api.Deps{
		ServerConfig: cfg.Server,
		Auth:         authSvc,
		Tokens:       bearer,
		Quotes:       quotes,
		Log:          log,
	})

	srv := server.New(cfg.Server, engine, log)
	if err := srv.Start(ctx); err != nil {
		log.Fatal("Server start failed", map[string]interface{}{"error": err.Error()})
	}
	log.Info("Service ready", map[string]interface{}{"addr": srv.Addr()})

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	log.Info("Shutdown signal received", map[string]interface{}{"signal": sig.String()})

	if err := srv.Stop(ctx); err != nil {
		log.Error("Shutdown error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}
