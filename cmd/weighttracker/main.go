package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"

	adapthttp "weighttracker/internal/adapter/http"
	"weighttracker/internal/adapter/memory"
	"weighttracker/internal/adapter/postgres"
	"weighttracker/internal/app"
	"weighttracker/internal/config"
	"weighttracker/internal/domain"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var (
		entryRepo   domain.EntryRepository
		userRepo    domain.UserRepository
		sessionRepo domain.SessionRepository
	)
	switch cfg.Storage {
	case config.StorageMemory:
		mem := memory.New()
		entryRepo, userRepo, sessionRepo = mem, mem, mem.NewSessionRepo()
		log.Print("using in-memory storage, data will not survive a restart")
	default:
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db open: %v", err)
		}
		defer func() { _ = db.Close() }()
		entryRepo, userRepo, sessionRepo = db, db, postgres.NewSessionRepo(db)
	}

	entrySvc := app.NewEntryService(entryRepo)
	chartsSvc := app.NewChartsService(entryRepo)
	importSvc := app.NewImportService(entrySvc)
	authSvc := app.NewAuthService(userRepo, sessionRepo)

	oidcConfig, err := setupOIDC(cfg.OIDC)
	if err != nil {
		log.Fatalf("oidc: %v", err)
	}

	h := adapthttp.New(entrySvc, chartsSvc, importSvc, authSvc, oidcConfig, cfg.WebDir).Handler()
	log.Printf("listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func setupOIDC(cfg config.OIDC) (adapthttp.OIDCConfig, error) {
	if !cfg.Enabled() {
		return adapthttp.OIDCConfig{}, nil
	}

	provider, err := oidc.NewProvider(context.Background(), cfg.Issuer)
	if err != nil {
		return adapthttp.OIDCConfig{}, err
	}

	return adapthttp.OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}
