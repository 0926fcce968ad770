package main

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"gstinvoice/config"
	"gstinvoice/db"
	"gstinvoice/db/mongo"
	"gstinvoice/db/postgres"
	"gstinvoice/handlers"
	"gstinvoice/logger"
	"gstinvoice/repository"
	"gstinvoice/routes"
	"gstinvoice/utils"
)

func main() {
	// Load config from .env and the environment
	cfg, err := config.LoadConfig()
	if err != nil {
		log := logger.New("info", "console")
		log.Fatal().Err(err).Msg("load config")
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	ctx := logger.WithContext(context.Background(), log)

	sellerRepo, closeStore, err := openSellerStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.SellerStore).Msg("open seller store")
	}
	defer closeStore()

	renderer, err := utils.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("parse templates")
	}
	exporter, err := utils.NewPDFExporter(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("pdf exporter")
	}

	sessions := &handlers.SessionManager{
		Store:  repository.NewSessionStore(cfg.CacheSize, cfg.SessionTTL),
		Secure: cfg.SessionSecure,
	}
	invoiceHandler := &handlers.InvoiceHandler{
		Store:        repository.NewMemoryInvoiceStore(cfg.CacheSize, cfg.CacheTTL),
		Sellers:      sellerRepo,
		Renderer:     renderer,
		Exporter:     exporter,
		Sessions:     sessions,
		Logo:         loadLogo(log, cfg.LogoPath),
		UploadTarget: uploadTarget(cfg.UploadBackend),
	}

	cloudHandler, err := newCloudHandler(ctx, cfg, invoiceHandler, sessions)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.UploadBackend).Msg("upload backend")
	}
	defer func() {
		if err := utils.CloseUploader(cloudHandler.Static); err != nil {
			log.Warn().Err(err).Msg("close uploader")
		}
	}()

	router := routes.NewRouter(routes.Handlers{
		Invoice:  invoiceHandler,
		Cloud:    cloudHandler,
		Auth:     &handlers.AuthHandler{PasswordHash: cfg.PasswordHash, Sessions: sessions, Renderer: renderer},
		Seller:   &handlers.SellerHandler{Repo: sellerRepo},
		Sessions: sessions,
	}, log, routes.Limits{
		RatePerSecond: cfg.RateLimit,
		Burst:         cfg.RateBurst,
		MaxRenders:    cfg.MaxConcurrentRenders,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// a render can take up to every retry of PDF_TIMEOUT
		WriteTimeout: cfg.PDFTimeout*time.Duration(cfg.PDFRetries+1) + 30*time.Second,
	}

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("pdf_engine", cfg.PDFEngine).
			Str("upload_backend", cfg.UploadBackend).
			Str("seller_store", cfg.SellerStore).
			Bool("auth", cfg.AuthEnabled()).
			Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("server stopped")
}

// openSellerStore connects the configured seller profile store, running
// migrations for postgres.
func openSellerStore(ctx context.Context, cfg *config.Config) (repository.SellerRepository, func(), error) {
	log := logger.FromContext(ctx)

	switch db.StoreType(cfg.SellerStore) {
	case db.Postgres:
		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(ctx); err != nil {
			return nil, nil, err
		}
		closeFn := func() { _ = pg.Disconnect(context.Background()) }

		changed, err := db.RunMigrations(pg.Conn, cfg.MigrationsPath)
		if err != nil {
			closeFn()
			return nil, nil, err
		}
		log.Info().Bool("changed", changed).Msg("migrations applied")
		return repository.NewPostgresSellerRepo(pg.Conn), closeFn, nil

	case db.Mongo:
		mg := mongo.NewMongoDB(cfg.MongoURL)
		if err := mg.Connect(ctx); err != nil {
			return nil, nil, err
		}
		closeFn := func() { _ = mg.Disconnect(context.Background()) }
		return repository.NewMongoSellerRepo(mg.Client, cfg.MongoDB), closeFn, nil

	default:
		return repository.NewStaticSellerRepo(), func() {}, nil
	}
}

func newCloudHandler(ctx context.Context, cfg *config.Config, invoices *handlers.InvoiceHandler, sessions *handlers.SessionManager) (*handlers.CloudHandler, error) {
	h := &handlers.CloudHandler{Invoices: invoices, Sessions: sessions, Backend: cfg.UploadBackend}

	if cfg.UploadBackend == "drive" {
		oauthConf, err := utils.LoadOAuthConfig(cfg.GoogleClientSecrets, oauthRedirect(cfg))
		if err != nil {
			// the app still renders and downloads; only Drive upload is unavailable
			log := logger.FromContext(ctx)
			log.Warn().Err(err).Msg("google drive disabled")
			invoices.UploadTarget = ""
			return h, nil
		}
		h.OAuth = oauthConf
		h.NewDrive = utils.DriveUploaderFactory(oauthConf, cfg.DriveFolderID)
		return h, nil
	}

	static, err := utils.NewStaticUploader(ctx, cfg)
	if err != nil {
		return nil, err
	}
	h.Static = static
	return h, nil
}

func oauthRedirect(cfg *config.Config) string {
	if cfg.OAuthRedirectURL != "" {
		return cfg.OAuthRedirectURL
	}
	if cfg.BaseURL != "" {
		return strings.TrimRight(cfg.BaseURL, "/") + "/oauth2callback"
	}
	return "http://localhost:" + cfg.Port + "/oauth2callback"
}

func uploadTarget(backend string) string {
	switch backend {
	case "drive":
		return "Google Drive"
	case "r2":
		return "R2"
	case "gcs":
		return "Cloud Storage"
	default:
		return ""
	}
}

// loadLogo base64 encodes the logo once; a missing file leaves the invoice without one.
func loadLogo(log zerolog.Logger, path string) string {
	if path == "" {
		return ""
	}
	b, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("logo not loaded")
		return ""
	}
	return base64.StdEncoding.EncodeToString(b)
}
