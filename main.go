package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"homehub/config"
	"homehub/data"
	"homehub/handlers"
	"homehub/navigation"
	"homehub/services"
	"homehub/storage"
	"homehub/utils/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Environment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	if err := run(cfg, log); err != nil {
		log.Fatal("Server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	secure, general, closeStores, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStores()

	users, closeUsers, err := openUsers(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeUsers()

	credentials := services.NewCredentialService(users, cfg.BcryptCost, log)
	if err := credentials.SeedDemoUsers(ctx); err != nil {
		return fmt.Errorf("seed demo users: %w", err)
	}

	catalog, err := data.Properties()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	listings, err := services.NewListingService(catalog, cfg.Proximity, log)
	if err != nil {
		return err
	}
	notifications := services.NewNotificationService(nil, log)

	controller := navigation.NewController(navigation.Options{
		Credentials:   credentials,
		Sessions:      services.NewSessionService(secure, log),
		ListingExists: listings.Exists,
		NotificationExists: func(id string) bool {
			_, err := notifications.Get(id)
			return err == nil
		},
		Logger: log,
	})
	controller.Start(ctx)

	app := handlers.App{
		Controller:    controller,
		Tokens:        services.NewTokenIssuer(cfg.JWTSecret),
		Listings:      listings,
		Favorites:     services.NewFavoriteService(ctx, general, listings.Exists, log),
		Notifications: notifications,
		Maps:          services.NewMapService(listings, log),
	}
	router := handlers.NewRouter(app, handlers.RouterOptions{
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Environment), zap.String("storage", cfg.StorageBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStores builds the secure and general device stores on the configured backend.
func openStores(ctx context.Context, cfg *config.Config, log *zap.Logger) (secure, general storage.Store, closeFn func(), err error) {
	closeFn = func() {}

	var secureInner storage.Store
	switch cfg.StorageBackend {
	case "memory":
		secureInner, general = storage.NewMemoryStore(), storage.NewMemoryStore()
	case "file":
		if secureInner, err = storage.NewFileStore(filepath.Join(cfg.StorageDir, "secure")); err != nil {
			return nil, nil, nil, err
		}
		if general, err = storage.NewFileStore(filepath.Join(cfg.StorageDir, "general")); err != nil {
			return nil, nil, nil, err
		}
	case "redis":
		client, err := storage.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn = func() { client.Close() }
		secureInner = storage.NewRedisStore(client, "homehub:secure:")
		general = storage.NewRedisStore(client, "homehub:general:")
	}

	key, err := secureStoreKey(cfg, log)
	if err != nil {
		closeFn()
		return nil, nil, nil, err
	}
	if secure, err = storage.NewSecureStore(secureInner, key); err != nil {
		closeFn()
		return nil, nil, nil, err
	}
	return secure, general, closeFn, nil
}

// secureStoreKey returns SECURE_STORE_KEY, or a key kept next to the stores
// so sessions survive a restart. Only the memory backend gets a throwaway key.
func secureStoreKey(cfg *config.Config, log *zap.Logger) ([]byte, error) {
	if cfg.SecureStoreKey != "" {
		return storage.ParseKey(cfg.SecureStoreKey)
	}
	if cfg.StorageBackend == "memory" {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, err
		}
		return key, nil
	}
	path := filepath.Join(cfg.StorageDir, "secure.key")
	log.Warn("SECURE_STORE_KEY not set, using key file", zap.String("path", path))
	return storage.LoadOrCreateKey(path)
}

// openUsers picks MongoDB when MONGODB_URI is set, otherwise an in-process registry.
func openUsers(ctx context.Context, cfg *config.Config, log *zap.Logger) (services.UserRepository, func(), error) {
	if cfg.MongoURI == "" {
		log.Info("MONGODB_URI not set, using in-memory user registry")
		return services.NewMemoryUserRepository(), func() {}, nil
	}

	client, err := services.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		return nil, nil, err
	}
	disconnect := func() { disconnectMongo(client, log) }

	repo, err := services.NewMongoUserRepository(ctx, client.Database(cfg.MongoDatabase).Collection("users"))
	if err != nil {
		disconnect()
		return nil, nil, err
	}
	return repo, disconnect, nil
}

func disconnectMongo(client *mongo.Client, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Warn("Failed to disconnect from MongoDB", zap.Error(err))
	}
}
