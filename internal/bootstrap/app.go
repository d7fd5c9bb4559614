package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"imageshare-backend/internal/identity"
	"imageshare-backend/internal/identity/cognito"
	"imageshare-backend/internal/images"
	"imageshare-backend/internal/shared/config"
	"imageshare-backend/internal/shared/server"
	"imageshare-backend/internal/shared/storage/blob"
	localstore "imageshare-backend/internal/shared/storage/blob/local"
	s3store "imageshare-backend/internal/shared/storage/blob/s3"
	"imageshare-backend/internal/shared/storage/db"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Blobs           blob.Store
	LocalBlobs      *localstore.Store
	Identity        identity.Provider
	ImagesRepo      images.Repo
	ImagesService   *images.Service
	ImagesHandler   *images.Handler
	IdentityHandler *identity.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	provider, err := buildIdentity(ctx, cfg)
	if err != nil {
		return nil, err
	}

	blobs, localBlobs, err := buildBlobs(ctx, cfg)
	if err != nil {
		return nil, err
	}

	repo, sqlDB, err := buildRepo(ctx, cfg)
	if err != nil {
		return nil, err
	}

	imagesSvc := &images.Service{
		Blobs:             blobs,
		Repo:              repo,
		AllowedExtensions: cfg.AllowedExtensions,
		PresignTTL:        cfg.PresignTTL,
	}

	app := &App{
		Config:          cfg,
		DB:              sqlDB,
		Blobs:           blobs,
		LocalBlobs:      localBlobs,
		Identity:        provider,
		ImagesRepo:      repo,
		ImagesService:   imagesSvc,
		ImagesHandler:   images.NewHandler(imagesSvc, cfg.MaxUploadBytes),
		IdentityHandler: identity.NewHandler(provider),
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		Verifier:        identity.Verifier{Provider: provider},
		IdentityHandler: app.IdentityHandler,
		ImagesHandler:   app.ImagesHandler,
		LocalBlobs:      localBlobs,
	})

	return app, nil
}

func buildIdentity(ctx context.Context, cfg config.Config) (identity.Provider, error) {
	if cfg.IdentityProvider != "cognito" {
		return identity.NewMemoryProvider(), nil
	}
	provider, err := cognito.New(ctx, cfg.AWSRegion, cfg.CognitoClientID, cfg.CognitoSecret)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: cognito init failed; using in-memory identity provider: %v", err)
			return identity.NewMemoryProvider(), nil
		}
		return nil, fmt.Errorf("init cognito provider: %w", err)
	}
	return provider, nil
}

func buildBlobs(ctx context.Context, cfg config.Config) (blob.Store, *localstore.Store, error) {
	if cfg.BlobStoreType == "s3" {
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			return nil, nil, fmt.Errorf("init s3 blob store: %w", err)
		}
		return store, nil, nil
	}
	store := localstore.New(cfg.LocalStoreDir, "")
	return store, store, nil
}

func buildRepo(ctx context.Context, cfg config.Config) (images.Repo, *sql.DB, error) {
	switch cfg.MetadataStoreType {
	case "dynamo":
		repo, err := images.NewDynamoRepo(ctx, cfg.AWSRegion, cfg.DynamoTable)
		if err != nil {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: dynamodb init failed; using in-memory metadata repo: %v", err)
				return images.NewMemoryRepo(), nil, nil
			}
			return nil, nil, fmt.Errorf("init dynamodb repo: %w", err)
		}
		return repo, nil, nil

	case "postgres":
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
		if err == nil {
			if migrateErr := db.RunMigrations(ctx, sqlDB); migrateErr != nil {
				sqlDB.Close()
				err = migrateErr
			}
		}
		if err != nil {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: postgres init failed; using in-memory metadata repo: %v", err)
				return images.NewMemoryRepo(), nil, nil
			}
			return nil, nil, fmt.Errorf("init postgres repo: %w", err)
		}
		return &images.PGRepo{DB: sqlDB}, sqlDB, nil

	default:
		return images.NewMemoryRepo(), nil, nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
