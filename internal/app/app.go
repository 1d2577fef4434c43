// Package app assembles the storage backend, the session store, the services
// and the HTTP router from a loaded configuration.
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"devflow/internal/adapter/auth"
	dbadapter "devflow/internal/adapter/db"
	httpadapter "devflow/internal/adapter/http"
	"devflow/internal/adapter/http/handlers"
	"devflow/internal/adapter/http/middleware"
	"devflow/internal/adapter/memory"
	"devflow/internal/adapter/mongodb"
	"devflow/internal/adapter/session"
	"devflow/internal/app/service"
	"devflow/internal/config"
	"devflow/internal/core/domain"
	"devflow/internal/core/ports"
)

// Backend is the set of repositories served by one storage driver.
type Backend struct {
	Tasks    ports.TaskRepository
	Notes    ports.NoteRepository
	Users    ports.UserRepository
	Database ports.Pinger
	Close    func(ctx context.Context) error
}

// Sessions is the revocation store; Pinger is nil when revocation is disabled.
type Sessions struct {
	Revoker ports.SessionRevoker
	Pinger  ports.Pinger
	Close   func(ctx context.Context) error
}

func OpenBackend(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch cfg.StorageDriver {
	case config.StorageMongo:
		client, err := mongodb.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return Backend{}, fmt.Errorf("connect to mongo: %w", err)
		}
		database := client.Database(cfg.MongoDatabase)
		if err := mongodb.EnsureIndexes(ctx, database); err != nil {
			_ = client.Disconnect(ctx)
			return Backend{}, fmt.Errorf("ensure mongo indexes: %w", err)
		}
		return Backend{
			Tasks:    mongodb.NewTaskRepository(database),
			Notes:    mongodb.NewNoteRepository(database),
			Users:    mongodb.NewUserRepository(database),
			Database: mongodb.Pinger{Client: client},
			Close:    client.Disconnect,
		}, nil

	case config.StorageMySQL:
		db, err := dbadapter.ConnectDB(ctx, cfg)
		if err != nil {
			return Backend{}, fmt.Errorf("connect to mysql: %w", err)
		}
		if err := dbadapter.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return Backend{}, fmt.Errorf("migrate mysql: %w", err)
		}
		return Backend{
			Tasks:    dbadapter.NewTaskRepository(db),
			Notes:    dbadapter.NewNoteRepository(db),
			Users:    dbadapter.NewUserRepository(db),
			Database: dbadapter.Pinger{DB: db},
			Close: func(context.Context) error {
				return db.Close()
			},
		}, nil

	case config.StorageMemory:
		return MemoryBackend(memory.NewStore()), nil
	}

	return Backend{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
}

func MemoryBackend(store *memory.Store) Backend {
	return Backend{
		Tasks:    memory.NewTaskRepository(store),
		Notes:    memory.NewNoteRepository(store),
		Users:    memory.NewUserRepository(store),
		Database: store,
		Close: func(context.Context) error {
			return nil
		},
	}
}

// OpenSessions connects to Redis when REDIS_URL is set. Without it signed-out
// tokens stay valid until they expire.
func OpenSessions(ctx context.Context, cfg *config.Config) (Sessions, error) {
	if cfg.RedisURL == "" {
		zap.L().Warn("REDIS_URL is not set, session revocation is disabled")
		return Sessions{
			Revoker: session.NopStore{},
			Close: func(context.Context) error {
				return nil
			},
		}, nil
	}

	store, err := session.NewRedisStore(ctx, cfg.RedisURL)
	if err != nil {
		return Sessions{}, err
	}
	return Sessions{
		Revoker: store,
		Pinger:  store,
		Close: func(context.Context) error {
			return store.Close()
		},
	}, nil
}

// NewRouter builds the services on top of backend and mounts them under /api.
func NewRouter(cfg *config.Config, backend Backend, sessions Sessions, hasher ports.PasswordHasher) (*gin.Engine, error) {
	authService := service.NewAuthService(
		backend.Users,
		hasher,
		auth.NewJWTSessions(cfg.SessionSecret, cfg.SessionTTL),
		sessions.Revoker,
		auth.NewTelegramVerifier(cfg.TelegramBotToken, cfg.TelegramAuthMaxAge),
	)

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(gin.Recovery(), middleware.GinZapMiddleware(zap.L()))

	httpadapter.RegisterRoutes(r, authService, httpadapter.Handlers{
		Health: handlers.NewHealthHandler(cfg.AppName, cfg.AppVersion, backend.Database, sessions.Pinger),
		Auth:   handlers.NewAuthHandler(authService),
		Tasks:  handlers.NewTaskHandler(service.NewTaskService(backend.Tasks, domain.NewAllowList(cfg.PromoFitEmails))),
		Notes:  handlers.NewNoteHandler(service.NewNoteService(backend.Notes)),
		Users:  handlers.NewUserHandler(service.NewUserService(backend.Users)),
	})
	return r, nil
}
