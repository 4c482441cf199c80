package app

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/moviepair/core/internal/config"
	http_auth "github.com/moviepair/core/internal/delivery/http/auth"
	http_cast "github.com/moviepair/core/internal/delivery/http/cast"
	http_catalog "github.com/moviepair/core/internal/delivery/http/catalog"
	http_init "github.com/moviepair/core/internal/delivery/http/init"
	http_swipe "github.com/moviepair/core/internal/delivery/http/swipe"
	http_sync "github.com/moviepair/core/internal/delivery/http/sync"
	ws_room "github.com/moviepair/core/internal/delivery/ws/room"
	infra_blob "github.com/moviepair/core/internal/infra/blob"
	infra_file "github.com/moviepair/core/internal/infra/file"
	infra_memory "github.com/moviepair/core/internal/infra/memory"
	infra_pg_init "github.com/moviepair/core/internal/infra/postgres/init"
	infra_postgres_userdata "github.com/moviepair/core/internal/infra/postgres/userdata"
	infra_redis_cache "github.com/moviepair/core/internal/infra/redis/cache"
	infra_redis_init "github.com/moviepair/core/internal/infra/redis/init"
	infra_redis_kv "github.com/moviepair/core/internal/infra/redis/kv"
	infra_tmdb "github.com/moviepair/core/internal/infra/tmdb"
	"github.com/moviepair/core/internal/model"
	service_account_auth "github.com/moviepair/core/internal/service/auth/account"
	storage_keyed "github.com/moviepair/core/internal/storage/keyed"
	usecase_cast "github.com/moviepair/core/internal/usecase/cast"
	usecase_catalog "github.com/moviepair/core/internal/usecase/catalog"
	usecase_swipe "github.com/moviepair/core/internal/usecase/swipe"
	usecase_sync "github.com/moviepair/core/internal/usecase/sync"
)

const (
	// Ambiguous characters are left out of swipe codes on purpose.
	swipeCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	swipeCodeLen      = 5
	swipeRoomTTL      = 24 * time.Hour

	castCodeAlphabet = "0123456789"
	castCodeLen      = 4
	castRoomTTL      = time.Hour

	sessionTTL = 30 * 24 * time.Hour
)

func Go(cfg *config.Config) {
	setupLogger(cfg.Log)

	swipeBackend, castBackend, accountBackend, blobBackend, sessions, cache := buildInfra(cfg)

	swipeStore := storage_keyed.New[model.SwipeRoom](swipeBackend, storage_keyed.Config{
		Alphabet:  swipeCodeAlphabet,
		CodeLen:   swipeCodeLen,
		TTL:       swipeRoomTTL,
		Normalize: normalizeCode,
	})
	castStore := storage_keyed.New[model.CastRoom](castBackend, storage_keyed.Config{
		Alphabet:      castCodeAlphabet,
		CodeLen:       castCodeLen,
		NoLeadingZero: true,
		TTL:           castRoomTTL,
	})
	accountStore := storage_keyed.New[model.User](accountBackend, storage_keyed.Config{})

	tmdbClient := infra_tmdb.New(cfg.TMDB)

	var blobRepo usecase_sync.BlobRepository
	if cfg.Sync.Backend == "postgres" {
		pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)
		blobRepo = infra_postgres_userdata.New(pgConn)
	} else {
		blobRepo = infra_blob.New(blobBackend)
	}

	swipeUC := usecase_swipe.New(swipeStore, tmdbClient)
	castUC := usecase_cast.New(castStore)
	syncUC := usecase_sync.New(blobRepo)
	catalogUC := usecase_catalog.New(tmdbClient, cache)
	authService := service_account_auth.New(accountStore, sessions, sessionTTL)

	hub := ws_room.New(slog.Default())

	controllerPool := http_init.NewControllerPool()
	controllerPool.Add(http_swipe.New(swipeUC, hub))
	controllerPool.Add(http_cast.New(castUC))
	controllerPool.Add(http_sync.New(syncUC))
	controllerPool.Add(http_catalog.New(catalogUC))
	controllerPool.Add(http_auth.New(authService))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Host + ":" + cfg.HTTP.Port)
}

// buildInfra picks the key-value backends per the configured storage driver.
// Redis brings its own session cache; the other drivers fall back to the
// in-memory one.
func buildInfra(cfg *config.Config) (
	swipe, cast, account, blob storage_keyed.Backend,
	sessions service_account_auth.SessionCache,
	cache usecase_catalog.Cache,
) {
	switch cfg.Storage.Backend {
	case "redis":
		conn := infra_redis_init.MustEstablishConn(cfg.Redis)
		swipe = infra_redis_kv.New(conn, "swipe_room")
		cast = infra_redis_kv.New(conn, "cast_room")
		account = infra_redis_kv.New(conn, "account")
		blob = infra_redis_kv.New(conn, "user_data")
		sessions = infra_redis_cache.New(conn, "session")
		cache = infra_redis_cache.New(conn, "catalog")

	case "memory":
		swipe = infra_memory.New()
		cast = infra_memory.New()
		account = infra_memory.New()
		blob = infra_memory.New()
		memCache := infra_memory.NewCache()
		sessions = memCache
		cache = memCache

	default:
		fs := afero.NewOsFs()
		swipe = mustFileBackend(fs, cfg.Storage.DataDir, "swipe_rooms")
		cast = mustFileBackend(fs, cfg.Storage.DataDir, "cast_rooms")
		account = mustFileBackend(fs, cfg.Storage.DataDir, "accounts")
		blob = mustFileBackend(fs, cfg.Storage.DataDir, "user_data")
		memCache := infra_memory.NewCache()
		sessions = memCache
		cache = memCache
	}
	return
}

func mustFileBackend(fs afero.Fs, dataDir, name string) *infra_file.Backend {
	backend, err := infra_file.New(fs, filepath.Join(dataDir, name))
	if err != nil {
		log.Fatal(err)
	}
	return backend
}

func setupLogger(cfg config.Log) {
	var out io.Writer = os.Stderr
	if cfg.File != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(out, nil)))
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
