package httpserver

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"kb-integration/internal/prsync"
	"kb-integration/internal/quality"
	"kb-integration/internal/ratelimit"
	"kb-integration/internal/webhook"
	"kb-integration/pkg/encrypter"
	"kb-integration/pkg/log"
	"kb-integration/pkg/scope"
	"kb-integration/pkg/similarity"
)

const defaultShutdownTimeout = 30 * time.Second

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin             *gin.Engine
	l               log.Logger
	port            int
	mode            string
	environment     string
	shutdownTimeout time.Duration

	// Storage
	db      *sql.DB
	adminDB *sql.DB

	// Identity and secrets
	jwtManager   scope.Manager
	adminUserIDs []string
	encrypter    encrypter.Encrypter

	// Domain settings
	webhookCfg    webhook.Config
	replayOnStart bool
	rateLimitCfg  ratelimit.Config
	qualityCfg    quality.Config
	scorer        similarity.Scorer
	fileLister    prsync.FileLister
	prsyncCfg     prsync.Config

	// Built by mapHandlers
	limiter        ratelimit.Limiter
	webhookHandler *webhook.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger          log.Logger
	Port            int
	Mode            string
	Environment     string
	ShutdownTimeout time.Duration
	// TrustedProxies lists the peers whose forwarding headers set the client IP.
	// Empty trusts none.
	TrustedProxies []string

	// DB serves ordinary reads and writes. AdminDB, when set, serves
	// privileged config access; it defaults to DB.
	DB      *sql.DB
	AdminDB *sql.DB

	JWTManager   scope.Manager
	AdminUserIDs []string
	Encrypter    encrypter.Encrypter

	Webhook       webhook.Config
	ReplayOnStart bool
	RateLimit     ratelimit.Config
	Quality       quality.Config
	// Scorer enables the near-duplicate quality check. Nil skips it.
	Scorer     similarity.Scorer
	FileLister prsync.FileLister
	PRSync     prsync.Config
}

// New creates a new HTTPServer instance with every route mounted.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		shutdownTimeout: cfg.ShutdownTimeout,
		db:              cfg.DB,
		adminDB:         cfg.AdminDB,
		jwtManager:      cfg.JWTManager,
		adminUserIDs:    cfg.AdminUserIDs,
		encrypter:       cfg.Encrypter,
		webhookCfg:      cfg.Webhook,
		replayOnStart:   cfg.ReplayOnStart,
		rateLimitCfg:    cfg.RateLimit,
		qualityCfg:      cfg.Quality,
		scorer:          cfg.Scorer,
		fileLister:      cfg.FileLister,
		prsyncCfg:       cfg.PRSync,
	}
	if err := srv.gin.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	if srv.adminDB == nil {
		srv.adminDB = srv.db
	}
	if srv.shutdownTimeout <= 0 {
		srv.shutdownTimeout = defaultShutdownTimeout
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}
	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.db == nil {
		return errors.New("database is required")
	}
	if srv.jwtManager == nil {
		return errors.New("jwt manager is required")
	}
	if srv.encrypter == nil {
		return errors.New("encrypter is required")
	}
	if srv.fileLister == nil {
		return errors.New("file lister is required")
	}
	return nil
}
