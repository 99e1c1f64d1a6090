// Package devserver is a self-contained stand-in for the monitoring
// platform's API, used to develop and exercise the console locally. It
// implements the same wire contract the console consumes: envelope
// responses, bearer-token authentication, and per-privilege access checks.
package devserver

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/clusterview-dev/clusterview/internal/config"
)

// Server represents the dev API server
type Server struct {
	router    *gin.Engine
	db        *gorm.DB
	cfg       *config.Config
	log       zerolog.Logger
	jwtSecret []byte
	data      *demoData
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// New creates a new dev server instance
func New(cfg *config.Config, zlog zerolog.Logger) (*Server, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Server.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := seedAccounts(db); err != nil {
		return nil, fmt.Errorf("failed to seed accounts: %w", err)
	}

	secret := cfg.Server.JWTSecret
	if secret == "" {
		// Ephemeral secret: fine for a dev backend, tokens die with
		// the process
		raw := make([]byte, 32)
		if _, err := rand.Read(raw); err != nil {
			return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		secret = hex.EncodeToString(raw)
		zlog.Debug().Msg("generated ephemeral JWT secret")
	}

	// Usernames are restricted to names safe to echo back anywhere
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
	}

	s := &Server{
		db:        db,
		cfg:       cfg,
		log:       zlog,
		jwtSecret: []byte(secret),
		data:      newDemoData(),
	}
	s.router = s.buildRouter()
	return s, nil
}

func (s *Server) buildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	apiGroup := router.Group("/api/v1")
	apiGroup.POST("/login", s.login)

	authGroup := apiGroup.Group("/")
	authGroup.Use(s.authMiddleware())
	{
		authGroup.GET("/user/info", s.userInfo)
		authGroup.POST("/user/change-password", s.changePassword)

		viewCluster := authGroup.Group("/", s.privilegeMiddleware("VIEW_CLUSTER"))
		{
			viewCluster.GET("/clusters", s.listClusters)
			viewCluster.GET("/clusters/:id", s.getCluster)
		}

		viewHost := authGroup.Group("/", s.privilegeMiddleware("VIEW_HOST"))
		{
			viewHost.GET("/hosts", s.listHosts)
			viewHost.GET("/hosts/:id", s.getHost)
		}

		viewService := authGroup.Group("/", s.privilegeMiddleware("VIEW_SERVICE"))
		{
			viewService.GET("/services", s.listServices)
			viewService.GET("/services/:id", s.getService)
		}

		viewMonitor := authGroup.Group("/", s.privilegeMiddleware("VIEW_MONITOR"))
		{
			viewMonitor.GET("/metrics", s.listMetrics)
			viewMonitor.GET("/alerts", s.listAlerts)
		}

		viewLog := authGroup.Group("/", s.privilegeMiddleware("VIEW_LOG"))
		{
			viewLog.GET("/logs", s.queryLogs)
		}
	}

	return router
}

// Handler exposes the router for tests.
func (s *Server) Handler() *gin.Engine {
	return s.router
}

// Start runs the HTTP server (blocks).
func (s *Server) Start() error {
	addr := ":" + s.cfg.Server.Port
	s.log.Info().Str("addr", addr).Msg("dev server listening")
	return s.router.Run(addr)
}
