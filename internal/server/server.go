package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/teamhub/internal/auth"
	authdomain "github.com/smallbiznis/teamhub/internal/auth/domain"
	"github.com/smallbiznis/teamhub/internal/auth/session"
	"github.com/smallbiznis/teamhub/internal/config"
	"github.com/smallbiznis/teamhub/internal/invitation"
	invitationdomain "github.com/smallbiznis/teamhub/internal/invitation/domain"
	obsmiddleware "github.com/smallbiznis/teamhub/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/teamhub/internal/observability/metrics"
	"github.com/smallbiznis/teamhub/internal/team"
	teamdomain "github.com/smallbiznis/teamhub/internal/team/domain"
	"github.com/smallbiznis/teamhub/internal/usersearch"
	usersearchdomain "github.com/smallbiznis/teamhub/internal/usersearch/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	auth.Module,
	session.Module,
	team.Module,
	invitation.Module,
	usersearch.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, httpMetrics *obsmetrics.HTTPMetrics, db *gorm.DB) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           !cfg.IsProduction(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", healthHandler(db))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(cfg config.Config, httpMetrics *obsmetrics.HTTPMetrics, db *gorm.DB) *gin.Engine {
	return NewEngine(cfg, httpMetrics, db)
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	db            *gorm.DB
	authsvc       authdomain.Service
	sessions      *session.Manager
	genID         *snowflake.Node
	teamSvc       teamdomain.Service
	invitationSvc invitationdomain.Service
	userSearchSvc usersearchdomain.Service
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	DB            *gorm.DB
	Authsvc       authdomain.Service
	Sessions      *session.Manager
	GenID         *snowflake.Node
	TeamSvc       teamdomain.Service
	InvitationSvc invitationdomain.Service
	UserSearchSvc usersearchdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		db:            p.DB,
		authsvc:       p.Authsvc,
		sessions:      p.Sessions,
		genID:         p.GenID,
		teamSvc:       p.TeamSvc,
		invitationSvc: p.InvitationSvc,
		userSearchSvc: p.UserSearchSvc,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/signup", s.Signup)
	auth.POST("/login", s.Login)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.AuthRequired())

	teams := api.Group("/teams")
	{
		teams.GET("", s.ListTeams)
		teams.POST("", s.CreateTeam)
		teams.GET("/:id", s.GetTeam)
		teams.PUT("/:id", s.UpdateTeam)
		teams.DELETE("/:id", s.DeleteTeam)
		teams.GET("/:id/members", s.ListTeamMembers)
		teams.POST("/:id/members", s.AddTeamMember)
		teams.POST("/:id/invitations", s.CreateTeamInvitation)
	}

	invitations := api.Group("/invitations")
	{
		invitations.GET("/:token", s.GetInvitation)
		invitations.POST("/respond", s.RespondInvitation)
	}

	api.GET("/users/search", s.SearchUsers)
}
