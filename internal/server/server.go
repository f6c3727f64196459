package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kolahope/kolahope/internal/clock"
	"github.com/kolahope/kolahope/internal/config"
	"github.com/kolahope/kolahope/internal/content"
	contentdomain "github.com/kolahope/kolahope/internal/content/domain"
	"github.com/kolahope/kolahope/internal/donation"
	donationdomain "github.com/kolahope/kolahope/internal/donation/domain"
	"github.com/kolahope/kolahope/internal/leads"
	leadsdomain "github.com/kolahope/kolahope/internal/leads/domain"
	"github.com/kolahope/kolahope/internal/migration"
	"github.com/kolahope/kolahope/internal/notification"
	"github.com/kolahope/kolahope/internal/observability"
	obsmiddleware "github.com/kolahope/kolahope/internal/observability/logger"
	obsmetrics "github.com/kolahope/kolahope/internal/observability/metrics"
	obstracing "github.com/kolahope/kolahope/internal/observability/tracing"
	"github.com/kolahope/kolahope/internal/program"
	programdomain "github.com/kolahope/kolahope/internal/program/domain"
	"github.com/kolahope/kolahope/internal/providers/email"
	"github.com/kolahope/kolahope/internal/providers/paystack"
	"github.com/kolahope/kolahope/internal/ratelimit"
	"github.com/kolahope/kolahope/internal/scheduler"
	"github.com/kolahope/kolahope/internal/userrole"
	userroledomain "github.com/kolahope/kolahope/internal/userrole/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	config.Module,
	clock.Module,
	fx.Provide(registerGin),
	migration.Module,
	email.Module,
	paystack.Module,
	notification.Module,
	ratelimit.Module,
	donation.Module,
	program.Module,
	leads.Module,
	content.Module,
	userrole.Module,
	scheduler.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(CORS())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
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
	engine      *gin.Engine
	cfg         config.Config
	db          *gorm.DB
	log         *zap.Logger
	site        *config.SiteConfigHolder
	donationSvc donationdomain.Service
	programSvc  programdomain.Service
	leadsSvc    leadsdomain.Service
	contentSvc  contentdomain.Service
	roleSvc     userroledomain.Service
	limiter     *ratelimit.PublicLimiter
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	DB          *gorm.DB
	Log         *zap.Logger
	Site        *config.SiteConfigHolder
	DonationSvc donationdomain.Service
	ProgramSvc  programdomain.Service
	LeadsSvc    leadsdomain.Service
	ContentSvc  contentdomain.Service
	RoleSvc     userroledomain.Service
	Limiter     *ratelimit.PublicLimiter
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		db:          p.DB,
		log:         p.Log.Named("server"),
		site:        p.Site,
		donationSvc: p.DonationSvc,
		programSvc:  p.ProgramSvc,
		leadsSvc:    p.LeadsSvc,
		contentSvc:  p.ContentSvc,
		roleSvc:     p.RoleSvc,
		limiter:     p.Limiter,
	}

	svc.registerPublicRoutes()
	svc.registerAdminRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerPublicRoutes() {
	api := s.engine.Group("/api")

	// -------- Donations --------
	api.POST("/donations/initialize", s.CheckoutRateLimit(), s.InitializeDonation)
	api.POST("/donations/verify", s.CheckoutRateLimit(), s.VerifyDonation)
	api.GET("/donations/recent", s.RecentDonations)

	// -------- Programs --------
	api.GET("/programs", s.ListPrograms)
	api.GET("/programs/:slug", s.GetProgramBySlug)

	// -------- Leads --------
	api.POST("/contact", s.LeadRateLimit(), s.CreateContact)
	api.POST("/volunteers", s.LeadRateLimit(), s.CreateVolunteer)
	api.POST("/partners", s.LeadRateLimit(), s.CreatePartner)
	api.POST("/program-inquiries", s.LeadRateLimit(), s.CreateProgramInquiry)

	// -------- Content --------
	api.GET("/blog", s.ListPublishedPosts)
	api.GET("/blog/:slug", s.GetPostBySlug)
	api.GET("/gallery", s.ListGallery)

	// -------- Site --------
	api.GET("/site", s.GetSiteInfo)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/admin", s.RequireRole(userroledomain.RoleAdmin))

	admin.GET("/donations", s.ListDonations)

	admin.POST("/programs", s.CreateProgram)
	admin.PUT("/programs/:id", s.UpdateProgram)
	admin.POST("/programs/resync", s.ResyncProgramTotals)

	admin.GET("/contacts", s.ListContacts)
	admin.GET("/volunteers", s.ListVolunteers)
	admin.GET("/partners", s.ListPartners)
	admin.GET("/program-inquiries", s.ListProgramInquiries)

	admin.GET("/blog", s.ListAllPosts)
	admin.POST("/blog", s.CreatePost)
	admin.PUT("/blog/:id", s.UpdatePost)
	admin.DELETE("/blog/:id", s.DeletePost)
	admin.POST("/gallery", s.AddGalleryItem)
	admin.DELETE("/gallery/:id", s.RemoveGalleryItem)

	admin.GET("/users/:id/roles", s.ListUserRoles)
	admin.POST("/users/:id/roles", s.GrantRole)
	admin.DELETE("/users/:id/roles/:role", s.RevokeRole)
}
