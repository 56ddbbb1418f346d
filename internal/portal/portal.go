// Package portal is the browser-facing HTTP surface: session endpoints,
// role dashboards, the public demo-request form, interview scheduling and
// the admin directory.
package portal

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"interview-portal/internal/apiclient"
	"interview-portal/internal/metrics"
	"interview-portal/internal/middleware"
	"interview-portal/internal/model"
	"interview-portal/internal/reqid"
	"interview-portal/internal/session"
	"interview-portal/internal/store"
)

// Directory is the table store as the portal uses it.
type Directory interface {
	CreateOrganization(ctx context.Context, name, email string) (model.Organization, error)
	ListOrganizations(ctx context.Context) ([]model.Organization, error)
	GetOrganization(ctx context.Context, id string) (model.Organization, error)

	CreateInterviewer(ctx context.Context, name, email string, orgID *string) (model.Interviewer, error)
	ListInterviewers(ctx context.Context, orgID string) ([]model.Interviewer, error)
	GetInterviewer(ctx context.Context, id string) (model.Interviewer, error)
	UpdateInterviewer(ctx context.Context, id string, u store.InterviewerUpdate) (model.Interviewer, error)
	DeleteInterviewer(ctx context.Context, id string) error

	CreateInterviewee(ctx context.Context, name, email string, orgID *string) (model.Interviewee, error)
	ListInterviewees(ctx context.Context, orgID string) ([]model.Interviewee, error)

	CreateOrganizationAdmin(ctx context.Context, name, email string, orgID *string) (model.OrganizationAdmin, error)
	ListOrganizationAdmins(ctx context.Context, orgID string) ([]model.OrganizationAdmin, error)

	ListInterviews(ctx context.Context, f store.InterviewFilter) ([]model.Interview, error)
}

type Options struct {
	API         *apiclient.Client
	Directory   Directory
	Signer      *session.Signer
	Limiter     *middleware.RateLimiter
	CORSOrigins []string
	// Now defaults to time.Now.
	Now func() time.Time
}

type Server struct {
	api     *apiclient.Client
	dir     Directory
	signer  *session.Signer
	limiter *middleware.RateLimiter
	origins []string
	now     func() time.Time
}

func New(o Options) *Server {
	s := &Server{
		api:     o.API,
		dir:     o.Directory,
		signer:  o.Signer,
		limiter: o.Limiter,
		origins: o.CORSOrigins,
		now:     o.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *Server) Router() *gin.Engine {
	metrics.Init()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.SetUpReq(), middleware.PrometheusMetrics(), middleware.ReportErrors())
	if len(s.origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     s.origins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", reqid.Header},
			ExposeHeaders:    []string{reqid.Header},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	limited := r.Group("/", middleware.RateLimit(s.limiter))
	limited.POST("/session/login", s.login)
	limited.POST("/session/register", s.register)
	limited.POST("/demo-requests", s.createDemoRequest)

	r.POST("/session/logout", s.logout)
	r.GET("/demo-requests/health", s.demoRequestsHealth)

	authed := r.Group("/", middleware.Auth(s.signer))
	authed.GET("/session", s.currentSession)
	authed.POST("/session/role", s.switchRole)
	authed.GET("/dashboard", s.dashboard)

	authed.GET("/interviews", s.listInterviews)
	authed.GET("/interviews/:id", s.getInterview)
	authed.POST("/interviews/:id/join", s.joinInterview)

	schedulers := authed.Group("/", middleware.RequireRole(model.RoleAdmin, model.RoleInterviewer))
	schedulers.POST("/interviews", s.createInterview)
	schedulers.PATCH("/interviews/:id", s.updateInterview)
	schedulers.DELETE("/interviews/:id", s.deleteInterview)

	admin := authed.Group("/", middleware.RequireRole(model.RoleAdmin))
	admin.GET("/demo-requests", s.listDemoRequests)
	admin.GET("/organizations", s.listOrganizations)
	admin.POST("/organizations", s.createOrganization)
	admin.GET("/interviewers", s.listInterviewers)
	admin.POST("/interviewers", s.createInterviewer)
	admin.PUT("/interviewers/:id", s.updateInterviewer)
	admin.DELETE("/interviewers/:id", s.deleteInterviewer)
	admin.GET("/interviewees", s.listInterviewees)
	admin.POST("/interviewees", s.createInterviewee)
	admin.GET("/admins", s.listAdmins)
	admin.POST("/admins", s.createAdmin)

	return r
}
