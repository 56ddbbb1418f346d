// Package apitest is an in-memory stand-in for the scheduling REST API. It
// speaks the same routes and payloads so the API client and the portal can
// be exercised without a real backend.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"interview-portal/internal/model"
)

// Call records one request the fake received.
type Call struct {
	Method      string
	Path        string
	Query       string
	ContentType string
	Auth        string
	RequestID   string
}

type user struct {
	model.User
	hash []byte
}

type failure struct {
	status int
	body   string
}

type Server struct {
	*httptest.Server

	// RequireToken makes every interview and demo-request listing route
	// demand a bearer token issued by login/register.
	RequireToken bool
	Now          func() time.Time

	mu         sync.Mutex
	users      map[string]*user
	tokens     map[string]string
	interviews map[string]model.Interview
	order      []string
	demos      []model.DemoRequest
	calls      []Call
	fail       []failure
}

func New() *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{
		Now:        time.Now,
		users:      map[string]*user{},
		tokens:     map[string]string{},
		interviews: map[string]model.Interview{},
	}
	s.Server = httptest.NewServer(s.routes())
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(s.record, s.injectFailure)

	api := r.Group("/api")
	api.POST("/auth/register", s.register)
	api.POST("/auth/login", s.login)

	api.POST("/demo-requests", s.createDemo)
	api.GET("/demo-requests/test", s.testDemo)
	api.GET("/demo-requests", s.authed, s.listDemos)

	iv := api.Group("/interviews", s.authed)
	iv.POST("", s.createInterview)
	iv.GET("", s.listInterviews)
	iv.GET("/:id", s.getInterview)
	iv.PUT("/:id", s.updateInterview)
	iv.DELETE("/:id", s.deleteInterview)
	return r
}

// FailNext makes the next request answer with status and raw body.
// Failures queue up in call order.
func (s *Server) FailNext(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = append(s.fail, failure{status: status, body: body})
}

func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

func (s *Server) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// AddUser seeds an account and returns its id.
func (s *Server) AddUser(name, email, password string, orgID string, roles ...model.Role) string {
	u := newUser(name, email, password, orgID, roles...)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addUser(u)
	return u.ID
}

func newUser(name, email, password string, orgID string, roles ...model.Role) *user {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return &user{
		User: model.User{
			ID:             uuid.New().String(),
			Name:           name,
			Email:          strings.ToLower(email),
			Roles:          roles,
			OrganizationID: orgID,
		},
		hash: hash,
	}
}

// addUser stores u. Callers hold s.mu.
func (s *Server) addUser(u *user) {
	s.users[u.Email] = u
}

// PutInterview stores iv as-is, assigning an id when empty.
func (s *Server) PutInterview(iv model.Interview) model.Interview {
	s.mu.Lock()
	defer s.mu.Unlock()
	if iv.ID == "" {
		iv.ID = uuid.New().String()
	}
	if _, ok := s.interviews[iv.ID]; !ok {
		s.order = append(s.order, iv.ID)
	}
	s.interviews[iv.ID] = iv
	return iv
}

func (s *Server) Interview(id string) (model.Interview, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	iv, ok := s.interviews[id]
	return iv, ok
}

func (s *Server) DemoRequests() []model.DemoRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.DemoRequest(nil), s.demos...)
}

func (s *Server) record(c *gin.Context) {
	s.mu.Lock()
	s.calls = append(s.calls, Call{
		Method:      c.Request.Method,
		Path:        c.Request.URL.Path,
		Query:       c.Request.URL.RawQuery,
		ContentType: c.GetHeader("Content-Type"),
		Auth:        c.GetHeader("Authorization"),
		RequestID:   c.GetHeader("X-Request-ID"),
	})
	s.mu.Unlock()
	c.Next()
}

func (s *Server) injectFailure(c *gin.Context) {
	s.mu.Lock()
	var f *failure
	if len(s.fail) > 0 {
		f = &s.fail[0]
		s.fail = s.fail[1:]
	}
	s.mu.Unlock()
	if f != nil {
		c.Data(f.status, "application/json", []byte(f.body))
		c.Abort()
		return
	}
	c.Next()
}

func (s *Server) authed(c *gin.Context) {
	if !s.RequireToken {
		c.Next()
		return
	}
	raw := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	s.mu.Lock()
	_, ok := s.tokens[raw]
	s.mu.Unlock()
	if raw == "" || !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.Next()
}
