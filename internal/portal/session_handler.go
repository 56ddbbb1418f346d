package portal

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"interview-portal/internal/apiclient"
	"interview-portal/internal/middleware"
	"interview-portal/internal/model"
	"interview-portal/internal/schema"
	"interview-portal/internal/session"
)

// setSession issues the session cookie. The body carries only the session
// view; the signed token stays in the HttpOnly cookie.
func (s *Server) setSession(c *gin.Context, status int, sess session.Session) {
	tok, err := s.signer.Issue(sess)
	if err != nil {
		formError(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, tok, int(s.signer.TTL().Seconds()), "/", "", c.Request.TLS != nil, true)
	submitted(c, status, sess.View())
}

// startSession turns an auth response into a signed session cookie.
func (s *Server) startSession(c *gin.Context, status int, res apiclient.Result[model.AuthResponse]) {
	if !res.Success {
		failedResult(c, res)
		return
	}
	sess, err := session.FromAuth(res.Data)
	if err != nil {
		formError(c, err)
		return
	}
	middleware.Logger(c).Infof("session: %s signed in as %s", sess.UserID, sess.Role)
	s.setSession(c, status, sess)
}

func (s *Server) login(c *gin.Context) {
	var f schema.LoginForm
	if err := c.ShouldBind(&f); err != nil {
		badBody(c, err)
		return
	}
	res, err := s.api.Login(c.Request.Context(), f)
	if err != nil {
		formError(c, err)
		return
	}
	s.startSession(c, http.StatusOK, res)
}

func (s *Server) register(c *gin.Context) {
	var f schema.RegisterForm
	if err := c.ShouldBind(&f); err != nil {
		badBody(c, err)
		return
	}
	res, err := s.api.Register(c.Request.Context(), f)
	if err != nil {
		formError(c, err)
		return
	}
	s.startSession(c, http.StatusCreated, res)
}

func (s *Server) logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", c.Request.TLS != nil, true)
	c.Status(http.StatusNoContent)
}

func (s *Server) currentSession(c *gin.Context) {
	c.JSON(http.StatusOK, current(c).View())
}

// switchRole makes another held role active and re-issues the cookie.
func (s *Server) switchRole(c *gin.Context) {
	var body struct {
		Role model.Role `json:"role" form:"role"`
	}
	if err := c.ShouldBind(&body); err != nil {
		badBody(c, err)
		return
	}
	next, err := current(c).SwitchRole(body.Role)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "role " + string(body.Role) + " is not available to this account"})
		return
	}
	s.setSession(c, http.StatusOK, next)
}
