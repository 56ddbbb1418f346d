package portal

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"interview-portal/internal/schema"
)

// createDemoRequest is the public lead form. It needs no session.
func (s *Server) createDemoRequest(c *gin.Context) {
	var f schema.DemoRequestForm
	if err := c.ShouldBind(&f); err != nil {
		badBody(c, err)
		return
	}
	res, err := s.api.CreateDemoRequest(c.Request.Context(), f)
	if err != nil {
		formError(c, err)
		return
	}
	if !res.Success {
		failedResult(c, res)
		return
	}
	submitted(c, http.StatusCreated, res.Data)
}

func (s *Server) listDemoRequests(c *gin.Context) {
	res := s.api.WithToken(current(c).APIToken).ListDemoRequests(c.Request.Context())
	if !res.Success {
		failedResult(c, res)
		return
	}
	c.JSON(http.StatusOK, res.Data)
}

// demoRequestsHealth relays the API's demo-request probe.
func (s *Server) demoRequestsHealth(c *gin.Context) {
	res := s.api.TestDemoRequests(c.Request.Context())
	if !res.Success {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": res.Error})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "upstream": res.Data})
}
