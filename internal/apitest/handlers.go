package apitest

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"interview-portal/internal/model"
)

func (s *Server) issue(u *user) model.AuthResponse {
	tok := uuid.New().String()
	s.tokens[tok] = u.ID
	return model.AuthResponse{Token: tok, User: u.User}
}

func (s *Server) register(c *gin.Context) {
	var b struct {
		Name           string     `json:"name"`
		Email          string     `json:"email"`
		Password       string     `json:"password"`
		Role           model.Role `json:"role"`
		OrganizationID string     `json:"organization_id"`
	}
	if err := c.ShouldBindJSON(&b); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	u := newUser(b.Name, b.Email, b.Password, b.OrganizationID, b.Role)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.users[u.Email]; taken {
		c.JSON(http.StatusConflict, gin.H{"message": "Email already registered"})
		return
	}
	s.addUser(u)
	c.JSON(http.StatusCreated, s.issue(u))
}

func (s *Server) login(c *gin.Context) {
	var b struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&b); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[strings.ToLower(b.Email)]
	if !ok || bcrypt.CompareHashAndPassword(u.hash, []byte(b.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, s.issue(u))
}

func (s *Server) createDemo(c *gin.Context) {
	var d model.DemoRequest
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	d.ID = uuid.New().String()
	d.CreatedAt = s.Now().UTC()

	s.mu.Lock()
	s.demos = append(s.demos, d)
	s.mu.Unlock()
	c.JSON(http.StatusCreated, d)
}

func (s *Server) listDemos(c *gin.Context) {
	c.JSON(http.StatusOK, s.DemoRequests())
}

func (s *Server) testDemo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "count": len(s.DemoRequests())})
}

func (s *Server) createInterview(c *gin.Context) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"message": "Expected multipart/form-data"})
		return
	}
	at, err := time.Parse(time.RFC3339, c.PostForm("scheduled_at"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid scheduled_at"})
		return
	}
	dur, _ := strconv.Atoi(c.PostForm("duration"))
	iv := model.Interview{
		ID:             uuid.New().String(),
		OrganizationID: c.PostForm("organization_id"),
		CandidateName:  c.PostForm("candidateName"),
		IntervieweeID:  c.PostForm("interviewee_id"),
		InterviewerID:  c.PostForm("interviewer"),
		JobRole:        c.PostForm("jobRole"),
		ScheduledAt:    at,
		Duration:       dur,
		Format:         model.Format(c.PostForm("format")),
		Status:         model.StatusScheduled,
		QuestionBank:   c.PostForm("enableQuestionBank") == "true",
		CreatedAt:      s.Now().UTC(),
	}
	if fh, err := c.FormFile("resume"); err == nil {
		iv.ResumeURL = "/uploads/" + iv.ID + "/" + fh.Filename
	}
	iv.UpdatedAt = iv.CreatedAt
	c.JSON(http.StatusCreated, s.PutInterview(iv))
}

func (s *Server) listInterviews(c *gin.Context) {
	interviewer := c.Query("interviewer")
	interviewee := c.Query("interviewee")
	status := model.Status(c.Query("status"))

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Interview{}
	for _, id := range s.order {
		iv, ok := s.interviews[id]
		if !ok {
			continue
		}
		if interviewer != "" && iv.InterviewerID != interviewer {
			continue
		}
		if interviewee != "" && iv.IntervieweeID != interviewee {
			continue
		}
		if status != "" && iv.Status != status {
			continue
		}
		out = append(out, iv)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getInterview(c *gin.Context) {
	iv, ok := s.Interview(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Interview not found"})
		return
	}
	c.JSON(http.StatusOK, iv)
}

func (s *Server) updateInterview(c *gin.Context) {
	var p struct {
		Status            *model.Status `json:"status"`
		Notes             *string       `json:"notes"`
		FeedbackSubmitted *bool         `json:"feedback_submitted"`
	}
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	iv, ok := s.interviews[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Interview not found"})
		return
	}
	if p.Status != nil {
		iv.Status = *p.Status
	}
	if p.Notes != nil {
		iv.Notes = *p.Notes
	}
	if p.FeedbackSubmitted != nil {
		iv.FeedbackSubmitted = *p.FeedbackSubmitted
	}
	iv.UpdatedAt = s.Now().UTC()
	s.interviews[iv.ID] = iv
	c.JSON(http.StatusOK, iv)
}

func (s *Server) deleteInterview(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.interviews[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Interview not found"})
		return
	}
	delete(s.interviews, id)
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "Interview deleted"})
}
