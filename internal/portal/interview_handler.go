package portal

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"interview-portal/internal/apiclient"
	"interview-portal/internal/lifecycle"
	"interview-portal/internal/middleware"
	"interview-portal/internal/model"
	"interview-portal/internal/schema"
	"interview-portal/internal/session"
)

// visible reports whether the active role may see iv: interviewers and
// interviewees their own, admins those of their organization. An admin
// without an organization sees none.
func visible(sess session.Session, iv model.Interview) bool {
	switch sess.Role {
	case model.RoleAdmin:
		return sess.OrganizationID != "" && iv.OrganizationID == sess.OrganizationID
	case model.RoleInterviewer:
		return iv.InterviewerID == sess.UserID
	case model.RoleInterviewee:
		return iv.IntervieweeID == sess.UserID
	}
	return false
}

func (s *Server) card(iv model.Interview) lifecycle.Card {
	return lifecycle.Card{Interview: iv, Gate: lifecycle.ForInterview(s.now(), iv)}
}

// fetch loads the interview named by :id and checks it is visible to the
// session. On false the response has been written.
func (s *Server) fetch(c *gin.Context, api *apiclient.Client) (model.Interview, bool) {
	res, err := api.GetInterview(c.Request.Context(), c.Param("id"))
	if err != nil {
		formError(c, err)
		return model.Interview{}, false
	}
	if !res.Success {
		failedResult(c, res)
		return model.Interview{}, false
	}
	if !visible(current(c), res.Data) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return model.Interview{}, false
	}
	return res.Data, true
}

func (s *Server) userAPI(c *gin.Context) *apiclient.Client {
	return s.api.WithToken(current(c).APIToken)
}

func (s *Server) createInterview(c *gin.Context) {
	var f schema.InterviewForm
	if err := c.ShouldBind(&f); err != nil {
		badBody(c, err)
		return
	}
	sess := current(c)
	switch {
	case f.OrganizationID == "":
		f.OrganizationID = sess.OrganizationID
	case sess.OrganizationID != "" && f.OrganizationID != sess.OrganizationID:
		invalid(c, foreignOrg())
		return
	}
	if f.Interviewer == "" && sess.Role == model.RoleInterviewer {
		f.Interviewer = sess.UserID
	}

	var resume *apiclient.Attachment
	if fh, err := c.FormFile("resume"); err == nil {
		file, err := fh.Open()
		if err != nil {
			formError(c, err)
			return
		}
		defer file.Close()
		resume = attachment(fh, file)
	}

	res, err := s.userAPI(c).CreateInterview(c.Request.Context(), f, resume)
	if err != nil {
		formError(c, err)
		return
	}
	if !res.Success {
		failedResult(c, res)
		return
	}
	submitted(c, http.StatusCreated, s.card(res.Data))
}

func attachment(fh *multipart.FileHeader, file multipart.File) *apiclient.Attachment {
	return &apiclient.Attachment{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        file,
	}
}

// listInterviews reads straight from the API, scoped to the active role.
func (s *Server) listInterviews(c *gin.Context) {
	sess := current(c)
	f := apiclient.InterviewFilter{Status: model.Status(c.Query("status"))}
	switch sess.Role {
	case model.RoleInterviewer:
		f.InterviewerID = sess.UserID
	case model.RoleInterviewee:
		f.IntervieweeID = sess.UserID
	default:
		f.InterviewerID = c.Query("interviewer")
		f.IntervieweeID = c.Query("interviewee")
	}
	res := s.userAPI(c).ListInterviews(c.Request.Context(), f)
	if !res.Success {
		failedResult(c, res)
		return
	}
	out := make([]model.Interview, 0, len(res.Data))
	for _, iv := range res.Data {
		if visible(sess, iv) {
			out = append(out, iv)
		}
	}
	c.JSON(http.StatusOK, lifecycle.Cards(s.now(), out))
}

func (s *Server) getInterview(c *gin.Context) {
	iv, ok := s.fetch(c, s.userAPI(c))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.card(iv))
}

func (s *Server) updateInterview(c *gin.Context) {
	var p schema.InterviewPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		badBody(c, err)
		return
	}
	if err := p.Validate(); invalid(c, err) {
		return
	}
	api := s.userAPI(c)
	if _, ok := s.fetch(c, api); !ok {
		return
	}
	res, err := api.UpdateInterview(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		formError(c, err)
		return
	}
	if !res.Success {
		failedResult(c, res)
		return
	}
	submitted(c, http.StatusOK, s.card(res.Data))
}

func (s *Server) deleteInterview(c *gin.Context) {
	api := s.userAPI(c)
	if _, ok := s.fetch(c, api); !ok {
		return
	}
	res, err := api.DeleteInterview(c.Request.Context(), c.Param("id"))
	if err != nil {
		formError(c, err)
		return
	}
	if !res.Success {
		failedResult(c, res)
		return
	}
	if res.Data.ID == "" {
		res.Data.ID = c.Param("id")
	}
	submitted(c, http.StatusOK, res.Data)
}

type joinResponse struct {
	Room string         `json:"room"`
	Card lifecycle.Card `json:"interview"`
}

// joinInterview re-derives the gate at request time; a stale dashboard
// cannot open a closed window.
func (s *Server) joinInterview(c *gin.Context) {
	iv, ok := s.fetch(c, s.userAPI(c))
	if !ok {
		return
	}
	card := s.card(iv)
	if !card.Gate.CanJoin {
		c.JSON(http.StatusConflict, gin.H{"error": "interview is not open for joining", "gate": card.Gate})
		return
	}
	middleware.Logger(c).Infof("join: %s entered %s", current(c).UserID, iv.ID)
	c.JSON(http.StatusOK, joinResponse{Room: "/rooms/" + iv.ID, Card: card})
}
