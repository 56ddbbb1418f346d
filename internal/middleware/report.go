package middleware

import (
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

// ReportErrors logs the errors handlers attached with c.Error and forwards
// them to sentry when a client is configured. It never changes the
// response.
func ReportErrors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		xl := Logger(c)
		hub := sentry.CurrentHub()
		for _, ginErr := range c.Errors {
			xl.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), ginErr.Err)
			if hub == nil || hub.Client() == nil {
				continue
			}
			hub.WithScope(func(scope *sentry.Scope) {
				scope.SetTag("request_id", xl.ReqId)
				scope.SetExtra("endpoint", c.FullPath())
				scope.SetExtra("method", c.Request.Method)
				scope.SetExtra("status", c.Writer.Status())
				hub.CaptureException(ginErr.Err)
			})
		}
	}
}
