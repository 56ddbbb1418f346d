package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/qiniu/x/xlog"

	"interview-portal/internal/reqid"
)

// XLogKey is the gin context key of the request-scoped logger.
const XLogKey = "xlog-logger"

// SetUpReq assigns a request id (reusing an incoming one) and attaches a
// request-scoped xlog logger.
func SetUpReq() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(reqid.Header)
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Header(reqid.Header, rid)
		xl := xlog.New(rid)
		xl.Debugf("request: %s %s", c.Request.Method, c.Request.URL.Path)
		c.Set(XLogKey, xl)
		c.Request = c.Request.WithContext(reqid.With(c.Request.Context(), rid))
		c.Next()
	}
}

// Logger returns the request logger, or a fresh one outside SetUpReq.
func Logger(c *gin.Context) *xlog.Logger {
	if v, ok := c.Get(XLogKey); ok {
		if xl, ok := v.(*xlog.Logger); ok {
			return xl
		}
	}
	return xlog.New(reqid.From(c.Request.Context()))
}
