package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"blog-server/internal/auth"
	"blog-server/internal/domain"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)

		c.Next()

		status := c.Writer.Status()
		entry := logger.WithFields(logrus.Fields{
			"request_id": id,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency":    time.Since(start).String(),
			"client_ip":  c.ClientIP(),
		})
		if status >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Info("request")
	}
}

// errorPages turns errors recorded with c.Error by handlers and guards into
// rendered error pages, as long as nothing has been written yet.
func (h *Handler) errorPages() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.renderError(c, http.StatusNotFound, "The page you were looking for does not exist.")
		case errors.Is(err, domain.ErrForbidden):
			h.renderError(c, http.StatusForbidden, "You are not allowed to do that.")
		case errors.Is(err, domain.ErrUnauthenticated):
			c.Redirect(http.StatusFound, auth.LoginPath)
		default:
			h.logger.WithField("request_id", c.GetString(requestIDKey)).WithError(err).Error("unexpected failure")
			h.renderError(c, http.StatusInternalServerError, "Something went wrong. Please try again later.")
		}
	}
}

// fail records err for errorPages and stops the handler chain.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
