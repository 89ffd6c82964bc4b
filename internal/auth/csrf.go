package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"blog-server/internal/domain"
)

const (
	// CSRFFieldName is the hidden form field carrying the token.
	CSRFFieldName = "csrf_token"
	// CSRFHeader may carry the token instead of the form field.
	CSRFHeader = "X-CSRF-Token"

	sessionKeyCSRF = "csrf_token"
)

// CSRFToken returns the token bound to the session, issuing one on first use.
// It saves the session, so call it before the response body is written.
func CSRFToken(c *gin.Context) (string, error) {
	session := sessions.Default(c)
	if token, ok := session.Get(sessionKeyCSRF).(string); ok && token != "" {
		return token, nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate csrf token: %w", err)
	}
	token := hex.EncodeToString(buf)
	session.Set(sessionKeyCSRF, token)
	if err := session.Save(); err != nil {
		return "", fmt.Errorf("save csrf token: %w", err)
	}
	return token, nil
}

// VerifyCSRF rejects state-changing requests whose token does not match the
// one bound to the session. Rejections are recorded as domain.ErrForbidden.
func VerifyCSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		expected, _ := sessions.Default(c).Get(sessionKeyCSRF).(string)
		received := c.PostForm(CSRFFieldName)
		if received == "" {
			received = c.GetHeader(CSRFHeader)
		}
		if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(received)) != 1 {
			_ = c.Error(fmt.Errorf("csrf token mismatch: %w", domain.ErrForbidden))
			c.Abort()
			return
		}
		c.Next()
	}
}
