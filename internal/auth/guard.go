package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-server/internal/domain"
)

const (
	// LoginPath is where anonymous callers of protected routes are sent.
	LoginPath        = "/login"
	loginRequiredMsg = "Please log in to access this page."
)

// RequireAuthenticated rejects anonymous requests with a redirect to the login page.
// It expects LoadIdentity to have run.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserFrom(c) == nil {
			redirectToLogin(c)
			return
		}
		c.Next()
	}
}

// RequireAdmin lets only the administrator through. The administrator is the
// user with identifier domain.AdminUserID; there is no role model. Anonymous
// callers are sent to login rather than refused, so mount it after
// RequireAuthenticated.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := UserFrom(c)
		if user == nil {
			redirectToLogin(c)
			return
		}
		if !user.IsAdmin() {
			_ = c.Error(domain.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	if err := Flash(c, loginRequiredMsg); err != nil {
		_ = c.Error(err)
	}
	c.Redirect(http.StatusFound, LoginPath)
	c.Abort()
}
