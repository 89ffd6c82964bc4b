package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"blog-server/internal/domain"
)

const (
	// SessionCookieName names the signed cookie carrying the session.
	SessionCookieName = "blog_session"
	sessionKeyUser    = "user_id"

	// ContextUserKey holds the resolved *domain.User for the current request.
	ContextUserKey = "auth.user"
)

// UserLoader resolves a user by identifier.
type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Authenticator binds users to the signed cookie session of a browser.
type Authenticator struct {
	users UserLoader
}

func NewAuthenticator(users UserLoader) *Authenticator {
	return &Authenticator{users: users}
}

// Login binds the user to the current session.
func (a *Authenticator) Login(c *gin.Context, user *domain.User) error {
	session := sessions.Default(c)
	session.Set(sessionKeyUser, user.ID)
	if err := session.Save(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	c.Set(ContextUserKey, user)
	return nil
}

// Logout discards every value stored in the session, not only the user binding.
func (a *Authenticator) Logout(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	c.Set(ContextUserKey, (*domain.User)(nil))
	return nil
}

// CurrentUser loads the user bound to the session. It returns (nil, nil) for an
// anonymous session and an error wrapping domain.ErrNotFound when the bound
// user no longer exists.
func (a *Authenticator) CurrentUser(c *gin.Context) (*domain.User, error) {
	id, ok := sessions.Default(c).Get(sessionKeyUser).(int64)
	if !ok || id <= 0 {
		return nil, nil
	}
	user, err := a.users.GetByID(c.Request.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("session user %d: %w", id, err)
	}
	return user, nil
}

// LoadIdentity resolves the session user once per request and stores it under
// ContextUserKey. A dangling binding is dropped and reported as not found.
func (a *Authenticator) LoadIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := a.CurrentUser(c)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				session := sessions.Default(c)
				session.Clear()
				_ = session.Save()
			}
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// UserFrom returns the user resolved by LoadIdentity, or nil for anonymous requests.
func UserFrom(c *gin.Context) *domain.User {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}

// Flash queues a one-time message for the next rendered page.
func Flash(c *gin.Context, message string) error {
	session := sessions.Default(c)
	session.AddFlash(message)
	return session.Save()
}

// Flashes pops the queued messages. The caller must not have written the body yet.
func Flashes(c *gin.Context) []string {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = session.Save()

	messages := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			messages = append(messages, s)
		}
	}
	return messages
}
