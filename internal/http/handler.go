package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"blog-server/internal/auth"
	"blog-server/internal/service"
	"blog-server/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users  service.UserService
	posts  service.PostService
	auth   *auth.Authenticator
	images storage.Service
	logger *logrus.Logger
}

// NewHandler builds the handler set. images may be nil when no object storage
// is configured; header images must then be given as URLs.
func NewHandler(users service.UserService, posts service.PostService, authn *auth.Authenticator, images storage.Service, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:  users,
		posts:  posts,
		auth:   authn,
		images: images,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	site := router.Group("", h.errorPages(), h.auth.LoadIdentity(), auth.VerifyCSRF())
	{
		site.GET("/", h.listPosts)
		site.GET("/all-posts", h.listPosts)
		site.GET("/about", h.about)
		site.GET("/contact", h.contact)

		site.GET("/register", h.registerPage)
		site.POST("/register", h.register)
		site.GET("/login", h.loginPage)
		site.POST("/login", h.login)
	}

	// authentication is checked before authorization on every protected route
	members := site.Group("", auth.RequireAuthenticated())
	{
		members.GET("/post", h.showPost)
		members.GET("/logout", h.logout)
	}

	admin := members.Group("", auth.RequireAdmin())
	{
		admin.GET("/new-post", h.newPostPage)
		admin.POST("/new-post", h.createPost)
		admin.GET("/edit-post/:id", h.editPostPage)
		admin.POST("/edit-post/:id", h.updatePost)
		admin.GET("/delete/:id", h.deletePost)
	}
}

func (h *Handler) about(c *gin.Context) {
	h.render(c, http.StatusOK, "about.html", nil)
}

func (h *Handler) contact(c *gin.Context) {
	h.render(c, http.StatusOK, "contact.html", nil)
}

func (h *Handler) flash(c *gin.Context, message string) {
	if err := auth.Flash(c, message); err != nil {
		h.logger.WithError(err).Warn("save flash message")
	}
}
