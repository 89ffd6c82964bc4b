package http

import (
	"embed"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"

	"blog-server/internal/auth"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	// post bodies are trusted rich text written by the administrator
	"safe": func(s string) template.HTML {
		return template.HTML(s)
	},
}

// render executes a page template with the values every page consumes: the
// current user, whether they administer the blog, pending flashes and the year.
func (h *Handler) render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	user := auth.UserFrom(c)
	data["user"] = user
	data["is_admin"] = user.IsAdmin()
	data["flashes"] = auth.Flashes(c)
	data["year"] = time.Now().Year()

	token, err := auth.CSRFToken(c)
	if err != nil {
		h.logger.WithError(err).Warn("issue csrf token")
	}
	data["csrf_token"] = token

	c.HTML(status, page, data)
}

func (h *Handler) renderError(c *gin.Context, status int, message string) {
	h.render(c, status, "error.html", gin.H{
		"status":  status,
		"message": message,
	})
}
