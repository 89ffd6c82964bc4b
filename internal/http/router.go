package http

import (
	"fmt"
	"html/template"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"blog-server/internal/auth"
)

var registerFormNames sync.Once

// NewRouter builds the gin engine serving the blog: recovery, request logging,
// the cookie session, embedded templates and every route.
func NewRouter(h *Handler, store sessions.Store, logger *logrus.Logger) (*gin.Engine, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	useFormFieldNames()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	router.Use(sessions.Sessions(auth.SessionCookieName, store))
	router.SetHTMLTemplate(tmpl)

	h.RegisterRoutes(router)
	return router, nil
}

func loadTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
}

// useFormFieldNames makes validation errors report the form field name instead
// of the Go struct field name.
func useFormFieldNames() {
	registerFormNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("form"), ",")
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})
	})
}
