package http

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"blog-server/internal/domain"
	"blog-server/internal/service"
)

type registerForm struct {
	Email    string `form:"email" binding:"required,email"`
	Name     string `form:"name" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type loginForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// postForm is shared by the new and edit pages. img_url may be left empty when
// an image file is uploaded instead.
type postForm struct {
	Title    string `form:"title" binding:"required"`
	Subtitle string `form:"subtitle" binding:"required"`
	ImgURL   string `form:"img_url" binding:"omitempty,url"`
	Body     string `form:"body" binding:"required"`
}

func (f postForm) content() domain.PostContent {
	return domain.PostContent{
		Title:    f.Title,
		Subtitle: f.Subtitle,
		Body:     f.Body,
		ImgURL:   f.ImgURL,
	}
}

func postFormFrom(post *domain.Post) postForm {
	return postForm{
		Title:    post.Title,
		Subtitle: post.Subtitle,
		ImgURL:   post.ImgURL,
		Body:     post.Body,
	}
}

// bindForm binds the submitted form into dst and returns inline messages keyed
// by form field name. The map is empty when the form is valid.
func bindForm(c *gin.Context, dst any) map[string]string {
	errs := map[string]string{}
	err := c.ShouldBind(dst)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["form"] = "The form could not be read, please try again."
		return errs
	}
	for _, fe := range verrs {
		errs[fe.Field()] = validationMessage(fe)
	}
	return errs
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	default:
		return "Invalid value."
	}
}

// serviceFieldErrors extracts inline messages from input the service rejected.
func serviceFieldErrors(err error) (map[string]string, bool) {
	var verr *service.ValidationError
	if !errors.As(err, &verr) {
		return nil, false
	}
	return map[string]string{verr.Field: verr.Message}, true
}
