package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-server/internal/auth"
	"blog-server/internal/domain"
	"blog-server/internal/service"
)

const (
	msgEmailTaken    = "You've already signed up with that email, log in instead."
	msgUnknownEmail  = "That email does not exist, please try again."
	msgWrongPassword = "Password incorrect, please try again."
)

func (h *Handler) registerPage(c *gin.Context) {
	h.render(c, http.StatusOK, "register.html", gin.H{"form": registerForm{}})
}

func (h *Handler) register(c *gin.Context) {
	var form registerForm
	if errs := bindForm(c, &form); len(errs) > 0 {
		form.Password = ""
		h.render(c, http.StatusUnprocessableEntity, "register.html", gin.H{"form": form, "errors": errs})
		return
	}

	user, err := h.users.Register(c.Request.Context(), form.Email, form.Name, form.Password)
	if err != nil {
		if errs, ok := serviceFieldErrors(err); ok {
			form.Password = ""
			h.render(c, http.StatusUnprocessableEntity, "register.html", gin.H{"form": form, "errors": errs})
			return
		}
		if errors.Is(err, domain.ErrConflict) {
			h.flash(c, msgEmailTaken)
			c.Redirect(http.StatusFound, auth.LoginPath)
			return
		}
		fail(c, err)
		return
	}

	h.logger.WithField("user_id", user.ID).Info("user registered")

	if err := h.auth.Login(c, user); err != nil {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) loginPage(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", gin.H{"form": loginForm{}})
}

func (h *Handler) login(c *gin.Context) {
	var form loginForm
	if errs := bindForm(c, &form); len(errs) > 0 {
		form.Password = ""
		h.render(c, http.StatusUnprocessableEntity, "login.html", gin.H{"form": form, "errors": errs})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), form.Email, form.Password)
	switch {
	case errors.Is(err, service.ErrUnknownEmail):
		h.flash(c, msgUnknownEmail)
		c.Redirect(http.StatusFound, auth.LoginPath)
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		h.flash(c, msgWrongPassword)
		c.Redirect(http.StatusFound, auth.LoginPath)
		return
	case err != nil:
		fail(c, err)
		return
	}

	if err := h.auth.Login(c, user); err != nil {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.auth.Logout(c); err != nil {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}
