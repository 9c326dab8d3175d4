package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-member-portal/internal/domain/apperror"
	"github.com/oksasatya/go-member-portal/internal/domain/entity"
	"github.com/oksasatya/go-member-portal/internal/interface/middleware"
	"github.com/oksasatya/go-member-portal/internal/interface/web"
	"github.com/oksasatya/go-member-portal/pkg/helpers"
)

// Pages holds what every page-rendering handler needs.
type Pages struct {
	View         *web.Renderer
	Logger       *logrus.Logger
	AdminEnabled bool
}

func NewPages(view *web.Renderer, logger *logrus.Logger, adminEnabled bool) *Pages {
	return &Pages{View: view, Logger: logger, AdminEnabled: adminEnabled}
}

func (p *Pages) render(c *gin.Context, status int, page, title string, vm any) {
	id := middleware.CurrentIdentity(c)
	frame := web.Frame{
		Title:     title,
		LoggedIn:  id != nil,
		ShowAdmin: p.AdminEnabled && id != nil && id.Role == entity.RoleAdmin,
		Page:      vm,
	}
	if err := p.View.Render(c, status, page, frame); err != nil {
		p.log(c).WithError(err).WithField("page", page).Error("render page failed")
	}
}

// failPage answers a form post with an error page linking back to the form.
func (p *Pages) failPage(c *gin.Context, status int, msg, back string) {
	p.render(c, status, web.PageError, "Error", web.ErrorView{Message: msg, Back: back, BackLabel: "Try again"})
}

// internalError logs err with request context and answers with a generic 500.
func (p *Pages) internalError(c *gin.Context, msg string, err error) {
	p.log(c).WithError(err).Error(msg)
	c.String(http.StatusInternalServerError, "Internal server error")
}

func (p *Pages) log(c *gin.Context) *logrus.Entry {
	logger := p.Logger
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	return helpers.RequestLogger(logger, c)
}

// clientError maps errors the caller can fix to a 400 message. ok is false
// for infrastructure failures.
func clientError(err error) (msg string, ok bool) {
	var ve *apperror.ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Message, true
	case errors.Is(err, apperror.ErrNotFound):
		return "User not found", true
	case errors.Is(err, apperror.ErrInvalidCredentials):
		return "Invalid email/password", true
	case errors.Is(err, apperror.ErrDuplicateKey):
		return "Email is already registered", true
	}
	return "", false
}
