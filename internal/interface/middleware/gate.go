package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-member-portal/internal/application"
	"github.com/oksasatya/go-member-portal/internal/domain/apperror"
	"github.com/oksasatya/go-member-portal/internal/domain/entity"
	"github.com/oksasatya/go-member-portal/internal/domain/policy"
	"github.com/oksasatya/go-member-portal/pkg/helpers"
	"github.com/oksasatya/go-member-portal/pkg/response"
)

// Surface selects how a refused request is answered: page routes redirect,
// API routes get 401.
type Surface int

const (
	Page Surface = iota
	API
)

const adminUserKey = "admin_user"

// Require gates a route on the session snapshot.
func Require(level policy.Level, surface Surface) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch policy.Decide(CurrentIdentity(c), level) {
		case policy.Proceed:
			c.Next()
		case policy.RedirectHome:
			redirect(c, "/")
		case policy.RedirectLogin:
			refuse(c, surface, "/login")
		default:
			refuse(c, surface, "/")
		}
	}
}

// RequireStoredAdmin confirms the caller is still an admin according to the
// credential store. Use it after Require(policy.Admin, ...).
func RequireStoredAdmin(svc *application.AdminService, surface Surface, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := svc.VerifyAdmin(c.Request.Context(), CurrentIdentity(c))
		if errors.Is(err, apperror.ErrUnauthorized) {
			refuse(c, surface, "/")
			return
		}
		if err != nil {
			if logger != nil {
				helpers.RequestLogger(logger, c).WithError(err).Error("verify admin failed")
			}
			if surface == API {
				response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
			} else {
				c.String(http.StatusInternalServerError, "Internal server error")
			}
			c.Abort()
			return
		}
		c.Set(adminUserKey, u)
		c.Next()
	}
}

// AdminUser returns the stored record confirmed by RequireStoredAdmin.
func AdminUser(c *gin.Context) *entity.User {
	if v, ok := c.Get(adminUserKey); ok {
		u, _ := v.(*entity.User)
		return u
	}
	return nil
}

func refuse(c *gin.Context, surface Surface, to string) {
	if surface == API {
		response.Error[any](c, http.StatusUnauthorized, "Unauthorized", nil)
		c.Abort()
		return
	}
	redirect(c, to)
}

func redirect(c *gin.Context, to string) {
	c.Redirect(http.StatusFound, to)
	c.Abort()
}
