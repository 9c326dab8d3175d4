package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-member-portal/internal/domain/policy"
	handlers "github.com/oksasatya/go-member-portal/internal/interface/http"
	"github.com/oksasatya/go-member-portal/internal/interface/middleware"
)

// AdminModule registers the admin page and mutations. Every route checks the
// session snapshot first and then the stored role.
type AdminModule struct {
	Handler *handlers.AdminHandler
	Logger  *logrus.Logger
}

func NewAdminModule(h *handlers.AdminHandler, logger *logrus.Logger) *AdminModule {
	return &AdminModule{Handler: h, Logger: logger}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	page := []gin.HandlerFunc{
		middleware.Require(policy.Admin, middleware.Page),
		middleware.RequireStoredAdmin(m.Handler.Svc, middleware.Page, m.Logger),
	}
	api := []gin.HandlerFunc{
		middleware.Require(policy.Admin, middleware.API),
		middleware.RequireStoredAdmin(m.Handler.Svc, middleware.API, m.Logger),
	}

	rg.GET("/admin", append(page, m.Handler.Page)...)
	rg.GET("/admin/search", append(api, m.Handler.Search)...)
	rg.POST("/changeUserType", append(api, m.Handler.ChangeUserType)...)
	rg.POST("/deleteUser", append(api, m.Handler.DeleteUser)...)
}
