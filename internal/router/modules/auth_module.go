package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-member-portal/internal/domain/policy"
	handlers "github.com/oksasatya/go-member-portal/internal/interface/http"
	"github.com/oksasatya/go-member-portal/internal/interface/middleware"
)

// AuthModule serves the login and registration forms, their submissions and
// logout.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	guest := middleware.Require(policy.AnonymousOnly, middleware.Page)
	rg.GET("/login", guest, m.Handler.LoginPage)
	rg.GET("/register", guest, m.Handler.RegisterPage)

	rg.POST("/loginUser", m.Handler.LoginUser)
	rg.POST("/registerUser", m.Handler.RegisterUser)

	rg.GET("/logout", m.Handler.Logout)
	rg.POST("/logout", m.Handler.Logout)
}
