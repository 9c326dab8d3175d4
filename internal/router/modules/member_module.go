package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-member-portal/internal/domain/policy"
	handlers "github.com/oksasatya/go-member-portal/internal/interface/http"
	"github.com/oksasatya/go-member-portal/internal/interface/middleware"
)

type MemberModule struct {
	Handler *handlers.MemberHandler
}

func NewMemberModule(h *handlers.MemberHandler) *MemberModule {
	return &MemberModule{Handler: h}
}

func (m *MemberModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", m.Handler.Home)
	rg.GET("/members", middleware.Require(policy.Authenticated, middleware.Page), m.Handler.Members)
	rg.POST("/getUserName", middleware.Require(policy.Authenticated, middleware.API), m.Handler.GetUserName)
}
