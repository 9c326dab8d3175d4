package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-member-portal/internal/interface/http"
)

// DebugModule exposes expvar counters and the health check.
type DebugModule struct {
	Health       *handlers.HealthHandler
	ExposeExpvar bool
}

func NewDebugModule(health *handlers.HealthHandler, exposeExpvar bool) *DebugModule {
	return &DebugModule{Health: health, ExposeExpvar: exposeExpvar}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", m.Health.Health)
	if m.ExposeExpvar {
		rg.GET("/debug/vars", gin.WrapH(expvar.Handler()))
	}
}
