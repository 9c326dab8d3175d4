package router

import "github.com/gin-gonic/gin"

// Registry collects modules and the middleware applied to all of them.
// Member-portal routes live at the site root.
type Registry struct {
	Engine      *gin.Engine
	Root        *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, Root: engine.Group("/")}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// RegisterAll mounts every module. notFound, when set, answers unmatched
// routes after the shared middleware has run.
func (r *Registry) RegisterAll(notFound gin.HandlerFunc) {
	if len(r.middlewares) > 0 {
		r.Root.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.Root)
	}
	if notFound != nil {
		r.Engine.NoRoute(append(append([]gin.HandlerFunc{}, r.middlewares...), notFound)...)
	}
}
