package router

import "github.com/gin-gonic/gin"

// Module is a feature area that mounts its routes on the site root group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
