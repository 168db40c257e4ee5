package router

import (
	"github.com/gin-gonic/gin"
	"github.com/joefazee/placement/internal/deps"
)

// MountFunc represents a function that mounts routes for a module
type MountFunc func(*gin.RouterGroup, *deps.Container)

type Mounter struct {
	container *deps.Container
	prefix    string
}

func NewMounter(container *deps.Container, prefix string) *Mounter {
	if prefix == "" {
		prefix = "/api/v1"
	}
	return &Mounter{container: container, prefix: prefix}
}

// Public routes - no authentication required
func (m *Mounter) Public(engine *gin.Engine) *RouteGroup {
	return &RouteGroup{group: engine.Group(m.prefix), container: m.container}
}

// Authenticated routes run auth before every handler.
func (m *Mounter) Authenticated(engine *gin.Engine, auth gin.HandlerFunc) *RouteGroup {
	group := engine.Group(m.prefix)
	group.Use(auth)
	return &RouteGroup{group: group, container: m.container}
}

type RouteGroup struct {
	group     *gin.RouterGroup
	container *deps.Container
}

// Mount provides a fluent interface for mounting modules
func (rg *RouteGroup) Mount(mountFuncs ...MountFunc) *RouteGroup {
	for _, mount := range mountFuncs {
		mount(rg.group, rg.container)
	}
	return rg
}

// Group creates a sub-group for organizing routes
func (rg *RouteGroup) Group(path string, handlers ...gin.HandlerFunc) *RouteGroup {
	return &RouteGroup{group: rg.group.Group(path, handlers...), container: rg.container}
}

// RouterGroup exposes the underlying gin group.
func (rg *RouteGroup) RouterGroup() *gin.RouterGroup {
	return rg.group
}
