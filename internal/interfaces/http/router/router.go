// Package router mounts the invoicing resources under the versioned API prefix.
package router

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
)

// API collects resources and mounts them under /api/<version>
type API struct {
	engine     *gin.Engine
	version    string
	middleware []gin.HandlerFunc
	resources  []*Resource
}

// NewAPI creates an API for engine; version defaults to v1
func NewAPI(engine *gin.Engine, version string) *API {
	if version == "" {
		version = "v1"
	}
	return &API{engine: engine, version: version}
}

// Base returns the mount prefix, e.g. /api/v1
func (a *API) Base() string {
	return "/api/" + a.version
}

// Use adds middleware run before every resource handler, in order
func (a *API) Use(middleware ...gin.HandlerFunc) *API {
	a.middleware = append(a.middleware, middleware...)
	return a
}

// Resource declares a top-level resource under prefix
func (a *API) Resource(prefix string, middleware ...gin.HandlerFunc) *Resource {
	r := &Resource{prefix: prefix, middleware: middleware}
	a.resources = append(a.resources, r)
	return r
}

// Mount registers every declared route on the engine
func (a *API) Mount() {
	group := a.engine.Group(a.Base(), a.middleware...)
	for _, r := range a.resources {
		r.mount(group)
	}
}

// Routes lists the declared routes as "METHOD /full/path"
func (a *API) Routes() []string {
	var out []string
	for _, r := range a.resources {
		out = r.collect(a.Base(), out)
	}
	return out
}

// Resource is a set of routes sharing a path prefix
type Resource struct {
	prefix     string
	middleware []gin.HandlerFunc
	routes     []route
	children   []*Resource
}

type route struct {
	method  string
	path    string
	handler gin.HandlerFunc
}

func (r *Resource) handle(method, p string, h gin.HandlerFunc) *Resource {
	r.routes = append(r.routes, route{method: method, path: p, handler: h})
	return r
}

func (r *Resource) GET(p string, h gin.HandlerFunc) *Resource {
	return r.handle(http.MethodGet, p, h)
}

func (r *Resource) POST(p string, h gin.HandlerFunc) *Resource {
	return r.handle(http.MethodPost, p, h)
}

func (r *Resource) PUT(p string, h gin.HandlerFunc) *Resource {
	return r.handle(http.MethodPut, p, h)
}

func (r *Resource) DELETE(p string, h gin.HandlerFunc) *Resource {
	return r.handle(http.MethodDelete, p, h)
}

// Nested declares a child resource below this one
func (r *Resource) Nested(prefix string) *Resource {
	child := &Resource{prefix: prefix}
	r.children = append(r.children, child)
	return child
}

func (r *Resource) mount(parent *gin.RouterGroup) {
	group := parent.Group(r.prefix, r.middleware...)
	for _, rt := range r.routes {
		group.Handle(rt.method, rt.path, rt.handler)
	}
	for _, child := range r.children {
		child.mount(group)
	}
}

func (r *Resource) collect(base string, out []string) []string {
	base = path.Join(base, r.prefix)
	for _, rt := range r.routes {
		out = append(out, rt.method+" "+path.Join(base, rt.path))
	}
	for _, child := range r.children {
		out = child.collect(base, out)
	}
	return out
}
