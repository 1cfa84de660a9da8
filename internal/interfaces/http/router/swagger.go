package router

import (
	"github.com/erp/invoicing/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/erp/invoicing/docs"
)

// SwaggerPath is the route serving the OpenAPI UI and doc.json
const SwaggerPath = "/swagger/*any"

// MountSwagger serves the API documentation when cfg enables it. guard runs
// before the UI handler and is only applied when cfg.RequireAuth is set.
func MountSwagger(engine *gin.Engine, cfg config.SwaggerConfig, guard ...gin.HandlerFunc) bool {
	if !cfg.Enabled {
		return false
	}
	var handlers []gin.HandlerFunc
	if cfg.RequireAuth {
		handlers = append(handlers, guard...)
	}
	handlers = append(handlers, ginSwagger.WrapHandler(swaggerFiles.Handler))
	engine.GET(SwaggerPath, handlers...)
	return true
}
