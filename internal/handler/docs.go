package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	// registers the OpenAPI document with swag
	_ "github.com/maxviazov/pokedex-service/internal/docs"
)

// RegisterDocs mounts Swagger UI and the generated document under /swagger/.
// GET /swagger/index.html renders the UI, GET /swagger/doc.json serves the document.
func RegisterDocs(r *gin.Engine) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
