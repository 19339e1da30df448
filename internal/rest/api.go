package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/RawdodReverend/EXIF-STRIP/imaging/application"
)

// API holds the handlers' dependencies.
type API struct {
	inspector    *application.Inspector
	orchestrator *application.Orchestrator
	maxUpload    int64
}

func NewApi(router *gin.Engine, inspector *application.Inspector, orchestrator *application.Orchestrator, maxUpload int64) *API {
	a := &API{
		inspector:    inspector,
		orchestrator: orchestrator,
		maxUpload:    maxUpload,
	}

	router.GET("/", a.Index)
	router.POST("/inspect", a.Inspect)
	router.POST("/strip", a.Strip)

	return a
}
