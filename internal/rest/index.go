package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RawdodReverend/EXIF-STRIP/web"
)

func (a *API) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", web.IndexHTML)
}
