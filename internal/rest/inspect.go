package rest

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RawdodReverend/EXIF-STRIP/api"
)

// Inspect reads one uploaded image from the "file" form field and returns
// its metadata summary. Malformed images still answer 200: decode problems
// surface inside the summary's warnings, not as transport errors.
func (a *API) Inspect(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "no file"})
		return
	}

	data, err := readUpload(fh, a.maxUpload)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	summary := a.inspector.Inspect(data, fh.Filename)
	c.JSON(http.StatusOK, api.NewInspectResponse(summary))
}

func readUpload(fh *multipart.FileHeader, maxUpload int64) ([]byte, error) {
	if maxUpload > 0 && fh.Size > maxUpload {
		return nil, fmt.Errorf("file %q exceeds the %d byte upload limit", fh.Filename, maxUpload)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload %q: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading upload %q: %w", fh.Filename, err)
	}
	return data, nil
}
