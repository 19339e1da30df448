package rest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/RawdodReverend/EXIF-STRIP/api"
	"github.com/RawdodReverend/EXIF-STRIP/imaging/domain"
)

// Strip cleans every image in the "files" form field and streams back a ZIP
// archive with one member per upload. Failed items become error-marker
// members instead of failing the request; items cleaned with a degradation
// (animated WebP collapsing to one frame) get a companion warning-marker
// member. Members are stored uncompressed since image payloads do not
// deflate.
func (a *API) Strip(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "malformed multipart form"})
		return
	}
	uploads := form.File["files"]
	if len(uploads) == 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "no files"})
		return
	}

	policy := domain.StripEXIFOnly
	if c.PostForm("drop_all") == "1" {
		policy = domain.StripAll
	}

	items := make([]domain.BatchItem, 0, len(uploads))
	for _, fh := range uploads {
		data, err := readUpload(fh, a.maxUpload)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		items = append(items, domain.BatchItem{Filename: fh.Filename, Data: data})
	}

	outcomes := a.orchestrator.StripBatch(c.Request.Context(), items, policy)

	archive, err := buildArchive(outcomes)
	if err != nil {
		log.Error().Err(err).Msg("Failed to assemble result archive")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to assemble archive"})
		return
	}

	name := fmt.Sprintf("cleaned_%s.zip", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/zip", archive)
}

func buildArchive(outcomes []domain.BatchOutcome) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, outcome := range outcomes {
		if err := addMember(zw, outcome.Name, outcome.Data); err != nil {
			return nil, err
		}
		if outcome.Err == nil && len(outcome.Warnings) > 0 {
			note := []byte(strings.Join(outcome.Warnings, "\n"))
			if err := addMember(zw, outcome.Name+domain.WarningMarkerSuffix, note); err != nil {
				return nil, err
			}
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing archive: %w", err)
	}
	return buf.Bytes(), nil
}

func addMember(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Store,
		Modified: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("creating archive member %q: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing archive member %q: %w", name, err)
	}
	return nil
}
