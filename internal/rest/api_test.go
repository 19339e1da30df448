package rest

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/RawdodReverend/EXIF-STRIP/api"
	"github.com/RawdodReverend/EXIF-STRIP/imaging/application"
	"github.com/RawdodReverend/EXIF-STRIP/imaging/codec"
	"github.com/RawdodReverend/EXIF-STRIP/imaging/domain"
	"github.com/RawdodReverend/EXIF-STRIP/internal/fixture"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := codec.NewRegistry(codec.Capabilities{}, codec.Limits{})
	inspector := application.NewInspector(reg)
	stripper := application.NewStripper(reg, application.StripperConfig{})
	orchestrator := application.NewOrchestrator(stripper, 2)

	router := gin.New()
	NewApi(router, inspector, orchestrator, 64<<20)
	return router
}

func multipartBody(t *testing.T, field string, files map[string][]byte, extra map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, data := range files {
		fw, err := mw.CreateFormFile(field, name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	for k, v := range extra {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func TestIndexServesUI(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "<html") {
		t.Error("expected an HTML document")
	}
}

func TestInspectMissingFile(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/inspect", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestInspectReturnsSummary(t *testing.T) {
	router := newTestRouter(t)

	body, contentType := multipartBody(t, "file", map[string][]byte{"photo.jpg": fixture.JPEGWithEXIF(8, 8)}, nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/inspect", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp api.InspectResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Format == nil || *resp.Format != "JPEG" {
		t.Errorf("format = %v, want JPEG", resp.Format)
	}
	if resp.EXIF["Make"] != "GoCam" {
		t.Errorf("exif[Make] = %v, want GoCam", resp.EXIF["Make"])
	}
	if len(resp.GPS.LatLon) != 2 {
		t.Errorf("gps.latlon = %v, want a coordinate pair", resp.GPS.LatLon)
	}
}

func TestInspectCorruptFileStillAnswers(t *testing.T) {
	router := newTestRouter(t)

	body, contentType := multipartBody(t, "file", map[string][]byte{"broken.png": []byte("junk")}, nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/inspect", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp api.InspectResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Format != nil {
		t.Errorf("format = %v, want null", *resp.Format)
	}
	if len(resp.Warnings) == 0 {
		t.Error("expected warnings for corrupt input")
	}
}

func TestStripNoFiles(t *testing.T) {
	router := newTestRouter(t)

	body, contentType := multipartBody(t, "files", nil, map[string]string{"drop_all": "0"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/strip", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestStripReturnsArchive(t *testing.T) {
	router := newTestRouter(t)

	body, contentType := multipartBody(t, "files", map[string][]byte{
		"good.png":   fixture.BasePNG(4, 4),
		"broken.png": []byte("junk"),
	}, map[string]string{"drop_all": "1"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/strip", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/zip" {
		t.Errorf("content type = %q, want application/zip", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "cleaned_") {
		t.Errorf("content disposition = %q", cd)
	}

	zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	if err != nil {
		t.Fatal(err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("archive members = %d, want 2", len(zr.File))
	}

	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
		if f.Method != zip.Store {
			t.Errorf("member %q method = %d, want Store", f.Name, f.Method)
		}
	}
	if !names["good.png"] {
		t.Errorf("missing cleaned member, have %v", names)
	}
	if !names["broken.png.ERROR.txt"] {
		t.Errorf("missing error marker member, have %v", names)
	}
}

func TestBuildArchiveAddsWarningMembers(t *testing.T) {
	outcomes := []domain.BatchOutcome{
		{
			Name:     "anim.webp",
			Data:     []byte("webp bytes"),
			Warnings: []string{"animated WebP: only the first of 4 frames can be rebuilt"},
		},
		{Name: "ok.png", Data: []byte("png bytes")},
	}

	archive, err := buildArchive(outcomes)
	if err != nil {
		t.Fatal(err)
	}
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		t.Fatal(err)
	}
	if len(zr.File) != 3 {
		t.Fatalf("archive members = %d, want 3", len(zr.File))
	}

	var marker *zip.File
	for _, f := range zr.File {
		if f.Name == "anim.webp"+domain.WarningMarkerSuffix {
			marker = f
		}
		if f.Name == "ok.png"+domain.WarningMarkerSuffix {
			t.Errorf("unexpected warning marker for a clean item")
		}
	}
	if marker == nil {
		t.Fatal("missing warning marker member")
	}

	rc, err := marker.Open()
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	note, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(note), "first of 4 frames") {
		t.Errorf("marker content = %q, want the degradation message", note)
	}
}

func TestStripOversizedUpload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := codec.NewRegistry(codec.Capabilities{}, codec.Limits{})
	inspector := application.NewInspector(reg)
	stripper := application.NewStripper(reg, application.StripperConfig{})
	orchestrator := application.NewOrchestrator(stripper, 1)

	router := gin.New()
	NewApi(router, inspector, orchestrator, 16) // 16 byte cap

	body, contentType := multipartBody(t, "files", map[string][]byte{"big.png": fixture.BasePNG(8, 8)}, nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/strip", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
