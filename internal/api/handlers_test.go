package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sydlexius/scplabel/internal/assets"
	"github.com/sydlexius/scplabel/internal/compose"
	"github.com/sydlexius/scplabel/internal/database"
	"github.com/sydlexius/scplabel/internal/label"
	"github.com/sydlexius/scplabel/internal/logging"
	"github.com/sydlexius/scplabel/internal/project"
	"github.com/sydlexius/scplabel/internal/text"
)

func writeFixture(t *testing.T, path string, img image.Image, asPNG bool) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close() //nolint:errcheck
	if asPNG {
		err = png.Encode(f, img)
	} else {
		err = jpeg.Encode(f, img, nil)
	}
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
}

func testRouter(t *testing.T) (*Router, *project.Service) {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	resourceDir := t.TempDir()
	template := image.NewNRGBA(image.Rect(0, 0, label.Size, label.Size))
	for i := 0; i < len(template.Pix); i += 4 {
		template.Pix[i] = 190
		template.Pix[i+1] = 190
		template.Pix[i+2] = 170
		template.Pix[i+3] = 255
	}
	for _, class := range label.Classes() {
		writeFixture(t, filepath.Join(resourceDir, filepath.FromSlash(class.TemplatePath(false))), template, false)
	}

	assetMgr := assets.NewManager(resourceDir, "", logger)
	if err := assetMgr.Load(); err != nil {
		t.Fatalf("loading assets: %v", err)
	}

	renderer, err := text.New()
	if err != nil {
		t.Fatalf("text.New: %v", err)
	}

	logMgr, _ := logging.NewManager(logging.Config{Level: "error", Format: "text"})
	t.Cleanup(func() { _ = logMgr.Close() })

	projectSvc := project.NewService(db)

	r := NewRouter(RouterDeps{
		Composer:       compose.New(renderer),
		Assets:         assetMgr,
		ProjectService: projectSvc,
		LogManager:     logMgr,
		Logger:         logger,
	})
	return r, projectSvc
}

func testServer(t *testing.T) (*httptest.Server, *project.Service) {
	t.Helper()
	r, svc := testRouter(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	srv := httptest.NewServer(r.Handler(ctx))
	t.Cleanup(srv.Close)
	return srv, svc
}

func TestHandleHealth(t *testing.T) {
	r, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	r.handleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want %q", body["status"], "ok")
	}
}

func TestHandleRender_JSONConfig(t *testing.T) {
	r, _ := testRouter(t)

	cfg := label.Default()
	cfg.Number = "049"
	body, _ := json.Marshal(cfg)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/render", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.handleRender(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	img, err := png.Decode(w.Body)
	if err != nil {
		t.Fatalf("decoding response png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != label.Size || b.Dy() != label.Size {
		t.Errorf("rendered %dx%d, want %dx%d", b.Dx(), b.Dy(), label.Size, label.Size)
	}
}

func TestHandleRender_JPEGOutput(t *testing.T) {
	r, _ := testRouter(t)

	cfg := label.Default()
	cfg.OutputFormat = label.FormatJPEG
	body, _ := json.Marshal(cfg)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/render", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.handleRender(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("Content-Type = %q, want image/jpeg", ct)
	}
}

func TestHandleRender_MultipartWithImage(t *testing.T) {
	r, _ := testRouter(t)

	user := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for i := 0; i < len(user.Pix); i += 4 {
		user.Pix[i] = 255
		user.Pix[i+3] = 255
	}
	var imgBuf bytes.Buffer
	if err := png.Encode(&imgBuf, user); err != nil {
		t.Fatalf("encoding user image: %v", err)
	}

	cfgJSON, _ := json.Marshal(label.Default())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("config", string(cfgJSON)); err != nil {
		t.Fatalf("writing config field: %v", err)
	}
	fw, err := mw.CreateFormFile("image", "user.png")
	if err != nil {
		t.Fatalf("creating file part: %v", err)
	}
	if _, err := io.Copy(fw, &imgBuf); err != nil {
		t.Fatalf("copying image: %v", err)
	}
	mw.Close() //nolint:errcheck

	req := httptest.NewRequest(http.MethodPost, "/api/v1/render", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.handleRender(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	img, err := png.Decode(w.Body)
	if err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	slot := label.NormalUserImage
	c := color.NRGBAModel.Convert(img.At(slot.X+slot.Width/2, slot.Y+slot.Height/2)).(color.NRGBA)
	if c.R < 200 || c.G > 60 {
		t.Errorf("user image slot = %+v, want red upload visible", c)
	}
}

func TestHandleRender_BadBody(t *testing.T) {
	r, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/render", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.handleRender(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["kind"] != "invalid_config" {
		t.Errorf("kind = %q, want invalid_config", body["kind"])
	}
}

func TestHandleDefaults(t *testing.T) {
	r, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/defaults", nil)
	w := httptest.NewRecorder()
	r.handleDefaults(w, req)

	var cfg label.Config
	if err := json.NewDecoder(w.Body).Decode(&cfg); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if cfg.Class != label.ClassSafe {
		t.Errorf("Class = %q, want %q", cfg.Class, label.ClassSafe)
	}
	if len(cfg.Number) != 3 {
		t.Errorf("Number = %q, want a three digit identifier", cfg.Number)
	}
}

func TestHandleListClasses(t *testing.T) {
	r, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/classes", nil)
	w := httptest.NewRecorder()
	r.handleListClasses(w, req)

	var out []enumEntry
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(out) != 8 {
		t.Errorf("got %d classes, want 8", len(out))
	}
}

func TestProjectCRUDOverHTTP(t *testing.T) {
	srv, _ := testServer(t)

	cfg := label.Default()
	cfg.Number = "096"
	create, _ := json.Marshal(map[string]any{"name": "shy guy", "config": cfg})

	resp, err := http.Post(srv.URL+"/api/v1/projects", "application/json", bytes.NewReader(create))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	var created project.Project
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decoding created project: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created project has no ID")
	}

	resp, err = http.Get(srv.URL + "/api/v1/projects/" + created.ID)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/projects/"+created.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	resp, err = http.Get(srv.URL + "/api/v1/projects/" + created.ID)
	if err != nil {
		t.Fatalf("GET after delete: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	srv, svc := testServer(t)

	p := &project.Project{Name: "export me", Config: label.Default()}
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	resp, err := http.Get(srv.URL + "/api/v1/projects/" + p.ID + "/export")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	bundle, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading bundle: %v", err)
	}

	resp, err = http.Post(srv.URL+"/api/v1/projects/import", "application/zip", bytes.NewReader(bundle))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("import status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	var imported project.Project
	if err := json.NewDecoder(resp.Body).Decode(&imported); err != nil {
		t.Fatalf("decoding imported project: %v", err)
	}
	if imported.Name != "export me" {
		t.Errorf("Name = %q, want %q", imported.Name, "export me")
	}
	if imported.ID == p.ID {
		t.Error("imported project must get a fresh ID")
	}
}

func TestHandleAssetInventory(t *testing.T) {
	r, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/assets", nil)
	w := httptest.NewRecorder()
	r.handleAssetInventory(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var out struct {
		Packs   []string `json:"packs"`
		Classes []struct {
			Class        string   `json:"class"`
			HasAlternate bool     `json:"has_alternate"`
			Hazards      []string `json:"hazards"`
		} `json:"classes"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(out.Classes) != 8 {
		t.Errorf("got %d classes, want 8", len(out.Classes))
	}
	for _, c := range out.Classes {
		if c.HasAlternate {
			t.Errorf("class %s reports an alternate template the fixture never wrote", c.Class)
		}
	}
}

func TestHandleUpdateLogging(t *testing.T) {
	r, _ := testRouter(t)

	body := strings.NewReader(`{"level":"debug"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/logging", body)
	w := httptest.NewRecorder()
	r.handleUpdateLogging(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if got := r.logManager.Config().Level; got != "debug" {
		t.Errorf("Level = %q, want %q", got, "debug")
	}
	// Format was not provided and must survive the merge.
	if got := r.logManager.Config().Format; got != "text" {
		t.Errorf("Format = %q, want %q", got, "text")
	}
}

func TestHandleUpdateLogging_InvalidLevel(t *testing.T) {
	r, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/logging", strings.NewReader(`{"level":"verbose"}`))
	w := httptest.NewRecorder()
	r.handleUpdateLogging(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
