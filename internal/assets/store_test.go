package assets

import (
	"archive/zip"
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/sydlexius/scplabel/internal/label"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encoding jpeg: %v", err)
	}
	return buf.Bytes()
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	return buf.Bytes()
}

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// resourceTree writes a minimal but complete resource directory: one
// primary template per class, an alternate and a hazard icon for SAFE,
// and the texture overlay.
func resourceTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	template := encodeJPEG(t, solidImage(64, 64, color.NRGBA{R: 180, G: 180, B: 160, A: 255}))
	for _, class := range label.Classes() {
		writeFile(t, filepath.Join(dir, filepath.FromSlash(class.TemplatePath(false))), template)
	}

	alt := encodeJPEG(t, solidImage(64, 64, color.NRGBA{R: 40, G: 40, B: 40, A: 255}))
	writeFile(t, filepath.Join(dir, filepath.FromSlash(label.ClassSafe.TemplatePath(true))), alt)

	icon := encodePNG(t, solidImage(32, 48, color.NRGBA{R: 255, G: 200, B: 0, A: 255}))
	writeFile(t, filepath.Join(dir, filepath.FromSlash(label.HazardBiologicalHazard.IconPath(label.ClassSafe))), icon)

	texture := encodePNG(t, solidImage(64, 64, color.NRGBA{R: 90, G: 70, B: 50, A: 128}))
	writeFile(t, filepath.Join(dir, filepath.FromSlash(texturePath)), texture)

	return dir
}

func TestLoadNormalizesTemplates(t *testing.T) {
	s, err := Load(resourceTree(t), "", testLogger())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, class := range label.Classes() {
		tpl := s.Template(class, false)
		if tpl.Rect.Dx() != label.Size || tpl.Rect.Dy() != label.Size {
			t.Errorf("%s template is %dx%d, want %dx%d",
				class, tpl.Rect.Dx(), tpl.Rect.Dy(), label.Size, label.Size)
		}
	}
	tex := s.Texture()
	if tex.Rect.Dx() != label.Size || tex.Rect.Dy() != label.Size {
		t.Errorf("texture is %dx%d, want normalized", tex.Rect.Dx(), tex.Rect.Dy())
	}
}

func TestLoadIconKeepsNativeSize(t *testing.T) {
	s, err := Load(resourceTree(t), "", testLogger())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	icon := s.Icon(label.ClassSafe, label.HazardBiologicalHazard)
	if icon.Rect.Dx() != 32 || icon.Rect.Dy() != 48 {
		t.Errorf("icon is %dx%d, want 32x48 (icons are not normalized)",
			icon.Rect.Dx(), icon.Rect.Dy())
	}
}

func TestAlternateFallsBackToPrimary(t *testing.T) {
	s, err := Load(resourceTree(t), "", testLogger())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// Only SAFE has a distinct alternate in the fixture tree.
	primary := s.Template(label.ClassEuclid, false)
	alternate := s.Template(label.ClassEuclid, true)
	if !bytes.Equal(primary.Pix, alternate.Pix) {
		t.Error("missing alternate template must fall back to the primary")
	}

	safeAlt := s.Template(label.ClassSafe, true)
	safePrimary := s.Template(label.ClassSafe, false)
	if bytes.Equal(safeAlt.Pix, safePrimary.Pix) {
		t.Error("expected the SAFE alternate to differ from its primary")
	}
}

func TestMissingIconReturnsPlaceholder(t *testing.T) {
	s, err := Load(resourceTree(t), "", testLogger())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	icon := s.Icon(label.ClassKeter, label.HazardRadioactivity)
	if icon != s.Placeholder() {
		t.Error("missing icon must return the shared placeholder")
	}
	if icon.Rect.Dx() != 1 || icon.Rect.Dy() != 1 || icon.NRGBAAt(0, 0).A != 0 {
		t.Error("placeholder must be a 1x1 transparent image")
	}
}

func TestMissingPrimaryTemplateFails(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir, "", testLogger())
	if err == nil {
		t.Fatal("expected error for a resource dir with no templates")
	}
	var lerr *label.Error
	if !errors.As(err, &lerr) || lerr.Kind != label.KindAssetLoading {
		t.Errorf("got %v, want an asset loading error", err)
	}
}

func TestPackOverridesDisk(t *testing.T) {
	resources := resourceTree(t)
	packDir := t.TempDir()

	// The pack replaces the SAFE primary template with a pure red one.
	packed := encodeJPEG(t, solidImage(label.Size, label.Size, color.NRGBA{R: 255, A: 255}))

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create(label.ClassSafe.TemplatePath(false))
	if err != nil {
		t.Fatalf("creating zip entry: %v", err)
	}
	if _, err := f.Write(packed); err != nil {
		t.Fatalf("writing zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	writeFile(t, filepath.Join(packDir, "redpack.zip"), buf.Bytes())

	s, err := Load(resources, packDir, testLogger())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := s.Packs(); len(got) != 1 || got[0] != "redpack.zip" {
		t.Fatalf("Packs() = %v, want [redpack.zip]", got)
	}

	c := s.Template(label.ClassSafe, false).NRGBAAt(256, 256)
	if c.R < 200 || c.G > 60 {
		t.Errorf("center pixel = %+v, want the pack's red template", c)
	}
	// Other classes still come from disk.
	c = s.Template(label.ClassKeter, false).NRGBAAt(256, 256)
	if c.R > 200 && c.G < 60 {
		t.Error("pack override leaked into an unrelated class template")
	}
}

func TestManagerSwapAndReload(t *testing.T) {
	resources := resourceTree(t)
	m := NewManager(resources, "", testLogger())

	if m.Store() != nil {
		t.Fatal("Store must be nil before the first Load")
	}
	if err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	first := m.Store()
	if first == nil {
		t.Fatal("Store is nil after Load")
	}

	if err := m.Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if m.Store() == first {
		t.Error("reload must swap in a fresh snapshot")
	}
}
