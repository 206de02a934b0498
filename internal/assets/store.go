// Package assets loads label templates, hazard icons and the texture
// overlay from a resource directory and optional zip texture packs.
package assets

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sydlexius/scplabel/internal/imaging"
	"github.com/sydlexius/scplabel/internal/label"
)

type templateKey struct {
	class     label.Class
	alternate bool
}

type iconKey struct {
	class  label.Class
	hazard label.Hazard
}

// Store is an immutable snapshot of every loaded asset. A Store is
// built once by Load and never mutated, so it is safe for concurrent
// readers.
type Store struct {
	templates   map[templateKey]*image.NRGBA
	icons       map[iconKey]*image.NRGBA
	texture     *image.NRGBA
	placeholder *image.NRGBA
	packs       []string
}

const texturePath = "materials/textures/dirty_overlay.png"

// Load builds a Store from resourceDir, overlaid by any zip packs in
// packDir. Later packs (sorted by filename) win over earlier ones, and
// all packs win over loose files on disk.
func Load(resourceDir, packDir string, logger *slog.Logger) (*Store, error) {
	packs, packNames, err := openPacks(packDir)
	if err != nil {
		return nil, err
	}
	defer func() {
		for _, p := range packs {
			p.close()
		}
	}()

	s := &Store{
		templates:   make(map[templateKey]*image.NRGBA),
		icons:       make(map[iconKey]*image.NRGBA),
		placeholder: transparentPlaceholder(),
		packs:       packNames,
	}

	for _, class := range label.Classes() {
		primary, err := loadAsset(class.TemplatePath(false), resourceDir, packs, true)
		if err != nil {
			return nil, label.Wrap(label.KindAssetLoading, err,
				fmt.Sprintf("template for class %s", class))
		}
		s.templates[templateKey{class, false}] = primary

		alternate, err := loadAsset(class.TemplatePath(true), resourceDir, packs, true)
		if err != nil {
			// No alternate variant; fall back to the primary template.
			alternate = primary
		}
		s.templates[templateKey{class, true}] = alternate

		for _, hazard := range label.Hazards() {
			if hazard == label.HazardNone {
				continue
			}
			icon, err := loadAsset(hazard.IconPath(class), resourceDir, packs, false)
			if err != nil {
				continue
			}
			s.icons[iconKey{class, hazard}] = icon
		}
	}

	texture, err := loadAsset(texturePath, resourceDir, packs, true)
	if err != nil {
		logger.Warn("texture overlay not found, using transparent placeholder", "error", err)
		texture = s.placeholder
	}
	s.texture = texture

	logger.Info("asset loading complete",
		"templates", len(s.templates),
		"icons", len(s.icons),
		"packs", len(s.packs))
	return s, nil
}

// Template returns the background template for a class. The alternate
// variant falls back to the primary when absent.
func (s *Store) Template(class label.Class, alternate bool) *image.NRGBA {
	if img, ok := s.templates[templateKey{class, alternate}]; ok {
		return img
	}
	return s.placeholder
}

// Icon returns the hazard icon for a class, or the transparent
// placeholder when the combination has no icon.
func (s *Store) Icon(class label.Class, hazard label.Hazard) *image.NRGBA {
	if img, ok := s.icons[iconKey{class, hazard}]; ok {
		return img
	}
	return s.placeholder
}

// Texture returns the dirt texture overlay.
func (s *Store) Texture() *image.NRGBA {
	return s.texture
}

// Placeholder returns the shared 1x1 transparent image.
func (s *Store) Placeholder() *image.NRGBA {
	return s.placeholder
}

// Packs lists the filenames of the loaded texture packs in load order.
func (s *Store) Packs() []string {
	return s.packs
}

func transparentPlaceholder() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{})
	return img
}

type pack struct {
	reader *zip.ReadCloser
	files  map[string]*zip.File
}

func (p *pack) close() {
	p.reader.Close() //nolint:errcheck
}

func openPacks(packDir string) ([]*pack, []string, error) {
	if packDir == "" {
		return nil, nil, nil
	}
	entries, err := os.ReadDir(packDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, label.Wrap(label.KindAssetLoading, err, "reading texture pack directory")
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".zip") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var packs []*pack
	for _, name := range names {
		rc, err := zip.OpenReader(filepath.Join(packDir, name))
		if err != nil {
			for _, p := range packs {
				p.close()
			}
			return nil, nil, label.Wrap(label.KindAssetLoading, err,
				fmt.Sprintf("opening texture pack %s", name))
		}
		files := make(map[string]*zip.File, len(rc.File))
		for _, f := range rc.File {
			files[filepath.ToSlash(f.Name)] = f
		}
		packs = append(packs, &pack{reader: rc, files: files})
	}
	return packs, names, nil
}

// loadAsset resolves a resource-relative path against the packs (newest
// first) and then the disk. Templates and the texture are normalized to
// the working label size; icons keep their native dimensions.
func loadAsset(relPath, resourceDir string, packs []*pack, resize bool) (*image.NRGBA, error) {
	for i := len(packs) - 1; i >= 0; i-- {
		f, ok := packs[i].files[relPath]
		if !ok {
			continue
		}
		img, err := decodePackFile(f)
		if err != nil {
			continue
		}
		return finalize(img, resize), nil
	}

	file, err := os.Open(filepath.Join(resourceDir, filepath.FromSlash(relPath)))
	if err != nil {
		return nil, fmt.Errorf("asset %q not found in packs or on disk: %w", relPath, err)
	}
	defer file.Close() //nolint:errcheck

	img, err := imaging.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("asset %q: %w", relPath, err)
	}
	return finalize(img, resize), nil
}

func decodePackFile(f *zip.File) (image.Image, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close() //nolint:errcheck

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	return imaging.Decode(bytes.NewReader(data))
}

func finalize(img image.Image, resize bool) *image.NRGBA {
	b := img.Bounds()
	if resize && (b.Dx() != label.Size || b.Dy() != label.Size) {
		return imaging.Scale(img, label.Size, label.Size)
	}
	return imaging.ToNRGBA(img)
}
