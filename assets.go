package arbor

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrAssetNotFound is returned when looking up a key that was never
	// loaded.
	ErrAssetNotFound = errors.New("arbor: asset not found")
	// ErrAssetExists is returned when loading under a key already in use.
	ErrAssetExists = errors.New("arbor: asset key already in use")
	// ErrUnsupportedAsset is returned for files with an unknown extension.
	ErrUnsupportedAsset = errors.New("arbor: unsupported asset type")
)

// imageExtensions lists the file extensions Assets decodes as images.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpeg": true,
	".jpg":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// IsImagePath reports whether p has a supported image extension.
func IsImagePath(p string) bool {
	return imageExtensions[strings.ToLower(path.Ext(p))]
}

// ImageRequest names one image to preload.
type ImageRequest struct {
	Path string
	Key  string
}

// Assets is a keyed store of loaded images. It is not safe for concurrent
// use; Preload decodes in parallel but stores on the calling goroutine.
type Assets struct {
	images map[string]*ebiten.Image
}

// NewAssets returns an empty store.
func NewAssets() *Assets {
	return &Assets{images: make(map[string]*ebiten.Image)}
}

// Add stores an already created image under key.
func (a *Assets) Add(key string, img *ebiten.Image) error {
	if _, ok := a.images[key]; ok {
		return fmt.Errorf("add %q: %w", key, ErrAssetExists)
	}
	a.images[key] = img
	return nil
}

// LoadImage decodes the image at p in fsys and stores it under key.
func (a *Assets) LoadImage(fsys fs.FS, p, key string) error {
	if _, ok := a.images[key]; ok {
		return fmt.Errorf("load %s: %q: %w", p, key, ErrAssetExists)
	}
	img, err := decodeImage(fsys, p)
	if err != nil {
		return err
	}
	a.images[key] = ebiten.NewImageFromImage(img)
	return nil
}

// Preload decodes every requested image concurrently and stores them once all
// have decoded. On the first failure nothing is stored and the error is
// returned; the remaining decodes are cancelled through ctx.
func (a *Assets) Preload(ctx context.Context, fsys fs.FS, reqs []ImageRequest) error {
	seen := make(map[string]bool, len(reqs))
	for _, r := range reqs {
		if _, ok := a.images[r.Key]; ok || seen[r.Key] {
			return fmt.Errorf("preload %s: %q: %w", r.Path, r.Key, ErrAssetExists)
		}
		seen[r.Key] = true
	}

	decoded := make([]image.Image, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	for i, r := range reqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := decodeImage(fsys, r.Path)
			if err != nil {
				return err
			}
			decoded[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("preload: %w", err)
	}

	for i, r := range reqs {
		a.images[r.Key] = ebiten.NewImageFromImage(decoded[i])
	}
	return nil
}

func decodeImage(fsys fs.FS, p string) (image.Image, error) {
	if !IsImagePath(p) {
		return nil, fmt.Errorf("load %s: %w", p, ErrUnsupportedAsset)
	}
	f, err := fsys.Open(p)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", p, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", p, err)
	}
	return img, nil
}

// Image returns the image stored under key.
func (a *Assets) Image(key string) (*ebiten.Image, error) {
	img, ok := a.images[key]
	if !ok {
		return nil, fmt.Errorf("image %q: %w", key, ErrAssetNotFound)
	}
	return img, nil
}

// MustImage returns the image stored under key and panics if it is missing.
// Use it for assets the application cannot run without.
func (a *Assets) MustImage(key string) *ebiten.Image {
	img, err := a.Image(key)
	if err != nil {
		panic(err)
	}
	return img
}

// Has reports whether key is loaded.
func (a *Assets) Has(key string) bool {
	_, ok := a.images[key]
	return ok
}

// Keys returns the loaded keys, sorted.
func (a *Assets) Keys() []string {
	keys := make([]string, 0, len(a.images))
	for k := range a.images {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clear disposes every image and empties the store.
func (a *Assets) Clear() {
	for _, img := range a.images {
		img.Deallocate()
	}
	clear(a.images)
}
