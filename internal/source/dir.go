package source

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"

	"github.com/ivlev/qrpromo/internal/system"
)

// DirSource decodes assets from a directory on first use and caches them.
// A handle "logo" is looked up as logo.png, logo.jpg or logo.jpeg.
type DirSource struct {
	dir string

	mu    sync.Mutex
	cache map[string]*entry
}

type entry struct {
	once sync.Once
	img  image.Image
	err  error
}

func NewDirSource(dir string) (*DirSource, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return &DirSource{dir: dir, cache: make(map[string]*entry)}, nil
}

// Dir is the directory assets are read from.
func (s *DirSource) Dir() string { return s.dir }

func (s *DirSource) Image(handle string) (image.Image, error) {
	s.mu.Lock()
	e, ok := s.cache[handle]
	if !ok {
		e = &entry{}
		s.cache[handle] = e
	}
	s.mu.Unlock()

	e.once.Do(func() {
		e.img, e.err = s.load(handle)
	})
	return e.img, e.err
}

func (s *DirSource) load(handle string) (image.Image, error) {
	path, err := system.ResolveAsset(s.dir, handle)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s in %s", ErrAssetNotFound, handle, s.dir)
		}
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
