package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/SireeshaRagipati24/instagen-scheduler/internal/remote"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ImageService fetches preview bytes for a post's image reference and keeps
// them on disk so the poll-driven UI doesn't re-download the same preview.
type ImageService interface {
	Preview(ctx context.Context, filename string) ([]byte, string, error)
}

type imageService struct {
	store    remote.PostStore
	cacheDir string

	mu     sync.Mutex
	cached map[string]cacheEntry // remote filename -> local cache file
}

type cacheEntry struct {
	path string
	mime string
}

func NewImageService(store remote.PostStore, cacheDir string) (ImageService, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create image cache dir: %w", err)
	}
	return &imageService{
		store:    store,
		cacheDir: cacheDir,
		cached:   make(map[string]cacheEntry),
	}, nil
}

func (s *imageService) Preview(ctx context.Context, filename string) ([]byte, string, error) {
	if filename == "" {
		return nil, "", fmt.Errorf("filename is required")
	}

	s.mu.Lock()
	entry, ok := s.cached[filename]
	s.mu.Unlock()
	if ok {
		data, err := os.ReadFile(entry.path)
		if err == nil {
			return data, entry.mime, nil
		}
		// cache file vanished, fall through to refetch
		s.mu.Lock()
		delete(s.cached, filename)
		s.mu.Unlock()
	}

	data, err := s.store.FetchImage(ctx, filename)
	if err != nil {
		return nil, "", err
	}

	kind, err := filetype.Match(data)
	if err != nil || kind == types.Unknown {
		return nil, "", fmt.Errorf("unsupported image type")
	}
	if kind.Extension != "png" && kind.Extension != "jpg" && kind.Extension != "jpeg" {
		return nil, "", fmt.Errorf("file type %s is not allowed", kind.Extension)
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, "", err
	}
	path := filepath.Join(s.cacheDir, id+"."+kind.Extension)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		// serve the bytes anyway; caching is best effort
		return data, kind.MIME.Value, nil
	}

	s.mu.Lock()
	s.cached[filename] = cacheEntry{path: path, mime: kind.MIME.Value}
	s.mu.Unlock()

	return data, kind.MIME.Value, nil
}
