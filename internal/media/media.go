// Package media is the media-store collaborator: it accepts image bytes and
// returns a stable id/URL pair. Failures propagate to callers unchanged.
package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Image is the stored reference kept on users and posts.
type Image struct {
	ID  string `json:"image_id"`
	URL string `json:"image_url"`
}

// Store persists image bytes somewhere retrievable by URL.
// Implemented by Disk (production) and Memory (tests).
type Store interface {
	Save(ctx context.Context, filename string, data []byte) (Image, error)
}

// Disk writes files under a local directory and serves them from a base URL.
type Disk struct {
	dir     string
	baseURL string
}

func NewDisk(dir, baseURL string) *Disk {
	return &Disk{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (d *Disk) Save(ctx context.Context, filename string, data []byte) (Image, error) {
	if len(data) == 0 {
		return Image{}, errors.New("empty image payload")
	}

	ext := filepath.Ext(filename)
	id := uuid.New().String()
	name := id + ext

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return Image{}, fmt.Errorf("creating media dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(d.dir, name), data, 0o644); err != nil {
		return Image{}, fmt.Errorf("writing image: %w", err)
	}

	return Image{ID: id, URL: fmt.Sprintf("%s/files/%s", d.baseURL, name)}, nil
}

// Memory keeps images in a map. Test use only.
type Memory struct {
	Images map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{Images: make(map[string][]byte)}
}

func (m *Memory) Save(ctx context.Context, filename string, data []byte) (Image, error) {
	if len(data) == 0 {
		return Image{}, errors.New("empty image payload")
	}

	id := uuid.New().String()
	m.Images[id] = data
	return Image{ID: id, URL: "memory://" + id + filepath.Ext(filename)}, nil
}
