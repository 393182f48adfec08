package heroimage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ImageStore persists normalized image bytes and returns where they live.
type ImageStore interface {
	Save(ctx context.Context, data []byte, ext string) (string, error)
}

// FileStore writes images into Dir and reports them under URLPrefix.
type FileStore struct {
	Dir       string
	URLPrefix string
}

// NewFileStore returns a store rooted at dir.
func NewFileStore(dir, urlPrefix string) *FileStore {
	return &FileStore{Dir: dir, URLPrefix: urlPrefix}
}

// Save writes data to a new scraped-<id><ext> file.
func (fs *FileStore) Save(ctx context.Context, data []byte, ext string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := fileName(ext)
	location := filepath.Join(fs.Dir, name)
	if fs.URLPrefix != "" {
		var err error
		if location, err = url.JoinPath(fs.URLPrefix, name); err != nil {
			return "", fmt.Errorf("image url prefix %q: %w", fs.URLPrefix, err)
		}
	}

	if err := os.MkdirAll(fs.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create image dir %q: %w", fs.Dir, err)
	}
	if err := os.WriteFile(filepath.Join(fs.Dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image %s: %w", name, err)
	}
	return location, nil
}

// MemoryStore keeps images in memory, keyed by generated name.
type MemoryStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{files: make(map[string][]byte)}
}

func (ms *MemoryStore) Save(ctx context.Context, data []byte, ext string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := fileName(ext)
	buf := make([]byte, len(data))
	copy(buf, data)

	ms.mu.Lock()
	ms.files[name] = buf
	ms.mu.Unlock()
	return name, nil
}

// Get returns the bytes saved under name.
func (ms *MemoryStore) Get(name string) ([]byte, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	data, ok := ms.files[name]
	return data, ok
}

// Len reports how many images are stored.
func (ms *MemoryStore) Len() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.files)
}

func fileName(ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "scraped-" + id[:12] + ext
}
