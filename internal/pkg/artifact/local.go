package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore 本地目录存储，单进程部署的默认后端
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact dir: %w", err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

func (s *LocalStore) Put(prefix string, data []byte, ext string) (string, error) {
	if !strings.HasPrefix(ext, ".") && ext != "" {
		ext = "." + ext
	}
	ref := fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), ext)

	path := filepath.Join(s.baseDir, filepath.FromSlash(ref))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}

	return ref, nil
}

func (s *LocalStore) Get(ref string) ([]byte, error) {
	// 拒绝越出存储目录的引用
	cleaned := filepath.Clean(filepath.FromSlash(ref))
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return nil, ErrNotFound
	}

	data, err := os.ReadFile(filepath.Join(s.baseDir, cleaned))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *LocalStore) URL(ref string) string {
	return "/api/v1/artifacts/" + ref
}
