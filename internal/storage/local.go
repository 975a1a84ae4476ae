package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage guarda comprovantes no filesystem local, servidos pelo
// proprio processo sob /uploads
type LocalStorage struct {
	basePath string
}

func NewLocalStorage(basePath string) *LocalStorage {
	return &LocalStorage{basePath: basePath}
}

// Upload grava o arquivo em disco criando os diretorios intermediarios
func (s *LocalStorage) Upload(ctx context.Context, file io.Reader, path string) (string, string, error) {
	fullPath := filepath.Join(s.basePath, path)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", "", fmt.Errorf("failed to create directory: %w", err)
	}

	out, err := os.Create(fullPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", "", fmt.Errorf("failed to write file: %w", err)
	}

	return path, s.GetPublicURL(path), nil
}

// Delete remove o arquivo; arquivo inexistente nao e erro
func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	fullPath := filepath.Join(s.basePath, path)
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// GetReader abre o arquivo para leitura
func (s *LocalStorage) GetReader(ctx context.Context, path string) (io.ReadCloser, error) {
	reader, err := os.Open(filepath.Join(s.basePath, path))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return reader, nil
}

// GetPublicURL devolve o caminho relativo servido pelo processo
func (s *LocalStorage) GetPublicURL(path string) string {
	return fmt.Sprintf("/uploads/%s", path)
}
