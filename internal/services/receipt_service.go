package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/missoes-dashboard-api/internal/cache"
	"github.com/missoes-dashboard-api/internal/storage"
)

// Canal de eventos de pos-processamento de recibos
const ReceiptProcessChannel = "receipt:process"

// ReceiptProcessEvent e publicado apos cada upload para o worker reduzir
// imagens grandes de recibo
type ReceiptProcessEvent struct {
	Slug        string `json:"slug"`
	StoragePath string `json:"storage_path"`
}

// ReceiptService guarda comprovantes de lancamentos financeiros no storage
// configurado e devolve o link usado no campo receipt_link.
type ReceiptService struct {
	storage storage.Driver
	events  *cache.Client
}

func NewReceiptService(storageDriver storage.Driver, events *cache.Client) *ReceiptService {
	return &ReceiptService{
		storage: storageDriver,
		events:  events,
	}
}

const maxReceiptSize = 10 << 20 // 10MB

var allowedReceiptExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".pdf":  {},
}

// ValidateReceipt confere extensao e tamanho antes do upload
func (s *ReceiptService) ValidateReceipt(file *multipart.FileHeader) error {
	if file.Size > maxReceiptSize {
		return fmt.Errorf("file %s exceeds maximum size of %d bytes", file.Filename, maxReceiptSize)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedReceiptExts[ext]; !ok {
		return fmt.Errorf("file type %s not allowed", ext)
	}
	return nil
}

// UploadReceipt grava o comprovante em {slug}/receipts/{uuid}{ext} e publica
// o evento de pos-processamento. Falha na publicacao nao derruba o upload;
// o recibo fica disponivel sem reducao.
func (s *ReceiptService) UploadReceipt(ctx context.Context, slug string, file *multipart.FileHeader) (string, error) {
	if err := s.ValidateReceipt(file); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	storagePath := fmt.Sprintf("%s/receipts/%s%s", slug, uuid.NewString(), ext)

	_, publicURL, err := s.storage.Upload(ctx, src, storagePath)
	if err != nil {
		return "", fmt.Errorf("failed to upload receipt: %w", err)
	}

	if s.events != nil && isImageExt(ext) {
		payload, err := json.Marshal(ReceiptProcessEvent{Slug: slug, StoragePath: storagePath})
		if err == nil {
			if err := s.events.Publish(ctx, ReceiptProcessChannel, payload); err != nil {
				log.Printf("failed to publish receipt event for %s: %v", storagePath, err)
			}
		}
	}

	return publicURL, nil
}

func isImageExt(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	}
	return false
}
