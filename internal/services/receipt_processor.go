package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/missoes-dashboard-api/internal/storage"
	_ "golang.org/x/image/webp"
)

// Comprovantes maiores que isso sao reduzidos mantendo a proporcao
const maxReceiptDimension = 1600

// ReceiptProcessor reduz imagens de comprovante grandes depois do upload.
// Roda no worker, fora do caminho do request.
type ReceiptProcessor struct {
	storage storage.Driver
}

func NewReceiptProcessor(storageDriver storage.Driver) *ReceiptProcessor {
	return &ReceiptProcessor{storage: storageDriver}
}

// Process baixa o comprovante, reduz se passar do limite e regrava no mesmo
// caminho. Comprovante dentro do limite fica intocado.
func (p *ReceiptProcessor) Process(ctx context.Context, event ReceiptProcessEvent) error {
	reader, err := p.storage.GetReader(ctx, event.StoragePath)
	if err != nil {
		return fmt.Errorf("failed to read receipt %s: %w", event.StoragePath, err)
	}
	defer reader.Close()

	srcImage, format, err := image.Decode(reader)
	if err != nil {
		return fmt.Errorf("failed to decode receipt %s: %w", event.StoragePath, err)
	}

	bounds := srcImage.Bounds()
	if bounds.Dx() <= maxReceiptDimension && bounds.Dy() <= maxReceiptDimension {
		return nil
	}

	resized := imaging.Fit(srcImage, maxReceiptDimension, maxReceiptDimension, imaging.Lanczos)

	// webp nao tem encoder em Go: comprovante webp acima do limite e
	// regravado como jpeg no mesmo caminho
	var buf bytes.Buffer
	switch {
	case format == "png" || strings.HasSuffix(event.StoragePath, ".png"):
		err = png.Encode(&buf, resized)
	default:
		err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return fmt.Errorf("failed to encode receipt %s: %w", event.StoragePath, err)
	}

	if _, _, err := p.storage.Upload(ctx, &buf, event.StoragePath); err != nil {
		return fmt.Errorf("failed to rewrite receipt %s: %w", event.StoragePath, err)
	}
	return nil
}
