package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDriver guarda os objetos em memoria e registra as regravacoes
type fakeDriver struct {
	objects map[string][]byte
	uploads []string
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{objects: make(map[string][]byte)}
}

func (d *fakeDriver) Upload(ctx context.Context, file io.Reader, path string) (string, string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", "", err
	}
	d.objects[path] = data
	d.uploads = append(d.uploads, path)
	return path, "/uploads/" + path, nil
}

func (d *fakeDriver) Delete(ctx context.Context, path string) error {
	delete(d.objects, path)
	return nil
}

func (d *fakeDriver) GetReader(ctx context.Context, path string) (io.ReadCloser, error) {
	data, ok := d.objects[path]
	if !ok {
		return nil, fmt.Errorf("object not found: %s", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (d *fakeDriver) GetPublicURL(path string) string {
	return "/uploads/" + path
}

// comprovante webp 1x1 (menor webp valido, VP8 com keyframe)
const tinyWebP = "UklGRiQAAABXRUJQVlA4IBgAAAAwAQCdASoBAAEAAwA0JaQAA3AA/vuUAAA="

func encodeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height)), nil))
	return buf.Bytes()
}

func TestProcessReceiptDentroDoLimite(t *testing.T) {
	driver := newFakeDriver()
	driver.objects["vila-alegre/receipts/p.jpg"] = encodeJPEG(t, 800, 600)

	processor := NewReceiptProcessor(driver)
	err := processor.Process(context.Background(), ReceiptProcessEvent{
		Slug:        "vila-alegre",
		StoragePath: "vila-alegre/receipts/p.jpg",
	})

	require.NoError(t, err)
	assert.Empty(t, driver.uploads)
}

func TestProcessReceiptReduzImagemGrande(t *testing.T) {
	driver := newFakeDriver()
	driver.objects["vila-alegre/receipts/g.jpg"] = encodeJPEG(t, 3200, 1000)

	processor := NewReceiptProcessor(driver)
	err := processor.Process(context.Background(), ReceiptProcessEvent{
		Slug:        "vila-alegre",
		StoragePath: "vila-alegre/receipts/g.jpg",
	})

	require.NoError(t, err)
	require.Equal(t, []string{"vila-alegre/receipts/g.jpg"}, driver.uploads)

	resized, _, err := image.Decode(bytes.NewReader(driver.objects["vila-alegre/receipts/g.jpg"]))
	require.NoError(t, err)
	assert.LessOrEqual(t, resized.Bounds().Dx(), 1600)
	assert.LessOrEqual(t, resized.Bounds().Dy(), 1600)
}

func TestProcessReceiptPNGMantemFormato(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2000, 100))))

	driver := newFakeDriver()
	driver.objects["vila-alegre/receipts/g.png"] = buf.Bytes()

	processor := NewReceiptProcessor(driver)
	err := processor.Process(context.Background(), ReceiptProcessEvent{
		Slug:        "vila-alegre",
		StoragePath: "vila-alegre/receipts/g.png",
	})

	require.NoError(t, err)
	_, format, err := image.Decode(bytes.NewReader(driver.objects["vila-alegre/receipts/g.png"]))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
}

func TestProcessReceiptWebP(t *testing.T) {
	raw, err := base64.StdEncoding.DecodeString(tinyWebP)
	require.NoError(t, err)

	driver := newFakeDriver()
	driver.objects["vila-alegre/receipts/x.webp"] = raw

	processor := NewReceiptProcessor(driver)
	err = processor.Process(context.Background(), ReceiptProcessEvent{
		Slug:        "vila-alegre",
		StoragePath: "vila-alegre/receipts/x.webp",
	})

	// webp decodifica; dentro do limite nada e regravado
	require.NoError(t, err)
	assert.Empty(t, driver.uploads)
}

func TestProcessReceiptConteudoIlegivel(t *testing.T) {
	driver := newFakeDriver()
	driver.objects["vila-alegre/receipts/x.jpg"] = []byte("nao e imagem")

	processor := NewReceiptProcessor(driver)
	err := processor.Process(context.Background(), ReceiptProcessEvent{
		Slug:        "vila-alegre",
		StoragePath: "vila-alegre/receipts/x.jpg",
	})

	assert.Error(t, err)
}

func TestProcessReceiptObjetoAusente(t *testing.T) {
	processor := NewReceiptProcessor(newFakeDriver())
	err := processor.Process(context.Background(), ReceiptProcessEvent{
		Slug:        "vila-alegre",
		StoragePath: "vila-alegre/receipts/sumiu.jpg",
	})
	assert.Error(t, err)
}
