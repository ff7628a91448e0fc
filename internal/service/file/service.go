package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoding
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const (
	maxAvatarBytes = 5 << 20
	avatarMaxSize  = 150 * 1024
	avatarMinSize  = 20 * 1024
	avatarMaxEdge  = 512
)

var (
	ErrInvalidFileType = errors.New("invalid file type: only jpg, jpeg, png allowed")
	ErrFileTooLarge    = errors.New("file exceeds the 5MB upload limit")
)

type FileService interface {
	// UploadAvatar re-encodes the image as a compressed JPEG and returns its
	// public URL.
	UploadAvatar(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)
	// DeleteByURL removes a file previously returned by UploadAvatar.
	DeleteByURL(ctx context.Context, url string) error
}

type fileServiceImpl struct {
	storage storage.FileStorage
	baseURL string
}

func NewFileService(storage storage.FileStorage, baseURL string) FileService {
	return &fileServiceImpl{
		storage: storage,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// UploadAvatar uploads employee avatar
func (s *fileServiceImpl) UploadAvatar(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", ErrInvalidFileType
	}

	buffer, err := io.ReadAll(io.LimitReader(file, maxAvatarBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(buffer) > maxAvatarBytes {
		return "", ErrFileTooLarge
	}

	compressed, err := compressImage(buffer, avatarMaxSize, avatarMinSize)
	if err != nil {
		return "", fmt.Errorf("failed to compress image: %w", err)
	}

	// avatars/{employeeID}/{employeeID}-{uuid}.jpg
	newFilename := fmt.Sprintf("%s-%s.jpg", employeeID, uuid.Must(uuid.NewV7()).String())
	path := filepath.Join("avatars", employeeID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, bytes.NewReader(compressed), path, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	return s.storage.GetURL(ctx, uploadedPath, 0)
}

// DeleteByURL deletes a file that lives under this service's base URL.
// URLs from elsewhere are ignored.
func (s *fileServiceImpl) DeleteByURL(ctx context.Context, url string) error {
	path, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || path == "" {
		return nil
	}
	return s.storage.Delete(ctx, path)
}

// ==================== HELPER FUNCTIONS ====================

// compressImage re-encodes an image as JPEG. The image is first scaled to
// fit avatarMaxEdge, then quality drops in steps of 5 until the output fits
// maxSize. Output already under minSize at quality 85 is returned as is.
func compressImage(buffer []byte, maxSize int, minSize int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	img = fitWithin(img, avatarMaxEdge)

	var compressed []byte
	for quality := 85; quality >= 40; quality -= 5 {
		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
		compressed = buf.Bytes()

		if len(compressed) <= maxSize || len(compressed) < minSize {
			return compressed, nil
		}
	}

	// Still too large at the lowest quality: shrink by area and encode once more.
	ratio := math.Sqrt(float64(maxSize) / float64(len(compressed)))
	bounds := img.Bounds()
	resized := resizeImage(img, max(1, int(float64(bounds.Dx())*ratio)), max(1, int(float64(bounds.Dy())*ratio)))

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: 70}); err != nil {
		return nil, fmt.Errorf("failed to encode resized image: %w", err)
	}
	return buf.Bytes(), nil
}

// fitWithin scales img down so neither side exceeds edge, keeping the
// aspect ratio.
func fitWithin(img image.Image, edge int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= edge && h <= edge {
		return img
	}
	if w >= h {
		return resizeImage(img, edge, max(1, h*edge/w))
	}
	return resizeImage(img, max(1, w*edge/h), edge)
}

// resizeImage resizes an image to the specified dimensions using high-quality interpolation
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
