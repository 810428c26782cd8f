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
	"log/slog"
	"math"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/jwt"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const (
	leavePrefix = "leave"

	// Images above this size are re-encoded before storing.
	maxImageSize = 300 * 1024
	minImageSize = 50 * 1024
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type: only pdf, jpg, jpeg, png allowed")
	ErrFileTooLarge        = errors.New("file exceeds the maximum upload size")
	ErrEmptyFile           = errors.New("file is empty")
)

var attachmentTypes = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// Attachment describes a stored file.
type Attachment struct {
	Path        string `json:"path"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

type FileService interface {
	// UploadLeaveAttachment stores a supporting document for the actor's
	// leave requests. The returned URL goes into attachment_url.
	UploadLeaveAttachment(ctx context.Context, file io.Reader, filename string) (Attachment, error)

	// Open streams a stored file back to an actor allowed to see it.
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)

	DeleteFile(ctx context.Context, key string) error
}

type FileServiceImpl struct {
	storage storage.FileStorage
	maxSize int64
}

func NewFileService(storage storage.FileStorage, maxSize int64) FileService {
	return &FileServiceImpl{
		storage: storage,
		maxSize: maxSize,
	}
}

// owner returns the directory segment files of actor are stored under.
func owner(actor jwt.Actor) string {
	if actor.EmployeeID != nil {
		return *actor.EmployeeID
	}
	return "user-" + actor.UserID
}

// UploadLeaveAttachment implements FileService.
func (s *FileServiceImpl) UploadLeaveAttachment(ctx context.Context, file io.Reader, filename string) (Attachment, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return Attachment{}, fmt.Errorf("failed to extract actor from context: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := attachmentTypes[ext]
	if !ok {
		return Attachment{}, ErrUnsupportedFileType
	}

	buffer, err := io.ReadAll(io.LimitReader(file, s.maxSize+1))
	if err != nil {
		return Attachment{}, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(buffer) == 0 {
		return Attachment{}, ErrEmptyFile
	}
	if int64(len(buffer)) > s.maxSize {
		return Attachment{}, ErrFileTooLarge
	}

	// the declared extension must match the content
	if detected := http.DetectContentType(buffer); detected != contentType {
		slog.Warn("attachment content mismatch", "filename", filename, "detected", detected)
		return Attachment{}, ErrUnsupportedFileType
	}

	if strings.HasPrefix(contentType, "image/") && len(buffer) > maxImageSize {
		compressed, err := compressImage(buffer, maxImageSize, minImageSize)
		if err != nil {
			return Attachment{}, fmt.Errorf("failed to compress image: %w", err)
		}
		buffer, contentType, ext = compressed, "image/jpeg", ".jpg"
	}

	id, err := uuid.NewV7()
	if err != nil {
		return Attachment{}, fmt.Errorf("failed to generate file id: %w", err)
	}
	key := path.Join(leavePrefix, owner(actor), id.String()+ext)

	stored, err := s.storage.Upload(ctx, bytes.NewReader(buffer), key, contentType)
	if err != nil {
		return Attachment{}, fmt.Errorf("failed to upload leave attachment: %w", err)
	}

	return Attachment{
		Path:        stored,
		URL:         s.storage.URL(stored),
		ContentType: contentType,
		Size:        int64(len(buffer)),
	}, nil
}

// canRead reports whether actor may read key: owners read their own files,
// leave approvers read everyone's.
func canRead(actor jwt.Actor, key string) bool {
	if user.HasPermission(actor.Role, user.PermissionLeaveApprove) {
		return true
	}
	return strings.HasPrefix(key, path.Join(leavePrefix, owner(actor))+"/")
}

// Open implements FileService.
func (s *FileServiceImpl) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to extract actor from context: %w", err)
	}

	key = strings.TrimPrefix(path.Clean("/"+key), "/")
	if !canRead(actor, key) {
		return nil, "", user.ErrInsufficientPermissions
	}

	rc, err := s.storage.Download(ctx, key)
	if err != nil {
		return nil, "", err
	}

	contentType := attachmentTypes[strings.ToLower(path.Ext(key))]
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return rc, contentType, nil
}

// DeleteFile implements FileService.
func (s *FileServiceImpl) DeleteFile(ctx context.Context, key string) error {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to extract actor from context: %w", err)
	}

	key = strings.TrimPrefix(path.Clean("/"+key), "/")
	if !strings.HasPrefix(key, path.Join(leavePrefix, owner(actor))+"/") && actor.Role != user.RoleAdmin {
		return user.ErrInsufficientPermissions
	}

	return s.storage.Delete(ctx, key)
}

// compressImage re-encodes an image as JPEG, lowering quality and then
// scaling down until it fits under maxSize.
func compressImage(buffer []byte, maxSize int, minSize int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var compressed []byte
	for quality := 85; quality >= 50; quality -= 5 {
		compressed, err = encodeJPEG(img, quality)
		if err != nil {
			return nil, err
		}
		if len(compressed) <= maxSize {
			return compressed, nil
		}
	}

	// aim for the middle of the range
	target := float64(maxSize+minSize) / 2
	ratio := math.Sqrt(target / float64(len(compressed)))
	bounds := img.Bounds()
	width := max(int(float64(bounds.Dx())*ratio), 1)
	height := max(int(float64(bounds.Dy())*ratio), 1)

	return encodeJPEG(resizeImage(img, width, height), 70)
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
