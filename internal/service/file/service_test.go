package file

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/jwt"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pdfBody = "%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n"

func newTestService(t *testing.T, maxSize int64) FileService {
	t.Helper()
	fs, err := storage.NewLocalStorage(t.TempDir(), "/api/v1/files")
	require.NoError(t, err)
	return NewFileService(fs, maxSize)
}

func employeeCtx(employeeID string) context.Context {
	return jwt.NewActorContext(context.Background(), jwt.Actor{
		UserID:     "user-" + employeeID,
		EmployeeID: &employeeID,
		Role:       user.RoleEmployee,
	})
}

func managerCtx() context.Context {
	return jwt.NewActorContext(context.Background(), jwt.Actor{UserID: "mgr", Role: user.RoleManager})
}

func noisePNG(t *testing.T, size int) []byte {
	t.Helper()
	rng := rand.New(rand.NewPCG(1, 2))
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, color.RGBA{uint8(rng.IntN(256)), uint8(rng.IntN(256)), uint8(rng.IntN(256)), 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadLeaveAttachment_PDF(t *testing.T) {
	svc := newTestService(t, 1<<20)
	ctx := employeeCtx("emp-1")

	att, err := svc.UploadLeaveAttachment(ctx, strings.NewReader(pdfBody), "Medical Note.PDF")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(att.Path, "leave/emp-1/"))
	assert.True(t, strings.HasSuffix(att.Path, ".pdf"))
	assert.Equal(t, "/api/v1/files/"+att.Path, att.URL)
	assert.Equal(t, "application/pdf", att.ContentType)
	assert.Equal(t, int64(len(pdfBody)), att.Size)

	rc, contentType, err := svc.Open(ctx, att.Path)
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, pdfBody, string(body))
	assert.Equal(t, "application/pdf", contentType)
}

func TestUploadLeaveAttachment_Rejects(t *testing.T) {
	svc := newTestService(t, 64)
	ctx := employeeCtx("emp-1")

	t.Run("extension", func(t *testing.T) {
		_, err := svc.UploadLeaveAttachment(ctx, strings.NewReader("MZ"), "virus.exe")
		assert.ErrorIs(t, err, ErrUnsupportedFileType)
	})

	t.Run("content does not match extension", func(t *testing.T) {
		_, err := svc.UploadLeaveAttachment(ctx, strings.NewReader("plain text"), "note.pdf")
		assert.ErrorIs(t, err, ErrUnsupportedFileType)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := svc.UploadLeaveAttachment(ctx, strings.NewReader(""), "note.pdf")
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("too large", func(t *testing.T) {
		_, err := svc.UploadLeaveAttachment(ctx, strings.NewReader(pdfBody+strings.Repeat("x", 64)), "note.pdf")
		assert.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("no actor", func(t *testing.T) {
		_, err := svc.UploadLeaveAttachment(context.Background(), strings.NewReader(pdfBody), "note.pdf")
		assert.ErrorIs(t, err, jwt.ErrMissingClaims)
	})
}

func TestUploadLeaveAttachment_CompressesLargeImages(t *testing.T) {
	svc := newTestService(t, 10<<20)
	raw := noisePNG(t, 600)
	require.Greater(t, len(raw), maxImageSize)

	att, err := svc.UploadLeaveAttachment(employeeCtx("emp-1"), bytes.NewReader(raw), "scan.png")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", att.ContentType)
	assert.True(t, strings.HasSuffix(att.Path, ".jpg"))
	assert.Less(t, att.Size, int64(len(raw)))
}

func TestOpen_Access(t *testing.T) {
	svc := newTestService(t, 1<<20)

	att, err := svc.UploadLeaveAttachment(employeeCtx("emp-1"), strings.NewReader(pdfBody), "note.pdf")
	require.NoError(t, err)

	_, _, err = svc.Open(employeeCtx("emp-2"), att.Path)
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	// traversal cannot escape the owner check
	_, _, err = svc.Open(employeeCtx("emp-2"), "leave/emp-2/../emp-1/"+strings.TrimPrefix(att.Path, "leave/emp-1/"))
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	rc, _, err := svc.Open(managerCtx(), att.Path)
	require.NoError(t, err)
	rc.Close()

	_, _, err = svc.Open(managerCtx(), "leave/emp-1/missing.pdf")
	assert.ErrorIs(t, err, storage.ErrFileNotFound)
}

func TestDeleteFile(t *testing.T) {
	svc := newTestService(t, 1<<20)
	ctx := employeeCtx("emp-1")

	att, err := svc.UploadLeaveAttachment(ctx, strings.NewReader(pdfBody), "note.pdf")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteFile(employeeCtx("emp-2"), att.Path), user.ErrInsufficientPermissions)
	require.NoError(t, svc.DeleteFile(ctx, att.Path))

	_, _, err = svc.Open(ctx, att.Path)
	assert.ErrorIs(t, err, storage.ErrFileNotFound)
}
