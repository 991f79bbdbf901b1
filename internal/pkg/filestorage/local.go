package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ekurt/campusreg/internal/pkg/apperrors"
	"github.com/ekurt/campusreg/internal/pkg/logger"
)

// LocalStorage saves uploaded files to the local filesystem and serves them
// through the static /uploads route.
type LocalStorage struct {
	basePath     string
	baseURL      string
	maxSizeBytes int64
	allowedTypes map[string]bool
}

// NewLocalStorage creates a new LocalStorage instance. basePath is the
// directory on disk; baseURL is prepended to returned file paths.
func NewLocalStorage(basePath, baseURL string, maxSizeBytes int64, allowedTypes []string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	allowed := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[strings.ToLower(t)] = true
	}

	return &LocalStorage{
		basePath:     basePath,
		baseURL:      strings.TrimRight(baseURL, "/"),
		maxSizeBytes: maxSizeBytes,
		allowedTypes: allowed,
	}, nil
}

// SavePhoto validates and stores an uploaded image. The size limit and the
// JPEG/PNG/WebP whitelist are enforced here; the content type is sniffed
// from the file bytes, not trusted from the request header.
func (ls *LocalStorage) SavePhoto(fileHeader *multipart.FileHeader) (url string, filename string, err error) {
	if fileHeader == nil {
		return "", "", apperrors.NewCustomError(apperrors.ErrBadRequest, "no file uploaded")
	}

	if fileHeader.Size > ls.maxSizeBytes {
		return "", "", apperrors.ErrFileTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	// Sniff the real content type from the first 512 bytes
	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		return "", "", fmt.Errorf("failed to read uploaded file: %w", err)
	}
	contentType := strings.ToLower(http.DetectContentType(head[:n]))
	if !ls.allowedTypes[contentType] {
		return "", "", apperrors.ErrInvalidFileType
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", "", fmt.Errorf("failed to rewind uploaded file: %w", err)
	}

	ext := filepath.Ext(fileHeader.Filename)
	if ext == "" {
		ext = extensionForType(contentType)
	}
	uniqueFilename := uuid.New().String() + ext
	dstPath := filepath.Join(ls.basePath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", "", fmt.Errorf("failed to save file content: %w", err)
	}

	url = ls.baseURL + "/" + uniqueFilename
	logger.Info().
		Str("filename", fileHeader.Filename).
		Str("saved_as", uniqueFilename).
		Msg("File saved successfully")
	return url, uniqueFilename, nil
}

// DeleteFile removes a stored file by name. Returns nil when the file does
// not exist (idempotent).
func (ls *LocalStorage) DeleteFile(filename string) error {
	if filename == "" {
		return nil
	}

	// Only the basename is accepted, stored names never carry a path
	name := filepath.Base(filename)
	if name == "" || name == "." || name == "/" {
		return fmt.Errorf("invalid file name: %s", filename)
	}

	physicalPath := filepath.Join(ls.basePath, name)
	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// BasePath returns the directory served at the /uploads route
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

func extensionForType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
