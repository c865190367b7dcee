package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
)

// Разрешённые типы вложений уведомлений.
var allowedMimeTypes = map[string]bool{
	"application/pdf": true,
}

// AttachmentStorage - файловое хранилище вложений (контрактов).
type AttachmentStorage struct {
	rootPath       string
	maxUploadBytes int64
}

// NewAttachmentStorage создаёт файловое хранилище.
func NewAttachmentStorage(rootPath string, maxUploadMB int64) (*AttachmentStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}

	return &AttachmentStorage{
		rootPath:       rootPath,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
	}, nil
}

// Save проверяет содержимое по магическим байтам и сохраняет его под именем <uuid>.<ext>.
func (s *AttachmentStorage) Save(ctx context.Context, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if int64(len(content)) > s.maxUploadBytes {
		return "", fmt.Errorf("storage: размер файла превышает лимит %d байт", s.maxUploadBytes)
	}

	kind, err := filetype.Match(content)
	if err != nil || kind == filetype.Unknown {
		return "", fmt.Errorf("storage: не удалось определить тип файла")
	}
	if !allowedMimeTypes[kind.MIME.Value] {
		return "", fmt.Errorf("storage: неподдерживаемый тип файла (%s)", kind.MIME.Value)
	}

	fileName := strings.ReplaceAll(uuid.New().String(), "-", "") + "." + kind.Extension
	targetPath := filepath.Join(s.rootPath, fileName)
	tempPath := targetPath + ".tmp"

	f, err := os.Create(tempPath)
	if err != nil {
		return "", fmt.Errorf("storage: не удалось создать файл: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, bytes.NewReader(content)); err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("storage: ошибка записи файла: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("storage: ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tempPath, targetPath); err != nil {
		return "", fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}

	return fileName, nil
}

// Open открывает сохранённое вложение для чтения.
func (s *AttachmentStorage) Open(ctx context.Context, ref string) (*os.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}
	return os.Open(target)
}

// Delete удаляет файл из хранилища. Отсутствующий файл не считается ошибкой.
func (s *AttachmentStorage) Delete(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target, err := s.resolve(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: не удалось удалить файл: %w", err)
	}
	return nil
}

// resolve не выпускает путь за пределы корня хранилища.
func (s *AttachmentStorage) resolve(ref string) (string, error) {
	name := filepath.Base(ref)
	if name != ref || name == "." || strings.Contains(name, "..") {
		return "", fmt.Errorf("storage: некорректное имя файла %q", ref)
	}
	return filepath.Join(s.rootPath, name), nil
}
