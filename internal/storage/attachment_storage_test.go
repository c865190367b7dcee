package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var minimalPDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

func TestAttachmentStorage_SaveAndDelete(t *testing.T) {
	root := t.TempDir()
	s, err := NewAttachmentStorage(root, 1)
	require.NoError(t, err)

	ref, err := s.Save(context.Background(), minimalPDF)
	require.NoError(t, err)
	assert.Equal(t, ".pdf", filepath.Ext(ref))
	assert.Len(t, ref, 32+len(".pdf"))

	data, err := os.ReadFile(filepath.Join(root, ref))
	require.NoError(t, err)
	assert.Equal(t, minimalPDF, data)

	require.NoError(t, s.Delete(context.Background(), ref))
	_, err = os.Stat(filepath.Join(root, ref))
	assert.True(t, os.IsNotExist(err))

	// повторное удаление не ошибка
	assert.NoError(t, s.Delete(context.Background(), ref))
}

func TestAttachmentStorage_RejectsNonPDF(t *testing.T) {
	s, err := NewAttachmentStorage(t.TempDir(), 1)
	require.NoError(t, err)

	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 0x49, 0x48, 0x44, 0x52}
	_, err = s.Save(context.Background(), png)
	assert.Error(t, err)

	_, err = s.Save(context.Background(), []byte("plain text"))
	assert.Error(t, err)
}

func TestAttachmentStorage_RejectsOversized(t *testing.T) {
	s, err := NewAttachmentStorage(t.TempDir(), 0)
	require.NoError(t, err)

	_, err = s.Save(context.Background(), minimalPDF)
	assert.Error(t, err)
}

func TestAttachmentStorage_DeleteRejectsTraversal(t *testing.T) {
	s, err := NewAttachmentStorage(t.TempDir(), 1)
	require.NoError(t, err)

	assert.Error(t, s.Delete(context.Background(), "../secret.pdf"))
	assert.Error(t, s.Delete(context.Background(), "nested/file.pdf"))
}
