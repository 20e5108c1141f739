package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoredFilenameIsSanitized(t *testing.T) {
	stored := StoredFilename("../../etc/pass wd?.pdf")
	require.False(t, strings.Contains(stored, "/"))
	require.False(t, strings.Contains(stored, " "))
	require.False(t, strings.Contains(stored, "?"))
	require.True(t, strings.HasSuffix(stored, "passwd.pdf"))
}

func TestStoredFilenameHasTimestampPrefix(t *testing.T) {
	stored := StoredFilename("photo.jpg")
	parts := strings.SplitN(stored, "_", 2)
	require.Len(t, parts, 2)
	require.Equal(t, "photo.jpg", parts[1])
}

func TestValidateDocumentTypeDefaults(t *testing.T) {
	require.NoError(t, ValidateDocumentType("scan.pdf", nil))
	require.NoError(t, ValidateDocumentType("photo.JPG", nil))
	require.Error(t, ValidateDocumentType("malware.exe", nil))
	require.Error(t, ValidateDocumentType("noextension", nil))
}

func TestValidateDocumentTypeNarrowedFormats(t *testing.T) {
	accepted := []string{".pdf"}
	require.NoError(t, ValidateDocumentType("scan.pdf", accepted))
	require.Error(t, ValidateDocumentType("photo.jpg", accepted))
}
