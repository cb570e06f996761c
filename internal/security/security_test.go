package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateExportPath_AllowList(t *testing.T) {
	allowed := t.TempDir()
	outside := t.TempDir()

	m, err := NewManager([]string{allowed})
	require.NoError(t, err)

	got, err := m.ValidateExportPath(filepath.Join(allowed, "leads.xlsx"))
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(got))

	_, err = m.ValidateExportPath(filepath.Join(outside, "leads.xlsx"))
	require.ErrorIs(t, err, ErrNotAllowed)

	_, err = m.ValidateExportPath(filepath.Join(allowed, "..", "escape.xlsx"))
	require.ErrorIs(t, err, ErrNotAllowed)
}

func TestValidateExportPath_ExtensionEnforced(t *testing.T) {
	allowed := t.TempDir()
	m, err := NewManager([]string{allowed})
	require.NoError(t, err)

	_, err = m.ValidateExportPath(filepath.Join(allowed, "leads.csv"))
	require.ErrorIs(t, err, ErrUnsupportedExtension)
}

func TestValidateExportPath_DisabledWithoutDirs(t *testing.T) {
	m, err := NewManager(nil)
	require.NoError(t, err)
	_, err = m.ValidateExportPath("/tmp/leads.xlsx")
	require.ErrorIs(t, err, ErrExportsDisabled)
}

func TestValidateExportPath_SubdirectoryAllowed(t *testing.T) {
	allowed := t.TempDir()
	sub := filepath.Join(allowed, "reports")
	require.NoError(t, os.Mkdir(sub, 0o755))

	m, err := NewManager([]string{allowed})
	require.NoError(t, err)

	_, err = m.ValidateExportPath(filepath.Join(sub, "q1.xlsx"))
	require.NoError(t, err)
}

func TestNewManager_RejectsFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := NewManager([]string{file})
	require.Error(t, err)
}
