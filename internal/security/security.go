package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Manager enforces the filesystem allow-list for export destinations. Tool
// calls may write report workbooks to disk; the allowed roots come from
// operator configuration and writes outside them are denied.
type Manager struct {
	allowedDirs []string
}

// ErrNotAllowed indicates the requested path is outside the allow-list roots.
var ErrNotAllowed = errors.New("security: export path not allowed")

// ErrExportsDisabled indicates no export directories are configured.
var ErrExportsDisabled = errors.New("security: exports disabled; no allowed directories configured")

// ErrUnsupportedExtension indicates the export file extension is not .xlsx.
var ErrUnsupportedExtension = errors.New("security: export path must end in .xlsx")

// NewManager canonicalizes and validates the allow-list directories.
func NewManager(allowDirs []string) (*Manager, error) {
	canonical := make([]string, 0, len(allowDirs))
	for _, d := range allowDirs {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		abs, err := filepath.Abs(d)
		if err != nil {
			return nil, fmt.Errorf("security: resolve abs for %q: %w", d, err)
		}
		// EvalSymlinks so that symlinked roots cannot be used to escape later.
		real, err := filepath.EvalSymlinks(abs)
		if err != nil {
			return nil, fmt.Errorf("security: eval symlinks for %q: %w", abs, err)
		}
		info, err := os.Stat(real)
		if err != nil {
			return nil, fmt.Errorf("security: stat %q: %w", real, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("security: allow-list entry is not a directory: %q", real)
		}
		canonical = append(canonical, filepath.Clean(real))
	}
	return &Manager{allowedDirs: canonical}, nil
}

// AllowedDirectories returns the canonical allow-list roots.
func (m *Manager) AllowedDirectories() []string {
	out := make([]string, len(m.allowedDirs))
	copy(out, m.allowedDirs)
	return out
}

// ValidateExportPath checks that the destination file can be written: .xlsx
// extension, and a parent directory contained in one of the allow-list
// roots. The file itself need not exist. Returns the canonical absolute path.
func (m *Manager) ValidateExportPath(input string) (string, error) {
	if len(m.allowedDirs) == 0 {
		return "", ErrExportsDisabled
	}
	if strings.TrimSpace(input) == "" {
		return "", ErrNotAllowed
	}
	if strings.ToLower(filepath.Ext(input)) != ".xlsx" {
		return "", ErrUnsupportedExtension
	}

	abs, err := filepath.Abs(input)
	if err != nil {
		return "", fmt.Errorf("security: abs path: %w", err)
	}
	// Resolve the parent so a symlinked directory cannot escape a root.
	parent, err := filepath.EvalSymlinks(filepath.Dir(abs))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotAllowed
		}
		return "", fmt.Errorf("security: eval symlinks: %w", err)
	}

	for _, root := range m.allowedDirs {
		rel, err := filepath.Rel(root, parent)
		if err != nil {
			continue
		}
		if rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return filepath.Join(parent, filepath.Base(abs)), nil
		}
	}
	return "", ErrNotAllowed
}
