// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"

	"github.com/example/entitygen/internal/ports/secondary"
)

const (
	dirMode  os.FileMode = 0o755
	fileMode os.FileMode = 0o644
)

// ProjectFileSystem implements secondary.FileSystem over an afero.Fs whose
// root is the project directory.
type ProjectFileSystem struct {
	fs afero.Fs
}

// NewProjectFileSystem creates a file system adapter over fs.
func NewProjectFileSystem(fs afero.Fs) *ProjectFileSystem {
	return &ProjectFileSystem{fs: fs}
}

// NewOsProjectFileSystem roots the operating system file system at
// projectDir. Paths outside projectDir are rejected by the underlying fs.
func NewOsProjectFileSystem(projectDir string) (*ProjectFileSystem, error) {
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project directory: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open project directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project directory %s is not a directory", abs)
	}
	return NewProjectFileSystem(afero.NewBasePathFs(afero.NewOsFs(), abs)), nil
}

// Fs returns the underlying afero file system.
func (p *ProjectFileSystem) Fs() afero.Fs {
	return p.fs
}

// DirExists checks if a directory exists.
func (p *ProjectFileSystem) DirExists(ctx context.Context, path string) (bool, error) {
	info, err := p.stat(path)
	if err != nil || info == nil {
		return false, err
	}
	return info.IsDir(), nil
}

// FileExists checks if a regular file exists.
func (p *ProjectFileSystem) FileExists(ctx context.Context, path string) (bool, error) {
	info, err := p.stat(path)
	if err != nil || info == nil {
		return false, err
	}
	return !info.IsDir(), nil
}

// MkdirAll creates a directory with all parent directories.
func (p *ProjectFileSystem) MkdirAll(ctx context.Context, path string) error {
	if err := p.fs.MkdirAll(path, dirMode); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// Mkdir creates a single directory.
func (p *ProjectFileSystem) Mkdir(ctx context.Context, path string) error {
	if err := p.fs.Mkdir(path, dirMode); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// ReadFile returns the content of a file.
func (p *ProjectFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// Remove deletes a file.
func (p *ProjectFileSystem) Remove(ctx context.Context, path string) error {
	if err := p.fs.Remove(path); err != nil {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// WriteFile creates or truncates a file with the given content.
func (p *ProjectFileSystem) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := afero.WriteFile(p.fs, path, content, fileMode); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Walk visits every regular file below root in lexical order. Paths are
// slash separated.
func (p *ProjectFileSystem) Walk(ctx context.Context, root string, fn func(path string) error) error {
	return afero.Walk(p.fs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		return fn(filepath.ToSlash(path))
	})
}

func (p *ProjectFileSystem) stat(path string) (fs.FileInfo, error) {
	info, err := p.fs.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return info, nil
}

// Ensure ProjectFileSystem implements the interface
var _ secondary.FileSystem = (*ProjectFileSystem)(nil)
