package views

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/jon4hz/crudnote/internal/apperror"
)

// FSLoader reads views/<name>.html from a filesystem.
type FSLoader struct {
	fsys fs.FS
}

// NewFSLoader creates a loader reading fragments from fsys.
func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys}
}

// NewDirLoader creates a loader reading fragments from <dir>/views.
func NewDirLoader(dir string) *FSLoader {
	return NewFSLoader(os.DirFS(dir))
}

func (l *FSLoader) Load(ctx context.Context, name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", apperror.ErrFragmentUnavailable, err)
	}
	data, err := fs.ReadFile(l.fsys, fragmentPath(name))
	if err != nil {
		return "", fmt.Errorf("%w: could not load view %s: %w", apperror.ErrFragmentUnavailable, name, err)
	}
	return string(data), nil
}
