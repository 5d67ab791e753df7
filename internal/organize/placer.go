package organize

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"alchemist/internal/fileutil"
	"alchemist/internal/logging"
	"alchemist/internal/services"
)

// Placer moves documents into category folders under the library root.
type Placer struct {
	libraryDir string
	logger     *slog.Logger
}

// New returns a Placer rooted at libraryDir.
func New(libraryDir string, logger *slog.Logger) *Placer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Placer{
		libraryDir: libraryDir,
		logger:     logging.NewComponentLogger(logger, "organize"),
	}
}

// Place moves the file at sourcePath into the category folder under the
// library root, using filename as the desired name. When that name is taken
// a numeric suffix is inserted before the extension. The final path is
// returned.
func (p *Placer) Place(sourcePath, category, filename string) (string, error) {
	dir := filepath.Join(p.libraryDir, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", services.Wrap(services.ErrPlacement, "organizing", "ensure category dir", "Failed to create category folder", err)
	}

	target, err := nextAvailablePath(dir, filename)
	if err != nil {
		return "", services.Wrap(services.ErrPlacement, "organizing", "allocate filename", "Unable to allocate destination filename", err)
	}

	if err := p.moveFile(sourcePath, target); err != nil {
		return "", err
	}
	p.logger.Debug("placed document",
		logging.String("source", sourcePath),
		logging.String("target", target),
	)
	return target, nil
}

// moveFile renames source to target, falling back to copy+delete for
// cross-device moves.
func (p *Placer) moveFile(source, target string) error {
	renameErr := os.Rename(source, target)
	if renameErr == nil {
		return nil
	}

	var linkErr *os.LinkError
	if errors.As(renameErr, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
		if copyErr := fileutil.CopyFileVerified(source, target); copyErr != nil {
			return services.Wrap(services.ErrPlacement, "organizing", "copy document", "Failed to copy document into library", copyErr)
		}
		if err := os.Remove(source); err != nil {
			p.logger.Warn("failed to remove source after copy; duplicate remains in watch folder",
				logging.Error(err),
				logging.String("source", source),
			)
		}
		return nil
	}

	return services.Wrap(services.ErrPlacement, "organizing", "move document", "Failed to move document into library", renameErr)
}

// nextAvailablePath returns dir/filename, or the first dir/stem_N.ext that
// does not exist yet when the plain name is taken.
func nextAvailablePath(dir, filename string) (string, error) {
	candidate := filepath.Join(dir, filename)
	taken, err := pathExists(candidate)
	if err != nil {
		return "", err
	}
	if !taken {
		return candidate, nil
	}

	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	for suffix := 1; ; suffix++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, suffix, ext))
		taken, err := pathExists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}

func pathExists(path string) (bool, error) {
	if _, err := os.Lstat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
