package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/UnendingLoop/ImageHandles/internal/model"
	"github.com/wb-go/wbf/zlog"
)

// resolvePath keeps path inside root. Relative paths are joined to root, absolute ones must already lie under it.
// Symlinks in the existing part of the path are resolved before the check
func resolvePath(root, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: empty path", model.ErrBadRequest)
	}
	if root == "" {
		return path, nil
	}

	candidate := path
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(root, candidate)
	}
	candidate = filepath.Clean(candidate)

	cleanRoot := filepath.Clean(root)
	if !within(cleanRoot, candidate) {
		return "", fmt.Errorf("%w: %q", model.ErrPathOutsideRoot, path)
	}
	// симлинк внутри root может вести наружу
	realRoot, okRoot := evalExisting(cleanRoot)
	realPath, okPath := evalExisting(candidate)
	if !okRoot || !okPath || !within(realRoot, realPath) {
		return "", fmt.Errorf("%w: %q resolves outside root", model.ErrPathOutsideRoot, path)
	}

	return candidate, nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// evalExisting раскрывает симлинки в самой длинной существующей части пути, хвост (файл для Save) дописывает как есть.
// false - в пути битый симлинк, куда он ведет, не узнать
func evalExisting(path string) (string, bool) {
	rest := ""
	for dir := path; ; dir = filepath.Dir(dir) {
		resolved, err := filepath.EvalSymlinks(dir)
		if err == nil {
			return filepath.Join(resolved, rest), true
		}
		if _, lErr := os.Lstat(dir); lErr == nil {
			return "", false
		}
		if filepath.Dir(dir) == dir {
			return path, true
		}
		rest = filepath.Join(filepath.Base(dir), rest)
	}
}

// logFailure пишет клиентские ошибки в warn, остальные в error
func logFailure(logger zlog.Zerolog, err error, msg string) {
	if IsClientError(err) {
		logger.Warn().Err(err).Msg(msg)
		return
	}
	logger.Error().Err(err).Msg(msg)
}
