package authentication

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/mmcdole/htauth/pkg/logging"
	"github.com/spf13/afero"
)

// FileSource looks up password hashes in an htpasswd-format file.
// Each line has the form "username:hash". The file is read again on every
// lookup so edits take effect immediately.
type FileSource struct {
	fs   afero.Fs
	path string
}

// NewFileSource creates a new FileSource reading path from fs.
// A nil fs uses the operating system filesystem.
func NewFileSource(fs afero.Fs, path string) *FileSource {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FileSource{
		fs:   fs,
		path: path,
	}
}

// Path returns the configured, unresolved path of the credentials file
func (s *FileSource) Path() string {
	return s.path
}

// resolvePath returns the canonical path of the credentials file, failing if
// it does not exist or is not a regular file.
func (s *FileSource) resolvePath() (string, error) {
	if s.path == "" {
		return "", errors.New("no credentials file configured")
	}

	resolved, err := filepath.Abs(s.path)
	if err != nil {
		return "", err
	}

	// Symlinks can only be followed on the real filesystem
	if _, ok := s.fs.(*afero.OsFs); ok {
		resolved, err = filepath.EvalSymlinks(resolved)
		if err != nil {
			return "", err
		}
	}

	fi, err := s.fs.Stat(resolved)
	if err != nil {
		return "", err
	}
	if fi.IsDir() {
		return "", fmt.Errorf("%s is a directory", resolved)
	}
	return resolved, nil
}

// LookupHash implements Source
func (s *FileSource) LookupHash(ctx context.Context, username string) (string, error) {
	logger := logging.App.With("path", s.path)

	resolved, err := s.resolvePath()
	if err != nil {
		logger.Debug("Credentials file not resolvable", "error", err)
		return "", fmt.Errorf("%w: resolving %s: %w", ErrStorageUnavailable, s.path, err)
	}

	f, err := s.fs.Open(resolved)
	if err != nil {
		logger.Debug("Credentials file not readable", "resolved", resolved, "error", err)
		return "", fmt.Errorf("%w: opening %s: %w", ErrStorageUnavailable, resolved, err)
	}
	defer f.Close()

	hash, err := scanForHash(ctx, f, username)
	if err != nil {
		if !errors.Is(err, ErrUsernameNotFound) {
			logger.Debug("Credentials file scan failed", "resolved", resolved, "error", err)
			return "", fmt.Errorf("%w: reading %s: %w", ErrStorageUnavailable, resolved, err)
		}
		return "", err
	}
	return hash, nil
}

// scanForHash reads r top to bottom and returns the hash from the first line
// beginning with username followed by a colon. Reading stops at that line.
// Usernames that cannot appear as a first field never match.
func scanForHash(ctx context.Context, r io.Reader, username string) (string, error) {
	if username == "" || strings.Contains(username, ":") {
		return "", ErrUsernameNotFound
	}
	prefix := username + ":"
	br := bufio.NewReader(r)

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		line, err := br.ReadString('\n')
		if strings.HasPrefix(line, prefix) {
			fields := strings.Split(strings.TrimSpace(line), ":")
			if len(fields) < 2 || fields[1] == "" {
				return "", ErrUsernameNotFound
			}
			return fields[1], nil
		}

		if err == io.EOF {
			return "", ErrUsernameNotFound
		}
		if err != nil {
			return "", err
		}
	}
}
