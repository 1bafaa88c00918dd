// Package backup copies a file to a timestamped sibling before it is changed.
package backup

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/thiagodp/apache-php/internal/clock"
	"github.com/thiagodp/apache-php/internal/fsops"
)

// Service creates backups.
type Service struct {
	fs    fsops.FS
	clock clock.Clock
}

// New creates a backup Service.
func New(fs fsops.FS, clk clock.Clock) *Service {
	return &Service{fs: fs, clock: clk}
}

// Path returns the backup path of src taken at t: the timestamp goes
// between the file stem and its extension, in the same directory.
//
//	conf/httpd.conf -> conf/httpd-2024-01-15_10-30-00.conf
func Path(src string, t time.Time) string {
	dir, base := filepath.Split(src)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return dir + stem + "-" + clock.Stamp(t) + ext
}

// Backup copies src to its timestamped sibling and returns that path.
// Permission bits and modification time are carried over on a best-effort
// basis. An existing backup taken in the same second is overwritten.
func (s *Service) Backup(src string) (string, error) {
	dst := Path(src, s.clock.Now())
	if err := s.fs.CopyFile(src, dst); err != nil {
		return dst, fmt.Errorf("failed to back up %s: %w", src, err)
	}
	return dst, nil
}
