/*
DESCRIPTION
  senders.go provides io.WriteCloser implementations used as receipt and
  photo destinations: the thermal printer device node and timestamped
  files under the output directory.

AUTHORS
  Matt Stief <mattstief@users.noreply.github.com>

LICENSE
  Copyright (C) 2026 Matt Stief. All rights reserved.

  Use of this source code is governed by the BSD 2-clause license that can be
  found in the LICENSE file.
*/

package booth

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ausocean/utils/logging"
)

const (
	// Writes are abandoned when free disk space falls below this.
	diskSpaceBuffer = 50000000 // 50MB.

	timestampFormat = "2006-01-02_15-04-05"
)

// printerSender implements io.WriteCloser for the thermal printer device
// node. The node is opened lazily on the first write of a job and closed
// once the job is done, so the printer is free between receipts.
type printerSender struct {
	path string
	dev  *os.File
	log  logging.Logger
}

// newPrinterSender returns a new printerSender writing to the device node at
// the given path.
func newPrinterSender(l logging.Logger, path string) *printerSender {
	return &printerSender{path: path, log: l}
}

// Write implements io.Writer.
func (s *printerSender) Write(d []byte) (int, error) {
	if s.dev == nil {
		s.log.Debug(pkg+"opening printer device", "path", s.path)
		f, err := os.OpenFile(s.path, os.O_WRONLY, 0)
		if err != nil {
			return 0, fmt.Errorf("could not open printer device: %w", err)
		}
		s.dev = f
	}
	s.log.Debug(pkg+"writing to printer device", "bytes", len(d))
	return s.dev.Write(d)
}

// Close closes the printer device node if a job opened it.
func (s *printerSender) Close() error {
	if s.dev == nil {
		return nil
	}
	err := s.dev.Close()
	s.dev = nil
	return err
}

// fileSender implements io.WriteCloser for a local file destination. Each
// write creates a new timestamped file under dir, so one write is one photo
// or one receipt job.
type fileSender struct {
	dir    string
	prefix string
	ext    string
	log    logging.Logger
}

// newFileSender returns a new fileSender creating files named
// prefix<timestamp>ext under dir.
func newFileSender(l logging.Logger, dir, prefix, ext string) *fileSender {
	return &fileSender{dir: dir, prefix: prefix, ext: ext, log: l}
}

// Write implements io.Writer.
func (s *fileSender) Write(d []byte) (int, error) {
	s.log.Debug(pkg + "checking disk space")
	var stat syscall.Statfs_t
	if err := syscall.Statfs("/", &stat); err != nil {
		return 0, fmt.Errorf("could not read system disk space, abandoning write: %w", err)
	}
	availableSpace := stat.Bavail * uint64(stat.Bsize)
	totalSpace := stat.Blocks * uint64(stat.Bsize)
	s.log.Debug(pkg+"available, total disk space in bytes", "availableSpace", availableSpace, "totalSpace", totalSpace)
	if availableSpace < diskSpaceBuffer {
		return 0, fmt.Errorf("reached limit of disk space with a buffer of %v bytes, abandoning write", uint64(diskSpaceBuffer))
	}

	err := os.MkdirAll(s.dir, 0755)
	if err != nil {
		return 0, fmt.Errorf("could not create output directory: %w", err)
	}

	fileName := filepath.Join(s.dir, s.prefix+time.Now().Format(timestampFormat)+s.ext)
	s.log.Debug(pkg+"creating new output file", "fileName", fileName)
	f, err := os.Create(fileName)
	if err != nil {
		return 0, fmt.Errorf("could not create output file: %w", err)
	}

	n, err := f.Write(d)
	if err != nil {
		f.Close()
		return n, err
	}
	return n, f.Close()
}

// Close is a no-op; every write opens and closes its own file.
func (s *fileSender) Close() error { return nil }
