// Package input stages conversion endpoints on the filesystem. The converter
// only reliably handles seekable files, so buffer and stream sources are
// drained to uniquely named temp files before the process is spawned, and
// buffer sinks are collected from a temp file after it exits.
package input

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/parth181195/ffmpeg-forge/internal/domain"
)

// Staged is a filesystem endpoint plus the cleanup for any temp file behind
// it. Cleanup is safe to call on every terminal path, including failures.
type Staged struct {
	Path     string
	tempPath string
}

// Cleanup removes the staged temp file, if one was created. Removal errors
// are ignored; a leaked temp file is preferable to masking the conversion's
// own error.
func (s *Staged) Cleanup() {
	if s.tempPath != "" {
		os.Remove(s.tempPath)
	}
}

func tempPath(suffix string) string {
	return filepath.Join(os.TempDir(), "ffmpeg-forge-"+uuid.NewString()+suffix)
}

// StageInput materializes an input source as a readable path. Path sources
// pass through untouched; buffers and readers are drained to a temp file.
func StageInput(in domain.Input) (*Staged, error) {
	switch {
	case in.Path != "":
		return &Staged{Path: in.Path}, nil

	case in.Buffer != nil:
		path := tempPath(".tmp")
		if err := os.WriteFile(path, in.Buffer, 0o644); err != nil {
			return nil, domain.NewInvalidInput(path, "failed to stage input buffer", err)
		}
		return &Staged{Path: path, tempPath: path}, nil

	case in.Reader != nil:
		path := tempPath(".tmp")
		f, err := os.Create(path)
		if err != nil {
			return nil, domain.NewInvalidInput(path, "failed to stage input stream", err)
		}
		if _, err := io.Copy(f, in.Reader); err != nil {
			f.Close()
			os.Remove(path)
			return nil, domain.NewInvalidInput(path, "failed to drain input stream", err)
		}
		if err := f.Close(); err != nil {
			os.Remove(path)
			return nil, domain.NewInvalidInput(path, "failed to stage input stream", err)
		}
		return &Staged{Path: path, tempPath: path}, nil

	default:
		return nil, domain.NewInvalidInput("", "input has no source", nil)
	}
}

// StageOutput materializes an output sink as a writable path. Writer sinks
// get a temp file; Collect copies it into the writer after the conversion.
// The extension hint keeps the converter's container inference working when
// no explicit format is configured.
func StageOutput(out domain.Output, extHint string) (*Staged, error) {
	switch {
	case out.Path != "":
		return &Staged{Path: out.Path}, nil

	case out.Writer != nil:
		if extHint == "" {
			extHint = ".tmp"
		}
		path := tempPath(extHint)
		return &Staged{Path: path, tempPath: path}, nil

	default:
		return nil, domain.NewInvalidOutput("", "output has no destination", nil)
	}
}

// Collect copies a staged output temp file into the configured writer. No-op
// for direct path sinks.
func Collect(s *Staged, out domain.Output) error {
	if s.tempPath == "" || out.Writer == nil {
		return nil
	}
	f, err := os.Open(s.tempPath)
	if err != nil {
		return domain.NewInvalidOutput(s.tempPath, "failed to read staged output", err)
	}
	defer f.Close()
	if _, err := io.Copy(out.Writer, f); err != nil {
		return domain.NewInvalidOutput(s.tempPath, "failed to copy staged output", err)
	}
	return nil
}

// ReadStaged returns the staged output file's contents, for the
// buffer-returning conversion mode.
func ReadStaged(s *Staged) ([]byte, error) {
	data, err := os.ReadFile(s.tempPath)
	if err != nil {
		return nil, domain.NewInvalidOutput(s.tempPath, "failed to read staged output", err)
	}
	return data, nil
}
