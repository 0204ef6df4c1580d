package domain

import "io"

// Input is the source of a conversion: a filesystem path, an in-memory
// buffer, or a stream. Exactly one field should be set; buffers and streams
// are drained into a temporary file before the converter is spawned.
type Input struct {
	Path   string
	Buffer []byte
	Reader io.Reader
}

// IsZero reports whether no source was provided.
func (in Input) IsZero() bool {
	return in.Path == "" && in.Buffer == nil && in.Reader == nil
}

// Output is the sink of a conversion: a filesystem path or a writer. When
// Writer is set the converter renders into a temporary file, which is copied
// into the writer after a clean exit.
type Output struct {
	Path   string
	Writer io.Writer
}

// IsZero reports whether no sink was provided.
func (out Output) IsZero() bool {
	return out.Path == "" && out.Writer == nil
}
