package content

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
)

// Compress gzips data in one shot with a zero modification time, so equal
// inputs produce equal outputs.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("content: gzip write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("content: gzip close: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress gunzips data in one shot.
func Decompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("content: gzip header: %w", err)
	}
	defer func() { _ = r.Close() }()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("content: gzip body: %w", err)
	}
	return out, nil
}
