package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// Registered decoders for snapshot image formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/alnah/go-chat2html/internal/fileutil"
)

// Sentinel errors for image acquisition.
var (
	ErrRemoteSource      = errors.New("remote source cannot be fetched offline")
	ErrNoBaseDir         = errors.New("no base directory to resolve local source")
	ErrPathEscapesBase   = errors.New("source path escapes the snapshot directory")
	ErrUnsupportedSource = errors.New("unsupported image source")
)

// Loader resolves an image source to decoded pixels. Implementations must
// not reach the network: a conversion reads only resources the snapshot
// already carries.
type Loader interface {
	Load(ctx context.Context, source string) (image.Image, error)
}

// SnapshotLoader resolves data URIs in place and local paths against the
// snapshot directory. Remote URLs are refused: the offline equivalent of a
// cross-origin read-back restriction.
type SnapshotLoader struct {
	BaseDir string
}

// NewSnapshotLoader creates a loader rooted at baseDir. An empty baseDir
// still resolves data URIs but refuses local paths.
func NewSnapshotLoader(baseDir string) *SnapshotLoader {
	return &SnapshotLoader{BaseDir: baseDir}
}

// Load decodes the resource behind source. One attempt, no retries.
func (l *SnapshotLoader) Load(ctx context.Context, source string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch {
	case strings.HasPrefix(source, "data:"):
		return decodeDataURI(source)
	case isRemote(source):
		return nil, fmt.Errorf("%w: %s", ErrRemoteSource, source)
	case source == "":
		return nil, fmt.Errorf("%w: empty source", ErrUnsupportedSource)
	}

	return l.loadLocal(source)
}

// loadLocal reads and decodes a file under BaseDir.
func (l *SnapshotLoader) loadLocal(source string) (image.Image, error) {
	if l.BaseDir == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoBaseDir, source)
	}

	absBase, err := filepath.Abs(l.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("resolving base directory: %w", err)
	}

	path := source
	if !filepath.IsAbs(path) {
		path = filepath.Join(absBase, filepath.FromSlash(source))
	}
	if !isPathUnderDir(path, absBase) {
		return nil, fmt.Errorf("%w: %s", ErrPathEscapesBase, source)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is confined to BaseDir above
	if err != nil {
		return nil, fmt.Errorf("reading image file: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image file: %w", err)
	}
	return img, nil
}

// decodeDataURI decodes a base64 data URI payload.
func decodeDataURI(source string) (image.Image, error) {
	comma := strings.Index(source, ",")
	if comma == -1 {
		return nil, fmt.Errorf("%w: malformed data URI", ErrUnsupportedSource)
	}
	meta, payload := source[:comma], source[comma+1:]
	if !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("%w: data URI is not base64", ErrUnsupportedSource)
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding data URI payload: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding data URI image: %w", err)
	}
	return img, nil
}

// isRemote returns true for URLs that would require a network fetch.
// Protocol-relative sources count: they resolve to a remote origin.
func isRemote(source string) bool {
	return fileutil.IsURL(source) || strings.HasPrefix(source, "//")
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}

	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}
