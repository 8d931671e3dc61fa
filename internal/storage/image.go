package storage

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const MaxImageBytes = 5 << 20

var ErrNotImage = errors.New("not a supported image")

var imageExt = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// DecodeDataURI parses "data:image/png;base64,...." and returns the bytes.
func DecodeDataURI(uri string) ([]byte, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(uri), "data:")
	if !ok {
		return nil, fmt.Errorf("%w: not a data uri", ErrNotImage)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("%w: data uri must be base64", ErrNotImage)
	}
	b, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	return b, nil
}

// SaveWordImage sniffs the content type, stores the image under
// words/<id>/ and returns its public URL.
func SaveWordImage(bs BlobStore, wordID string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return "", err
	}
	if len(data) > MaxImageBytes {
		return "", fmt.Errorf("%w: larger than %d bytes", ErrNotImage, MaxImageBytes)
	}
	ext, ok := imageExt[http.DetectContentType(data)]
	if !ok {
		return "", ErrNotImage
	}
	key, err := bs.Put("words/"+wordID+"/image"+ext, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	return bs.URL(key), nil
}
