package storage

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"testing"
)

// smallest valid PNG header is enough for content sniffing
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)

func TestFSStore(t *testing.T) {
	s, err := NewFSStore(t.TempDir(), "http://localhost:8080/")
	if err != nil {
		t.Fatal(err)
	}
	key, err := s.Put("words/w1/image.png", strings.NewReader("hello"))
	if err != nil {
		t.Fatal(err)
	}
	rc, err := s.Get(key)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := io.ReadAll(rc)
	rc.Close()
	if string(b) != "hello" {
		t.Fatalf("got %q", b)
	}
	if u := s.URL(key); u != "http://localhost:8080/assets/words/w1/image.png" {
		t.Fatalf("url %q", u)
	}

	for _, bad := range []string{"", "../etc/passwd", "words/../../x", "/"} {
		if _, err := s.Put(bad, strings.NewReader("x")); !errors.Is(err, ErrBadKey) {
			t.Errorf("Put(%q): %v", bad, err)
		}
	}
	if _, err := s.Get("../secret"); !errors.Is(err, ErrBadKey) {
		t.Errorf("Get traversal: %v", err)
	}
}

func TestDecodeDataURI(t *testing.T) {
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)
	b, err := DecodeDataURI(uri)
	if err != nil || !bytes.Equal(b, pngBytes) {
		t.Fatalf("%v", err)
	}
	for _, bad := range []string{"https://x/y.png", "data:image/png,raw", "data:image/png;base64,@@@"} {
		if _, err := DecodeDataURI(bad); !errors.Is(err, ErrNotImage) {
			t.Errorf("%q: %v", bad, err)
		}
	}
}

func TestSaveWordImage(t *testing.T) {
	s, _ := NewFSStore(t.TempDir(), "")
	u, err := SaveWordImage(s, "admin-1", bytes.NewReader(pngBytes))
	if err != nil {
		t.Fatal(err)
	}
	if u != "/assets/words/admin-1/image.png" {
		t.Fatalf("url %q", u)
	}
	if _, err := SaveWordImage(s, "admin-1", strings.NewReader("just text")); !errors.Is(err, ErrNotImage) {
		t.Fatalf("text upload: %v", err)
	}
}
