// Package store caches computed colimit artifacts on disk. Entries
// are content-addressed with a 2-character fan-out layout under
// objects/ and compressed with zstd; the address is the SHA-256 of the
// uncompressed "kind len\0content" envelope, so the same artifact
// always lands at the same path. The colimit core never touches this
// package; it exists for tooling that wants to keep quotient results
// around between runs.
package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/odvcencio/colim/pkg/quotient"
)

// Kind tags the payload of a stored entry.
type Kind string

const (
	KindDiagram Kind = "diagram"
	KindClasses Kind = "classes"
)

// Store is rooted at a directory; objects/ is created on first write.
type Store struct {
	root string
}

// New creates a Store rooted at dir.
func New(dir string) *Store {
	return &Store{root: dir}
}

func (s *Store) entryPath(h string) string {
	return filepath.Join(s.root, "objects", h[:2], h[2:])
}

// Has reports whether the store holds an entry with the given hash.
func (s *Store) Has(h string) bool {
	if len(h) < 3 {
		return false
	}
	_, err := os.Stat(s.entryPath(h))
	return err == nil
}

func envelope(kind Kind, data []byte) []byte {
	header := fmt.Sprintf("%s %d\x00", kind, len(data))
	return append([]byte(header), data...)
}

// HashEntry computes the content address of a payload.
func HashEntry(kind Kind, data []byte) string {
	sum := sha256.Sum256(envelope(kind, data))
	return hex.EncodeToString(sum[:])
}

// Put stores a payload and returns its content address. The on-disk
// bytes are the zstd-compressed envelope; writes go through a temp
// file and a rename so a crash never leaves a partial entry.
func (s *Store) Put(kind Kind, data []byte) (string, error) {
	h := HashEntry(kind, data)
	if s.Has(h) {
		return h, nil
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return "", fmt.Errorf("store put: %w", err)
	}
	compressed := enc.EncodeAll(envelope(kind, data), nil)
	enc.Close()

	dir := filepath.Join(s.root, "objects", h[:2])
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("store put mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("store put tmpfile: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(compressed); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("store put: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("store put close: %w", err)
	}
	if err := os.Rename(tmpName, s.entryPath(h)); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("store put rename: %w", err)
	}
	return h, nil
}

// Get retrieves an entry by address, returning its kind and payload.
func (s *Store) Get(h string) (Kind, []byte, error) {
	if len(h) < 3 {
		return "", nil, fmt.Errorf("store get: malformed hash %q", h)
	}
	compressed, err := os.ReadFile(s.entryPath(h))
	if err != nil {
		return "", nil, fmt.Errorf("store get %s: %w", h, err)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return "", nil, fmt.Errorf("store get: %w", err)
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return "", nil, fmt.Errorf("store get %s: decompress: %w", h, err)
	}

	nul := bytes.IndexByte(raw, 0)
	if nul < 0 {
		return "", nil, fmt.Errorf("store get %s: invalid envelope (no NUL)", h)
	}
	parts := strings.SplitN(string(raw[:nul]), " ", 2)
	if len(parts) != 2 {
		return "", nil, fmt.Errorf("store get %s: invalid header %q", h, raw[:nul])
	}
	length, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", nil, fmt.Errorf("store get %s: invalid length %q: %w", h, parts[1], err)
	}
	content := raw[nul+1:]
	if len(content) != length {
		return "", nil, fmt.Errorf("store get %s: length mismatch (header=%d, actual=%d)",
			h, length, len(content))
	}
	return Kind(parts[0]), content, nil
}

// classesFile is the serialized form of a quotient result: class
// members keyed by representative tag. RepOf is recoverable from it.
type classesFile struct {
	Members map[string][]string `json:"members"`
}

// PutClasses stores a quotient result.
func (s *Store) PutClasses(cls *quotient.Classes) (string, error) {
	file := classesFile{Members: make(map[string][]string, len(cls.Members))}
	for rep, members := range cls.Members {
		tags := make([]string, len(members))
		for i, e := range members {
			tags[i] = e.Tag()
		}
		file.Members[rep] = tags
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return "", fmt.Errorf("store classes: marshal: %w", err)
	}
	return s.Put(KindClasses, data)
}

// GetClasses retrieves a stored quotient result.
func (s *Store) GetClasses(h string) (*quotient.Classes, error) {
	kind, data, err := s.Get(h)
	if err != nil {
		return nil, err
	}
	if kind != KindClasses {
		return nil, fmt.Errorf("store classes %s: entry is a %s", h, kind)
	}
	var file classesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("store classes %s: unmarshal: %w", h, err)
	}

	cls := &quotient.Classes{
		RepOf:   make(map[quotient.Element]string),
		Members: make(map[string][]quotient.Element),
	}
	for rep, tags := range file.Members {
		for _, tag := range tags {
			e, err := quotient.ParseTag(tag)
			if err != nil {
				return nil, fmt.Errorf("store classes %s: %w", h, err)
			}
			cls.RepOf[e] = rep
			cls.Members[rep] = append(cls.Members[rep], e)
		}
	}
	return cls, nil
}
