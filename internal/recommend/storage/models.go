// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// SchemaVersion identifies the layout of the state types in this package.
// Bump it whenever a state struct changes shape or meaning.
const SchemaVersion = 1

const modelExt = ".gob.gz"

var (
	// ErrModelNotFound is returned when no artifact exists for a name/version.
	ErrModelNotFound = errors.New("model artifact not found")

	// ErrSchemaMismatch is returned when an artifact was written by an
	// incompatible schema version.
	ErrSchemaMismatch = errors.New("model artifact schema mismatch")

	// ErrChecksumMismatch is returned when an artifact's payload is corrupt.
	ErrChecksumMismatch = errors.New("model artifact checksum mismatch")
)

// ModelMetadata contains information about a stored artifact.
type ModelMetadata struct {
	// Name is the artifact name (e.g., "catalog", "content", "collaborative").
	Name string `json:"name"`

	// Version is the training run version (monotonically increasing).
	Version int `json:"version"`

	// SchemaVersion is the state layout the artifact was written with.
	SchemaVersion int `json:"schema_version"`

	// TrainedAt is when the training run started.
	TrainedAt time.Time `json:"trained_at"`

	// SavedAt is when the artifact was written.
	SavedAt time.Time `json:"saved_at"`

	InteractionCount int `json:"interaction_count"`
	ProductCount     int `json:"product_count"`
	UserCount        int `json:"user_count"`

	// Checksum is the SHA-256 checksum of the uncompressed payload.
	Checksum string `json:"checksum"`

	// SizeBytes is the compressed payload size in bytes.
	SizeBytes int64 `json:"size_bytes"`

	TrainingDurationMS int64 `json:"training_duration_ms"`
}

// Store manages artifact persistence.
type Store struct {
	baseDir string
	mu      sync.RWMutex

	// latest version per artifact name
	versions map[string]int
}

// NewStore creates a new artifact store at the given directory.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o750); err != nil { //nolint:gosec // 0750 is acceptable for model storage
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	s := &Store{
		baseDir:  baseDir,
		versions: make(map[string]int),
	}

	if err := s.scanModels(); err != nil {
		return nil, fmt.Errorf("scan existing models: %w", err)
	}

	return s, nil
}

// Dir returns the directory artifacts are stored in.
func (s *Store) Dir() string {
	return s.baseDir
}

// scanModels records the latest version of every artifact on disk.
func (s *Store) scanModels() error {
	files, err := s.listFiles()
	if err != nil {
		return err
	}
	for name, versions := range files {
		s.versions[name] = versions[0]
	}
	return nil
}

// listFiles returns every artifact version on disk, newest first.
// Temporary files left by an interrupted Save are ignored.
func (s *Store) listFiles() (map[string][]int, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]int)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, ok := strings.CutSuffix(entry.Name(), modelExt)
		if !ok || strings.HasPrefix(name, ".") {
			continue
		}
		artifact, version := parseModelFilename(name)
		if artifact == "" {
			continue
		}
		out[artifact] = append(out[artifact], version)
	}

	for name := range out {
		sort.Sort(sort.Reverse(sort.IntSlice(out[name])))
	}
	return out, nil
}

// parseModelFilename extracts the artifact name and version from "content_v3".
func parseModelFilename(name string) (artifact string, version int) {
	idx := strings.LastIndex(name, "_v")
	if idx <= 0 {
		return "", 0
	}

	if _, err := fmt.Sscanf(name[idx+2:], "%d", &version); err != nil || version <= 0 {
		return "", 0
	}

	return name[:idx], version
}

// storedFile is the on-disk format for artifact files.
type storedFile struct {
	Metadata       ModelMetadata
	CompressedData []byte
}

// Save stores an artifact under name and version.
// The file is written to a temporary path and renamed into place, so a
// concurrent Load never observes a partial artifact.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func (s *Store) Save(ctx context.Context, name string, version int, data interface{}, meta ModelMetadata) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(data); err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	rawData := buf.Bytes()

	hash := sha256.Sum256(rawData)
	meta.Checksum = hex.EncodeToString(hash[:])

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(rawData); err != nil {
		return fmt.Errorf("compress model: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return fmt.Errorf("finalize compression: %w", err)
	}

	meta.SizeBytes = int64(compressed.Len())
	meta.SavedAt = time.Now()
	meta.Name = name
	meta.Version = version
	meta.SchemaVersion = SchemaVersion

	tmp, err := os.CreateTemp(s.baseDir, "."+name+"_*.tmp")
	if err != nil {
		return fmt.Errorf("create temp model file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()        //nolint:errcheck // already failing
			_ = os.Remove(tmpName) //nolint:errcheck // best-effort cleanup
		}
	}()

	sf := storedFile{
		Metadata:       meta,
		CompressedData: compressed.Bytes(),
	}
	if err := gob.NewEncoder(tmp).Encode(sf); err != nil {
		return fmt.Errorf("write model file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync model file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close model file: %w", err)
	}
	if err := os.Rename(tmpName, s.modelPath(name, version)); err != nil {
		return fmt.Errorf("publish model file: %w", err)
	}
	committed = true

	if current, ok := s.versions[name]; !ok || version > current {
		s.versions[name] = version
	}

	return nil
}

// Load decodes an artifact into target and returns its metadata.
// If version is 0, the latest version is loaded.
func (s *Store) Load(ctx context.Context, name string, version int, target interface{}) (*ModelMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if version == 0 {
		var ok bool
		version, ok = s.versions[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, name)
		}
	}

	sf, err := s.readFile(name, version)
	if err != nil {
		return nil, err
	}

	if sf.Metadata.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("%w: %s v%d has schema %d, expected %d",
			ErrSchemaMismatch, name, version, sf.Metadata.SchemaVersion, SchemaVersion)
	}

	gzr, err := gzip.NewReader(bytes.NewReader(sf.CompressedData))
	if err != nil {
		return nil, fmt.Errorf("decompress model: %w", err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // error on gzip close after read is not actionable

	rawData, err := io.ReadAll(gzr)
	if err != nil {
		return nil, fmt.Errorf("read decompressed data: %w", err)
	}

	hash := sha256.Sum256(rawData)
	if checksum := hex.EncodeToString(hash[:]); checksum != sf.Metadata.Checksum {
		return nil, fmt.Errorf("%w: %s v%d expected %s, got %s",
			ErrChecksumMismatch, name, version, sf.Metadata.Checksum, checksum)
	}

	if err := gob.NewDecoder(bytes.NewReader(rawData)).Decode(target); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}

	return &sf.Metadata, nil
}

func (s *Store) readFile(name string, version int) (*storedFile, error) {
	f, err := os.Open(s.modelPath(name, version))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s v%d", ErrModelNotFound, name, version)
	}
	if err != nil {
		return nil, fmt.Errorf("open model file: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // error on close after read is not actionable

	var sf storedFile
	if err := gob.NewDecoder(f).Decode(&sf); err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}
	return &sf, nil
}

// GetLatestVersion returns the latest version number for an artifact.
func (s *Store) GetLatestVersion(name string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	version, ok := s.versions[name]
	return version, ok
}

// LatestComplete returns the newest version for which every named artifact
// exists on disk. A training run that died between artifacts leaves an
// incomplete version, which is skipped.
func (s *Store) LatestComplete(names ...string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(names) == 0 {
		return 0, false
	}

	files, err := s.listFiles()
	if err != nil {
		return 0, false
	}

	counts := make(map[int]int)
	for _, name := range names {
		for _, v := range files[name] {
			counts[v]++
		}
	}

	best := 0
	for v, c := range counts {
		if c == len(names) && v > best {
			best = v
		}
	}
	return best, best > 0
}

// NextVersion returns a version higher than any artifact on disk.
func (s *Store) NextVersion() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	next := 1
	for _, v := range s.versions {
		if v >= next {
			next = v + 1
		}
	}
	return next
}

// ListModels returns metadata for the latest version of every artifact.
func (s *Store) ListModels(ctx context.Context) ([]ModelMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.versions))
	for name := range s.versions {
		names = append(names, name)
	}
	sort.Strings(names)

	models := make([]ModelMetadata, 0, len(names))
	for _, name := range names {
		sf, err := s.readFile(name, s.versions[name])
		if err != nil {
			continue
		}
		models = append(models, sf.Metadata)
	}

	return models, nil
}

// Delete removes a specific artifact version.
func (s *Store) Delete(ctx context.Context, name string, version int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.modelPath(name, version)); err != nil {
		return fmt.Errorf("delete model: %w", err)
	}

	if s.versions[name] == version {
		files, err := s.listFiles()
		if err != nil {
			return fmt.Errorf("read directory: %w", err)
		}
		if remaining := files[name]; len(remaining) > 0 {
			s.versions[name] = remaining[0]
		} else {
			delete(s.versions, name)
		}
	}

	return nil
}

// Prune removes old versions of an artifact, keeping only the latest N.
func (s *Store) Prune(ctx context.Context, name string, keepVersions int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keepVersions < 1 {
		keepVersions = 1
	}

	files, err := s.listFiles()
	if err != nil {
		return fmt.Errorf("read directory: %w", err)
	}

	versions := files[name]
	for i := keepVersions; i < len(versions); i++ {
		_ = os.Remove(s.modelPath(name, versions[i])) //nolint:errcheck // best-effort cleanup of old versions
	}

	return nil
}

// modelPath returns the file path for an artifact.
func (s *Store) modelPath(name string, version int) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("%s_v%d%s", name, version, modelExt))
}
