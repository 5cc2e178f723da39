// Package buildcache provides a derivation-skip cache for the typederive CLI.
//
// Deriving a document is cheap, but it is often wired into larger build
// pipelines that re-run it on every pass. When the graph dump, the config
// file, AND the previously generated document are all unchanged since the
// last successful run, the whole derivation can be skipped.
//
// The cache is intentionally conservative: if ANY check fails, derivation
// runs from scratch. There are no partial invalidation shortcuts.
package buildcache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// SchemaVersion is bumped when the cache format or the derivation output
// format changes. A mismatch forces a full run, ensuring binary upgrades
// don't leave stale documents behind.
const SchemaVersion = 1

// Cache represents the on-disk derivation cache.
// It records what was true when derivation last ran successfully.
type Cache struct {
	// V is the schema version. Must match SchemaVersion or cache is invalid.
	V int `json:"v"`

	// GraphHash is the SHA-256 hex digest of the graph dump content.
	GraphHash string `json:"graphHash"`

	// ConfigHash is the SHA-256 hex digest of the config file content.
	// Empty string means no config file was used.
	ConfigHash string `json:"configHash"`

	// Output is the path of the generated document, which must still exist
	// on disk for the cache to be valid.
	Output string `json:"output"`
}

// New creates a new Cache with the current schema version.
func New(graphHash, configHash, output string) *Cache {
	return &Cache{
		V:          SchemaVersion,
		GraphHash:  graphHash,
		ConfigHash: configHash,
		Output:     output,
	}
}

// CachePath returns the cache file path for a given document output path:
// a dotfile sibling, so that deleting the output directory also removes the
// cache and guarantees a fresh run.
func CachePath(output string) string {
	dir := filepath.Dir(output)
	return filepath.Join(dir, "."+filepath.Base(output)+".typederive-cache")
}

// Load reads and parses a cache file from disk.
// Returns nil if the file doesn't exist, is unreadable, or is invalid JSON.
// Callers should treat nil as "cache miss" and run full derivation.
func Load(path string) *Cache {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var c Cache
	if err := json.Unmarshal(data, &c); err != nil {
		return nil
	}

	return &c
}

// Save writes the cache to disk atomically (write to temp, rename).
// Returns an error if the write fails, but callers may choose to log and
// continue (a failed cache save just means the next run won't benefit).
func Save(path string, cache *Cache) error {
	data, err := json.Marshal(cache, jsontext.WithIndent("  "))
	if err != nil {
		return fmt.Errorf("marshaling cache: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing cache temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming cache file: %w", err)
	}

	return nil
}

// Delete removes the cache file from disk. Errors are ignored (file may not exist).
func Delete(path string) {
	os.Remove(path)
}

// IsValid checks whether the cache can be trusted to skip derivation.
// ALL of the following must be true simultaneously:
//
//  1. Schema version matches (catches binary upgrades)
//  2. Graph hash matches the current graph dump content
//  3. Config hash matches the current config file content
//  4. The generated document still exists on disk
func (c *Cache) IsValid(graphHash, configHash string) bool {
	if c == nil {
		return false
	}

	if c.V != SchemaVersion {
		return false
	}
	if c.GraphHash == "" || c.GraphHash != graphHash {
		return false
	}
	if c.ConfigHash != configHash {
		return false
	}
	if _, err := os.Stat(c.Output); err != nil {
		return false
	}

	return true
}

// HashFile computes the SHA-256 hex digest of a file's contents.
// Returns empty string if the file doesn't exist or can't be read.
func HashFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
