package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// atomicWrite writes content to a sibling temp file named
// <target>.<random>.tmp, syncs it, and renames it over the target. On
// any failure the temp file is removed before the error surfaces, so
// readers only ever observe a complete document. Concurrent writers
// race on the rename; the last one wins.
func atomicWrite(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(content); err != nil {
		cleanup()
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("syncing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming over %s: %w", path, err)
	}
	return nil
}

// appendLine appends a single newline-terminated record using OS append
// semantics, so one writer's record is never split by another's.
func appendLine(path string, line []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening %s for append: %w", path, err)
	}
	defer f.Close()

	record := make([]byte, 0, len(line)+1)
	record = append(record, line...)
	record = append(record, '\n')
	if _, err := f.Write(record); err != nil {
		return fmt.Errorf("appending to %s: %w", path, err)
	}
	return f.Sync()
}
