// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive prepares the per-level image directories and unpacks the
// image archive into the highest level's directory.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/pdiddy/zagrava-db/pkg/types"
)

// ExtractSummary reports the outcome of an extraction run.
type ExtractSummary struct {
	// Target is the directory files were written to.
	Target string
	// Extracted counts files written, including overwrites.
	Extracted int
	// Skipped counts file entries without a usable base name.
	Skipped int
	// Missing is true when the archive did not exist.
	Missing bool
}

// EnsureDirs creates imgRoot/<level> for every level.
func EnsureDirs(imgRoot string) error {
	for _, level := range types.Levels() {
		dir := filepath.Join(imgRoot, string(level))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating image directory %s: %w", dir, err)
		}
	}
	return nil
}

// Extract creates the level directories, then copies every file entry of the
// zip at zipPath into imgRoot/<highest level>/<base name>. Directory
// structure inside the archive is discarded and later entries overwrite
// earlier ones with the same base name. A missing archive is logged as a
// warning and is not an error.
func Extract(zipPath, imgRoot string, log *zap.Logger) (ExtractSummary, error) {
	target := filepath.Join(imgRoot, string(types.HighestLevel))
	summary := ExtractSummary{Target: target}

	if err := EnsureDirs(imgRoot); err != nil {
		return summary, err
	}

	if _, err := os.Stat(zipPath); errors.Is(err, fs.ErrNotExist) {
		log.Warn("image archive not found, skipping extraction", zap.String("archive", zipPath))
		summary.Missing = true
		return summary, nil
	}

	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return summary, fmt.Errorf("opening archive %s: %w", zipPath, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := baseName(f.Name)
		if name == "" {
			log.Debug("skipping archive entry without a file name", zap.String("entry", f.Name))
			summary.Skipped++
			continue
		}
		if err := copyEntry(f, filepath.Join(target, name)); err != nil {
			return summary, err
		}
		summary.Extracted++
	}

	log.Info("extracted images",
		zap.String("target", target),
		zap.Int("files", summary.Extracted),
		zap.Int("skipped", summary.Skipped))
	return summary, nil
}

// baseName returns the last slash-separated component of a zip entry name,
// or "" when it cannot name a file.
func baseName(entry string) string {
	name := path.Base(entry)
	switch name {
	case ".", "..", "/":
		return ""
	}
	return name
}

func copyEntry(f *zip.File, dest string) error {
	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("reading archive entry %s: %w", f.Name, err)
	}
	defer src.Close()

	dst, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dest, err)
	}
	return nil
}
