package copier

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"restage/internal/ignore"
)

// Stats summarizes a copy run.
type Stats struct {
	Copied  int // Files copied (or planned, in dry-run mode)
	Ignored int // Entries skipped by the ignore set (a directory counts once)
	Failed  int // Entries that could not be read or written
}

// Copier installs a staged update payload into the output directory.
type Copier struct {
	Ignore *ignore.Set
	DryRun bool
}

// Run walks input and copies every non-ignored file to the matching relative
// path under output, creating directories as needed and overwriting existing
// files. Files already present in output but absent from input are left
// alone. Individual failures are logged and counted so the install applies
// as much of the payload as possible; Run only returns an error when the
// input directory itself is unusable.
func (c Copier) Run(input, output string) (Stats, error) {
	var stats Stats

	info, err := os.Stat(input)
	if err != nil {
		return stats, fmt.Errorf("input directory: %w", err)
	}
	if !info.IsDir() {
		return stats, fmt.Errorf("input path %s is not a directory", input)
	}

	walkErr := filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == input {
				return err
			}
			log.Warnf("Cannot read %s: %v", path, err)
			stats.Failed++
			return nil
		}

		rel, err := filepath.Rel(input, path)
		if err != nil || rel == "." {
			return nil
		}
		relSlash := filepath.ToSlash(rel)

		if c.Ignore != nil && c.Ignore.Match(relSlash) {
			log.Infof("Ignored: %s", relSlash)
			stats.Ignored++
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		dest := filepath.Join(output, rel)

		if d.IsDir() {
			if c.DryRun {
				return nil
			}
			if err := os.MkdirAll(dest, 0o755); err != nil {
				log.Warnf("Failed to create directory %s: %v", dest, err)
				stats.Failed++
				return fs.SkipDir
			}
			return nil
		}

		if c.DryRun {
			log.Infof("[dry run] Would copy %s -> %s", relSlash, dest)
			stats.Copied++
			return nil
		}

		if err := copyFile(path, dest); err != nil {
			log.Warnf("Failed to copy %s: %v", relSlash, err)
			stats.Failed++
			return nil
		}
		log.Infof("Copied: %s", relSlash)
		stats.Copied++
		return nil
	})

	return stats, walkErr
}

// copyFile copies src to dst, creating parent directories and preserving the
// source file mode. An existing dst is truncated.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	// OpenFile only applies the mode on create; an overwritten destination
	// keeps its old bits unless set explicitly.
	return os.Chmod(dst, info.Mode())
}
