package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"integral/channels"
)

// OutputName returns the result file name for the i-th input.
func OutputName(i int, path string) string {
	return fmt.Sprintf("%04d-%s.integral", i, baseName(path))
}

// baseName returns the part of path after the last slash.
func baseName(path string) string {
	return path[strings.LastIndexByte(path, '/')+1:]
}

// save writes c to a temporary file next to dest and renames it into place
// once everything was written and flushed.
func save(c channels.Collection, dest string) (err error) {
	destDir, destName := filepath.Split(dest)
	outFile, err := os.CreateTemp(destDir, destName+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", destName, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", destName, defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", destName, defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), dest); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", destName, defErr)
			}
		}
		if err != nil {
			os.Remove(outFile.Name())
		}
	}()

	if err = c.Export(outFile); err != nil {
		return fmt.Errorf("could not write destination %q: %w", destName, err)
	}

	canRename = true
	return nil
}
