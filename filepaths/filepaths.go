package filepaths

import (
	"fmt"
	"os"
)

// EnsureOutputDir ensures the output directory exists and is usable.
// An existing non-empty directory is only accepted if force is set - this
// replaces the interactive confirmation of earlier versions of the tool.
func EnsureOutputDir(path string, force bool) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("could not create directory %s: %w", path, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%s exists but is not a directory", path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("could not read directory %s: %w", path, err)
	}
	if len(entries) > 0 && !force {
		return fmt.Errorf("%s is not empty - pass --force to write into it anyway", path)
	}

	return nil
}
