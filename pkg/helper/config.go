package helper

import (
	"os"
	"path/filepath"
)

// GetCfgPath returns the path to the configuration file.
//
// Priority:
// 1. If filename is an absolute path, return it directly.
// 2. Check ./{filename} and ./configs/{filename}
// 3. Otherwise, fallback to /etc/ferrohub/{filename}
func GetCfgPath(filename string) string {
	if filename == "" {
		panic("filename cannot be empty")
	}

	if filepath.IsAbs(filename) {
		return filename
	}

	if local := findLocal(filename); local != "" {
		return local
	}

	// fallback
	return filepath.Join("/etc/ferrohub", filename)
}

func findLocal(filename string) string {
	cwd, err := os.Getwd()
	if err != nil || cwd == "" {
		return ""
	}

	for _, candidate := range []string{
		filepath.Join(cwd, filename),
		filepath.Join(cwd, "configs", filename),
	} {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if abs, err := filepath.Abs(candidate); err == nil {
			return abs
		}
	}
	return ""
}
