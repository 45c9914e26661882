// Package project locates algorithm entry points inside project directories.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	lerrors "github.com/tradeops/leanctl/internal/errors"
)

// Algorithm entry file names, checked in order.
var algorithmFileNames = []string{"main.py", "Main.cs"}

// FindAlgorithmFile returns the algorithm entry file for a project path. A
// file path is used directly; a directory must contain main.py or Main.cs.
func FindAlgorithmFile(projectPath string) (string, error) {
	info, err := os.Stat(projectPath)
	if err != nil {
		return "", lerrors.New(lerrors.CategoryProject, "project",
			fmt.Sprintf("project path %s does not exist", projectPath))
	}
	if !info.IsDir() {
		return projectPath, nil
	}

	for _, name := range algorithmFileNames {
		candidate := filepath.Join(projectPath, name)
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			return candidate, nil
		}
	}
	return "", lerrors.New(lerrors.CategoryProject, "project",
		fmt.Sprintf("%s does not contain a main.py or Main.cs", projectPath))
}

// DefaultOutputDir returns the timestamped directory live results are stored
// in when --output is not given.
func DefaultOutputDir(algorithmFile string, now time.Time) string {
	return filepath.Join(filepath.Dir(algorithmFile), "live", now.Format("2006-01-02_15-04-05"))
}
