package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"pick3d/internal/config"
	"pick3d/internal/viewer"
)

func main() {
	// Deployed builds resolve the config and mesh paths next to the
	// binary. "go run" binaries live in a temp dir, leave those alone.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	path := "viewer_config.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Printf("Config %s unreadable, using defaults: %v", path, err)
	}

	viewer.New(cfg, path).Run()
}
