// Package manifest loads route declarations from HCL, YAML or JSON files.
//
// A manifest path may name a single file or a directory; directories are
// walked recursively and every supported file is loaded in lexical order.
// Route names must be unique across everything loaded together.
package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/footprint-tools/routeshell/internal/log"
	"github.com/footprint-tools/routeshell/internal/route"
)

// ErrUnsupportedFormat is returned for files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported manifest format")

// Extensions lists the file extensions Load understands.
var Extensions = []string{".hcl", ".yaml", ".yml", ".json"}

// Load reads declarations from a file or directory.
func Load(path string) ([]route.Declaration, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat manifest: %w", err)
	}
	if info.IsDir() {
		return LoadDir(path)
	}

	decls, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := checkUnique(decls); err != nil {
		return nil, err
	}
	return decls, nil
}

// LoadFile reads one manifest file, picking the decoder by extension.
func LoadFile(path string) ([]route.Declaration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	log.Debug("manifest: loading %s", path)

	var decls []route.Declaration
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		decls, err = decodeHCL(path, data)
	case ".yaml", ".yml":
		decls, err = decodeYAML(data)
	case ".json":
		decls, err = decodeJSON(data)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	for i, d := range decls {
		if strings.TrimSpace(d.Name) == "" {
			return nil, fmt.Errorf("%s: route #%d has no name", path, i+1)
		}
	}
	return decls, nil
}

// LoadDir loads every supported file under dir.
func LoadDir(dir string) ([]route.Declaration, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && supported(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(files)

	if len(files) == 0 {
		log.Warn("manifest: no route files found in %s", dir)
	}

	var all []route.Declaration
	for _, file := range files {
		decls, err := LoadFile(file)
		if err != nil {
			return nil, err
		}
		all = append(all, decls...)
	}

	if err := checkUnique(all); err != nil {
		return nil, err
	}
	return all, nil
}

func supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func checkUnique(decls []route.Declaration) error {
	seen := make(map[string]struct{}, len(decls))
	for _, d := range decls {
		if _, dup := seen[d.Name]; dup {
			return fmt.Errorf("duplicate route %q", d.Name)
		}
		seen[d.Name] = struct{}{}
	}
	return nil
}
