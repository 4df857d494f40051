package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type FileInfo struct {
	Path  string
	Rel   string // path relative to the scanned root, without extension
	Mtime int64
	Size  int64
}

// ScanRoot finds chat exports (*.txt) under root. A root that is itself a
// file is returned as the only result. A missing root yields no files.
func ScanRoot(root string) ([]FileInfo, error) {
	if root == "" {
		return nil, nil
	}

	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []FileInfo{fileInfo(root, filepath.Base(root), info)}, nil
	}

	var files []FileInfo
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable dirs
		}
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !isChatExport(path) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = filepath.Base(path)
		}
		files = append(files, fileInfo(path, rel, info))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Rel < files[j].Rel })
	return files, nil
}

func fileInfo(path, rel string, info os.FileInfo) FileInfo {
	return FileInfo{
		Path:  path,
		Rel:   strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel)),
		Mtime: info.ModTime().Unix(),
		Size:  info.Size(),
	}
}

func isChatExport(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".txt")
}
