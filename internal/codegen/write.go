package codegen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteArtifacts replaces the named files in dir. Every artifact is first
// written and synced to a temporary file in dir; renames only start once all
// temporary files exist. Existing files are moved aside before they are
// replaced. If any step fails the temporaries are removed and every file
// already replaced is restored, so dir holds either the old set or the new.
func WriteArtifacts(dir string, arts []Artifact) (err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	temps := make([]string, 0, len(arts))
	defer func() {
		if err != nil {
			for _, tmp := range temps {
				os.Remove(tmp)
			}
		}
	}()

	for _, a := range arts {
		tmp, err := writeTemp(dir, a)
		if tmp != "" {
			temps = append(temps, tmp)
		}
		if err != nil {
			return fmt.Errorf("write %s: %w", a.Name, err)
		}
	}

	var done []replaced
	defer func() {
		if err != nil {
			rollback(done)
			return
		}
		for _, r := range done {
			if r.backup != "" {
				os.Remove(r.backup)
			}
		}
	}()

	for i, a := range arts {
		r, err := replace(temps[i], filepath.Join(dir, a.Name))
		if err != nil {
			return fmt.Errorf("replace %s: %w", a.Name, err)
		}
		done = append(done, r)
	}
	return nil
}

// replaced records one renamed artifact. backup is empty when the target did
// not exist before.
type replaced struct {
	target string
	backup string
}

// replace moves an existing regular file at target aside and renames tmp
// onto it. On failure the old file is put back.
func replace(tmp, target string) (replaced, error) {
	r := replaced{target: target}
	if info, err := os.Lstat(target); err == nil && info.Mode().IsRegular() {
		r.backup = strings.TrimSuffix(tmp, ".tmp") + ".bak"
		if err := os.Rename(target, r.backup); err != nil {
			return r, err
		}
	}
	if err := os.Rename(tmp, target); err != nil {
		if r.backup != "" {
			os.Rename(r.backup, target)
		}
		return r, err
	}
	return r, nil
}

func rollback(done []replaced) {
	for i := len(done) - 1; i >= 0; i-- {
		r := done[i]
		if r.backup != "" {
			os.Rename(r.backup, r.target)
		} else {
			os.Remove(r.target)
		}
	}
}

func writeTemp(dir string, a Artifact) (string, error) {
	f, err := os.CreateTemp(dir, "."+a.Name+".*.tmp")
	if err != nil {
		return "", err
	}
	name := f.Name()

	if _, err := f.Write(a.Content); err != nil {
		f.Close()
		return name, err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return name, err
	}
	if err := f.Close(); err != nil {
		return name, err
	}
	return name, os.Chmod(name, 0o644)
}
