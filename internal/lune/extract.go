package lune

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/juju/errors"
	"github.com/klauspost/compress/zip"
)

// ExtractZip unpacks archive into destDir and returns the extracted file
// paths. Entries that would land outside destDir are rejected.
func ExtractZip(archive, destDir string) ([]string, error) {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return nil, errors.Annotatef(err, "opening archive %s", archive)
	}
	defer r.Close()

	root, err := filepath.Abs(destDir)
	if err != nil {
		return nil, errors.Trace(err)
	}

	var extracted []string
	for _, f := range r.File {
		target, err := safeJoin(root, f.Name)
		if err != nil {
			return extracted, err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return extracted, errors.Annotatef(err, "creating %s", target)
			}
			continue
		}

		if err := extractFile(f, target); err != nil {
			return extracted, err
		}
		extracted = append(extracted, target)
	}

	return extracted, nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Annotatef(err, "creating %s", filepath.Dir(target))
	}

	src, err := f.Open()
	if err != nil {
		return errors.Annotatef(err, "reading %s from archive", f.Name)
	}
	defer src.Close()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0644
	}
	dst, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return errors.Annotatef(err, "creating %s", target)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return errors.Annotatef(err, "extracting %s", f.Name)
	}
	return errors.Trace(dst.Close())
}

// safeJoin joins name onto root and fails if the result escapes root
func safeJoin(root, name string) (string, error) {
	target := filepath.Join(root, filepath.FromSlash(name))
	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return "", errors.NotValidf("archive entry %q outside %s", name, root)
	}
	return target, nil
}
