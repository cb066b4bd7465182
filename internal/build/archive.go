package build

import (
	"archive/zip"
	"io"
	"os"
	"path"
	"path/filepath"
)

// Archive writes the platform directory srcDir to the zip file dest.
// Entries are prefixed with the base name of srcDir so the layout paths
// of the manifest resolve inside the archive.
func Archive(srcDir, dest string) error {
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	if err := zipDir(f, srcDir, filepath.Base(srcDir)); err != nil {
		f.Close()
		os.Remove(dest)
		return err
	}
	return f.Close()
}

// zipDir writes the contents of srcDir to a zip archive on w.
func zipDir(w io.Writer, srcDir, prefix string) error {
	zw := zip.NewWriter(w)

	err := filepath.Walk(srcDir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(srcDir, p)
		if err != nil {
			return err
		}
		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		header.Name = path.Join(prefix, filepath.ToSlash(rel))
		header.Method = zip.Deflate

		writer, err := zw.CreateHeader(header)
		if err != nil {
			return err
		}
		if info.Mode()&os.ModeSymlink != 0 {
			link, err := os.Readlink(p)
			if err != nil {
				return err
			}
			_, err = io.WriteString(writer, link)
			return err
		}
		file, err := os.Open(p)
		if err != nil {
			return err
		}
		defer file.Close()
		_, err = io.Copy(writer, file)
		return err
	})
	if err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}
