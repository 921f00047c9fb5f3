package notes

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"

	"github.com/kakascoaching/site/internal/content"
)

// errNoPapers reports that none of a class's papers exist on disk.
var errNoPapers = errors.New("no papers found")

// classFiles returns the asset-relative papers of a class present in assets.
func classFiles(assets fs.FS, subject, class string) []string {
	if assets == nil {
		return nil
	}
	var out []string
	for n := 1; n <= content.PapersPerClass; n++ {
		name := content.PaperFile(subject, class, n)
		if info, err := fs.Stat(assets, name); err == nil && !info.IsDir() {
			out = append(out, name)
		}
	}
	return out
}

// writeArchive streams files from assets into a zip written to w.
func writeArchive(w io.Writer, assets fs.FS, files []string) error {
	if len(files) == 0 {
		return errNoPapers
	}
	archive := zip.NewWriter(w)
	for _, name := range files {
		if err := addFile(archive, assets, name); err != nil {
			_ = archive.Close()
			return err
		}
	}
	if err := archive.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}
	return nil
}

func addFile(archive *zip.Writer, assets fs.FS, name string) error {
	src, err := assets.Open(name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer src.Close()

	// Papers are already-compressed JPEGs.
	dst, err := archive.CreateHeader(&zip.FileHeader{Name: path.Base(name), Method: zip.Store})
	if err != nil {
		return fmt.Errorf("add %s: %w", name, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copy %s: %w", name, err)
	}
	return nil
}

func archiveName(subject, class string) string {
	return fmt.Sprintf("%s-class-%s-papers.zip", subject, class)
}
