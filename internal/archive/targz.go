package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cback/internal/backup"
)

// TarGzArchiver writes gzip-compressed tar archives in-process. Entry names
// are the paths as selected (root-relative when a source root is set);
// content is read from root+path on disk.
type TarGzArchiver struct {
	root string
}

// NewTarGzArchiver creates an archiver. root may be empty, in which case
// selected paths are opened as given.
func NewTarGzArchiver(root string) *TarGzArchiver {
	return &TarGzArchiver{root: root}
}

// Archive writes destination as a tar.gz containing exactly the given files.
// On failure the partially written destination is removed.
func (a *TarGzArchiver) Archive(destination string, files []string) error {
	out, err := os.Create(destination)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}

	if err := a.pack(out, files); err != nil {
		out.Close()
		os.Remove(destination)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(destination)
		return fmt.Errorf("closing archive: %w", err)
	}
	return nil
}

func (a *TarGzArchiver) pack(w io.Writer, files []string) error {
	gw := gzip.NewWriter(w)
	tw := tar.NewWriter(gw)

	for _, rel := range files {
		if err := a.addFile(tw, rel); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("finalizing tar stream: %w", err)
	}
	if err := gw.Close(); err != nil {
		return fmt.Errorf("finalizing gzip stream: %w", err)
	}
	return nil
}

func (a *TarGzArchiver) addFile(tw *tar.Writer, rel string) error {
	abs := rel
	if a.root != "" {
		abs = filepath.Join(a.root, rel)
	}

	f, err := os.Open(abs)
	if err != nil {
		return fmt.Errorf("open %s: %w", rel, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", rel, err)
	}

	hdr := &tar.Header{
		Name:    filepath.ToSlash(rel),
		Mode:    int64(info.Mode().Perm()),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("write header %s: %w", rel, err)
	}
	if _, err := io.Copy(tw, f); err != nil {
		return fmt.Errorf("write body %s: %w", rel, err)
	}
	return nil
}

// Describe returns the would-be invocation for dry runs.
func (a *TarGzArchiver) Describe(destination string, files []string) string {
	return fmt.Sprintf("write tar.gz archive %s (%d files)", destination, len(files))
}

// Compile-time check that TarGzArchiver implements backup.Archiver
var _ backup.Archiver = (*TarGzArchiver)(nil)
