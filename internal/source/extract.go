package source

import (
	"archive/zip"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/hlop3z/sdelite/internal/progress"
	"github.com/hlop3z/sdelite/internal/sderr"
)

// Extract writes the .jsonl entries of the archive at zipPath into dest,
// flattened to their base names. Other entries are skipped. It returns the
// number of files written.
func Extract(zipPath, dest string, obs progress.Observer) (int, error) {
	obs = progress.OrSilent(obs)

	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return 0, sderr.Wrap(sderr.ErrExtract, err, "failed to open archive").WithFile(zipPath, 0)
	}
	defer r.Close()

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return 0, sderr.Wrap(sderr.ErrExtract, err, "failed to create destination directory").WithFile(dest, 0)
	}

	total := uint64(len(r.File))
	var written int
	var size uint64
	for i, f := range r.File {
		obs.SetProgress(uint64(i+1), total, f.Name)

		name, ok := entryName(f)
		if !ok {
			continue
		}
		n, err := extractFile(f, filepath.Join(dest, name))
		if err != nil {
			return written, err
		}
		written++
		size += n
	}

	progress.Logf(obs, "Extracted %d files (%s)", written, humanize.Bytes(size))
	return written, nil
}

// entryName returns the flattened file name for a .jsonl entry. Directory
// components, including any "..", are discarded.
func entryName(f *zip.File) (string, bool) {
	if f.FileInfo().IsDir() {
		return "", false
	}
	name := path.Base(strings.ReplaceAll(f.Name, `\`, "/"))
	if !strings.HasSuffix(name, ".jsonl") || name == ".jsonl" {
		return "", false
	}
	return name, true
}

func extractFile(f *zip.File, target string) (uint64, error) {
	rc, err := f.Open()
	if err != nil {
		return 0, sderr.Wrap(sderr.ErrExtract, err, "failed to read archive entry").With("entry", f.Name)
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return 0, sderr.Wrap(sderr.ErrExtract, err, "failed to create file").WithFile(target, 0)
	}
	n, copyErr := io.Copy(out, rc)
	closeErr := out.Close()
	if copyErr != nil {
		return 0, sderr.Wrap(sderr.ErrExtract, copyErr, "failed to extract entry").With("entry", f.Name)
	}
	if closeErr != nil {
		return 0, sderr.Wrap(sderr.ErrExtract, closeErr, "failed to write file").WithFile(target, 0)
	}
	return uint64(n), nil
}
