package source

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cbergoon/merkletree"
	"gopkg.in/yaml.v3"

	"github.com/hlop3z/sdelite/internal/sderr"
)

// ManifestFile is written into every extracted build directory.
const ManifestFile = ".manifest.yaml"

// Manifest fingerprints the JSONL files of one build: a hash per file and a
// merkle root over all of them.
type Manifest struct {
	Build uint64            `yaml:"build"`
	Root  string            `yaml:"root"`
	Files map[string]string `yaml:"files"`
}

// fileContent implements merkletree.Content for one file hash.
type fileContent struct {
	name string
	hash string
}

func (f fileContent) CalculateHash() ([]byte, error) {
	h := sha256.Sum256([]byte(f.name + ":" + f.hash))
	return h[:], nil
}

func (f fileContent) Equals(other merkletree.Content) (bool, error) {
	o, ok := other.(fileContent)
	if !ok {
		return false, nil
	}
	return f.name == o.name && f.hash == o.hash, nil
}

// ComputeManifest hashes every .jsonl file in dir, in name order.
func ComputeManifest(dir string) (*Manifest, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, sderr.Wrap(sderr.ErrCache, err, "failed to list build directory").WithFile(dir, 0)
	}

	m := &Manifest{Files: make(map[string]string)}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".jsonl") {
			continue
		}
		hash, err := hashFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		m.Files[e.Name()] = hash
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return nil, sderr.New(sderr.ErrCache, "build directory has no JSONL files").WithFile(dir, 0)
	}
	sort.Strings(names)

	contents := make([]merkletree.Content, 0, len(names))
	for _, name := range names {
		contents = append(contents, fileContent{name: name, hash: m.Files[name]})
	}
	tree, err := merkletree.NewTree(contents)
	if err != nil {
		return nil, sderr.Wrap(sderr.ErrCache, err, "failed to build merkle tree")
	}
	m.Root = hex.EncodeToString(tree.MerkleRoot())
	return m, nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", sderr.Wrap(sderr.ErrCache, err, "failed to open cached file").WithFile(path, 0)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", sderr.Wrap(sderr.ErrCache, err, "failed to hash cached file").WithFile(path, 0)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ReadManifest loads dir's manifest.
func ReadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, sderr.Wrap(sderr.ErrCache, err, "failed to read manifest").WithFile(path, 0)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, sderr.Wrap(sderr.ErrCache, err, "failed to parse manifest").WithFile(path, 0)
	}
	if m.Root == "" {
		return nil, sderr.New(sderr.ErrCache, "manifest has no root").WithFile(path, 0)
	}
	return &m, nil
}

// Write stores the manifest in dir.
func (m *Manifest) Write(dir string) error {
	path := filepath.Join(dir, ManifestFile)
	data, err := yaml.Marshal(m)
	if err != nil {
		return sderr.Wrap(sderr.ErrInternal, err, "failed to encode manifest")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return sderr.Wrap(sderr.ErrCache, err, "failed to write manifest").WithFile(path, 0)
	}
	return nil
}

// Diff lists the files that were added, removed or changed between m and other.
func (m *Manifest) Diff(other *Manifest) []string {
	var changed []string
	for name, hash := range m.Files {
		if other.Files[name] != hash {
			changed = append(changed, name)
		}
	}
	for name := range other.Files {
		if _, ok := m.Files[name]; !ok {
			changed = append(changed, name)
		}
	}
	sort.Strings(changed)
	return changed
}
