package manuscript

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// MetaFile is the per-work metadata file.
const MetaFile = "meta.yaml"

// Meta is a work directory's bookkeeping record.
type Meta struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Status   string `yaml:"status"`
	Created  string `yaml:"created"`
	Modified string `yaml:"modified"`
}

func nowISO() string { return time.Now().UTC().Format(time.RFC3339) }

// EnsureMeta creates or refreshes a work's meta.yaml. An existing created
// timestamp is preserved; modified is always bumped. Title and status
// override the current values when non-empty.
func EnsureMeta(workDir, title, status string) (*Meta, error) {
	meta := &Meta{
		ID:      filepath.Base(workDir),
		Title:   title,
		Status:  status,
		Created: nowISO(),
	}
	if meta.Title == "" {
		meta.Title = meta.ID
	}
	if meta.Status == "" {
		meta.Status = "draft"
	}

	if existing, err := readMeta(workDir); err == nil {
		if existing.Created != "" {
			meta.Created = existing.Created
		}
		if title == "" && existing.Title != "" {
			meta.Title = existing.Title
		}
		if status == "" && existing.Status != "" {
			meta.Status = existing.Status
		}
	}

	meta.Modified = nowISO()
	if err := writeMeta(workDir, meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// TouchModified bumps a work's modified timestamp, creating meta.yaml with
// defaults if it is missing.
func TouchModified(workDir string) (*Meta, error) {
	meta, err := readMeta(workDir)
	if err != nil {
		return EnsureMeta(workDir, "", "")
	}
	meta.Modified = nowISO()
	if err := writeMeta(workDir, meta); err != nil {
		return nil, err
	}
	return meta, nil
}

func readMeta(workDir string) (*Meta, error) {
	data, err := os.ReadFile(filepath.Join(workDir, MetaFile))
	if err != nil {
		return nil, err
	}
	var meta Meta
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// writeMeta writes through a temp file and renames so a crash never leaves
// a half-written meta.yaml.
func writeMeta(workDir string, meta *Meta) error {
	data, err := yaml.Marshal(meta)
	if err != nil {
		return err
	}
	path := filepath.Join(workDir, MetaFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
