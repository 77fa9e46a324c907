// Package storage is the filesystem abstraction behind menu item image
// uploads.
//
// Two drivers are available:
//   - "local": a directory on this host, served under STORAGE_URL
//   - "s3":    S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
//	disks, err := storage.NewManager(storage.OptionsFromConfig())
//	err = disks.Default().PutStream(ctx, "menu/ab12.jpg", file, "image/jpeg")
//	url := disks.Default().URL("menu/ab12.jpg")
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/thedosaspot/dosaspot/config"
)

// Disk is the driver interface. Every driver must implement it.
type Disk interface {
	// PutStream writes from r to path, creating parents as needed.
	PutStream(ctx context.Context, path string, r io.Reader, contentType string) error

	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) bool

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(ctx context.Context, path string) error

	// URL returns the public URL for path.
	URL(path string) string
}

// Options selects and configures the disks.
type Options struct {
	Default string // "local" or "s3"

	LocalRoot string
	LocalURL  string

	S3Bucket   string
	S3Region   string
	S3Key      string
	S3Secret   string
	S3Endpoint string
	S3URL      string
}

// OptionsFromConfig reads Options from the loaded configuration.
func OptionsFromConfig() Options {
	return Options{
		Default:    config.StorageDefault(),
		LocalRoot:  config.StorageLocalRoot(),
		LocalURL:   config.StorageURL(),
		S3Bucket:   config.StorageS3Bucket(),
		S3Region:   config.StorageS3Region(),
		S3Key:      config.StorageS3Key(),
		S3Secret:   config.StorageS3Secret(),
		S3Endpoint: config.StorageS3Endpoint(),
		S3URL:      config.StorageS3URL(),
	}
}

// Manager holds the configured disks.
type Manager struct {
	disks       map[string]Disk
	defaultName string
}

// NewManager boots the local disk always and the s3 disk when a bucket is
// configured. Choosing s3 as default without a bucket is an error.
func NewManager(opts Options) (*Manager, error) {
	m := &Manager{disks: map[string]Disk{}, defaultName: opts.Default}
	if m.defaultName == "" {
		m.defaultName = "local"
	}

	local, err := newLocalDisk(opts.LocalRoot, opts.LocalURL)
	if err != nil {
		return nil, err
	}
	m.disks["local"] = local

	if opts.S3Bucket != "" {
		d, err := newS3Disk(opts)
		if err != nil {
			return nil, err
		}
		m.disks["s3"] = d
	}

	if _, ok := m.disks[m.defaultName]; !ok {
		return nil, fmt.Errorf("storage: default disk %q is not configured", m.defaultName)
	}
	return m, nil
}

// Register plugs in a custom Disk, e.g. an in-memory one in tests.
func (m *Manager) Register(name string, d Disk) {
	m.disks[name] = d
}

// Use returns the named disk, or nil when it is not configured.
func (m *Manager) Use(name string) Disk { return m.disks[name] }

// Default returns the STORAGE_DISK disk.
func (m *Manager) Default() Disk { return m.disks[m.defaultName] }

// DefaultName reports which disk Default returns.
func (m *Manager) DefaultName() string { return m.defaultName }

// Local returns the local disk, used to serve uploaded files over HTTP.
func (m *Manager) Local() *LocalDisk {
	d, _ := m.disks["local"].(*LocalDisk)
	return d
}

// ObjectName builds a collision-free object path under dir that keeps the
// lowercase extension of the uploaded file name: "menu/<uuid>.jpg".
func ObjectName(dir, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join(dir, uuid.NewString()+ext)
}
