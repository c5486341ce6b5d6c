package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/Eswaramoorthy-2004/my-ecom-store/config"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/logger"
)

// Manager holds the configured disks.
type Manager struct {
	mu          sync.RWMutex
	disks       map[string]Disk
	defaultDisk string
}

// NewManager returns a Manager whose default disk is name.
func NewManager(name string) *Manager {
	return &Manager{disks: map[string]Disk{}, defaultDisk: name}
}

// Connect boots the local disk and, when S3_BUCKET is set, the s3 disk.
// STORAGE_DISK selects the default.
func Connect(ctx context.Context) (*Manager, error) {
	m := NewManager(config.StorageDefault())
	m.Register("local", NewLocalDisk(config.StorageLocalRoot(), config.StorageURL()))

	if config.StorageS3Bucket() != "" {
		d, err := NewS3Disk(ctx, S3Options{
			Bucket:   config.StorageS3Bucket(),
			Region:   config.StorageS3Region(),
			Key:      config.StorageS3Key(),
			Secret:   config.StorageS3Secret(),
			Endpoint: config.StorageS3Endpoint(),
			BaseURL:  config.StorageS3URL(),
		})
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			m.Register("s3", d)
		}
	}

	if _, ok := m.Lookup(m.defaultDisk); !ok {
		return nil, fmt.Errorf("storage: default disk %q is not configured", m.defaultDisk)
	}
	return m, nil
}

// Register plugs in a disk under name.
func (m *Manager) Register(name string, d Disk) {
	m.mu.Lock()
	m.disks[name] = d
	m.mu.Unlock()
}

// Lookup returns the named disk.
func (m *Manager) Lookup(name string) (Disk, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.disks[name]
	return d, ok
}

// Default returns the STORAGE_DISK disk.
func (m *Manager) Default() Disk {
	d, ok := m.Lookup(m.defaultDisk)
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", m.defaultDisk))
	}
	return d
}

// Local returns the local disk, if registered.
func (m *Manager) Local() (*LocalDisk, bool) {
	d, ok := m.Lookup("local")
	if !ok {
		return nil, false
	}
	ld, ok := d.(*LocalDisk)
	return ld, ok
}
