package cookies

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/cookierelay/cookierelay-go/internal/cborenc"
)

// SnapshotVersion is the current version of the snapshot format.
const SnapshotVersion = 1

// Snapshot is a saved cookie jar.
type Snapshot struct {
	// Version is the snapshot format version.
	Version int `cbor:"1,keyasint"`

	// SavedAt is when the snapshot was taken.
	SavedAt time.Time `cbor:"2,keyasint"`

	// Cookies are the saved cookies.
	Cookies []Cookie `cbor:"3,keyasint"`
}

// SaveSnapshot writes cookies to w as a CBOR snapshot.
func SaveSnapshot(w io.Writer, cookies []Cookie) error {
	snap := Snapshot{
		Version: SnapshotVersion,
		SavedAt: time.Now(),
		Cookies: cookies,
	}
	return cborenc.EncMode.NewEncoder(w).Encode(snap)
}

// LoadSnapshot reads a CBOR snapshot from r.
func LoadSnapshot(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := cborenc.StrictDecMode.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSnapshot, snap.Version)
	}
	return &snap, nil
}

// SaveSnapshotFile writes a snapshot to path, creating parent directories.
// The file is replaced atomically.
func SaveSnapshotFile(path string, cookies []Cookie) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := SaveSnapshot(tmp, cookies); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// LoadSnapshotFile reads a snapshot from path.
// Returns nil, nil if the file doesn't exist.
func LoadSnapshotFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadSnapshot(f)
}
