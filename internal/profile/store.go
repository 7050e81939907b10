package profile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// Profile is the locally persisted guest identity. The server never sees
// the guest ID; it only receives the display name and interests with each
// pairing request.
type Profile struct {
	GuestID   string    `msgpack:"guest_id"`
	Name      string    `msgpack:"name"`
	Interests []string  `msgpack:"interests"`
	CreatedAt time.Time `msgpack:"created_at"`
}

// Store persists the guest profile and chat transcripts under a single
// directory, one msgpack file each.
type Store struct {
	dir string
}

// NewStore opens (creating if needed) the store under the user config
// directory.
func NewStore() (*Store, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("locate config dir: %w", err)
	}
	return NewStoreAt(filepath.Join(base, "driftchat"))
}

// NewStoreAt opens a store rooted at an explicit directory.
func NewStoreAt(dir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, "transcripts"), 0o700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// LoadProfile returns the saved guest profile, or creates one with a fresh
// guest ID and a random display name on first run.
func (s *Store) LoadProfile() (*Profile, error) {
	data, err := os.ReadFile(s.profilePath())
	if errors.Is(err, fs.ErrNotExist) {
		p := &Profile{
			GuestID:   uuid.NewString(),
			Name:      RandomName(),
			CreatedAt: time.Now(),
		}
		if err := s.SaveProfile(p); err != nil {
			return nil, err
		}
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	var p Profile
	if err := msgpack.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}

// SaveProfile writes the guest profile back to disk.
func (s *Store) SaveProfile(p *Profile) error {
	data, err := msgpack.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := os.WriteFile(s.profilePath(), data, 0o600); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

func (s *Store) profilePath() string {
	return filepath.Join(s.dir, "profile.msgpack")
}

func (s *Store) transcriptPath(id string) string {
	return filepath.Join(s.dir, "transcripts", id+".msgpack")
}
