package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// Line is one chat line as the local user saw it.
type Line struct {
	At     time.Time `msgpack:"at"`
	Sender string    `msgpack:"sender"`
	Text   string    `msgpack:"text"`
	Own    bool      `msgpack:"own"`
}

// Transcript is a locally retained record of one finished conversation.
// This exists purely for the user's benefit; the server holds no history
// and a lost pairing cannot be resumed from it.
type Transcript struct {
	ID              string    `msgpack:"id"`
	StartedAt       time.Time `msgpack:"started_at"`
	PartnerName     string    `msgpack:"partner_name"`
	MutualInterests []string  `msgpack:"mutual_interests"`
	Lines           []Line    `msgpack:"lines"`
}

// NewTranscript starts an empty transcript for a freshly formed pairing.
func NewTranscript(partnerName string, mutualInterests []string) *Transcript {
	return &Transcript{
		ID:              uuid.NewString(),
		StartedAt:       time.Now(),
		PartnerName:     partnerName,
		MutualInterests: mutualInterests,
	}
}

// Append records one chat line.
func (t *Transcript) Append(sender, text string, own bool) {
	t.Lines = append(t.Lines, Line{At: time.Now(), Sender: sender, Text: text, Own: own})
}

// SaveTranscript persists a transcript. Empty transcripts are skipped.
func (s *Store) SaveTranscript(t *Transcript) error {
	if len(t.Lines) == 0 {
		return nil
	}
	data, err := msgpack.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	if err := os.WriteFile(s.transcriptPath(t.ID), data, 0o600); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}

// LoadTranscript reads one transcript by ID.
func (s *Store) LoadTranscript(id string) (*Transcript, error) {
	data, err := os.ReadFile(s.transcriptPath(id))
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	var t Transcript
	if err := msgpack.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	return &t, nil
}

// ListTranscripts returns all saved transcripts, newest first.
func (s *Store) ListTranscripts() ([]*Transcript, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, "transcripts"))
	if err != nil {
		return nil, fmt.Errorf("list transcripts: %w", err)
	}

	var out []*Transcript
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".msgpack") {
			continue
		}
		t, err := s.LoadTranscript(strings.TrimSuffix(e.Name(), ".msgpack"))
		if err != nil {
			// A corrupt file should not hide the rest of the history.
			continue
		}
		out = append(out, t)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	return out, nil
}
