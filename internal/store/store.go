package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/talentscout/screener/internal/candidate"
	"github.com/talentscout/screener/internal/interview"
)

const DefaultDir = "summaries"

// Record is the durable outcome of one concluded screening session. Each
// record is written exactly once, to its own file, so concurrent conclusions
// of different sessions never interleave.
type Record struct {
	ID        string                      `json:"id"`
	Timestamp time.Time                   `json:"timestamp"`
	Candidate candidate.Profile           `json:"candidate_details"`
	Summary   string                      `json:"ai_summary"`
	Answers   map[string]interview.Answer `json:"technical_responses"`
}

// NewRecord builds the record for a concluded session.
func NewRecord(s *interview.Session) *Record {
	return &Record{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Candidate: s.Candidate,
		Summary:   s.Summary,
		Answers:   s.Answers,
	}
}

// Store writes screening records as individual JSON files under a directory.
type Store struct {
	dir string
}

func New(dir string) *Store {
	if strings.TrimSpace(dir) == "" {
		dir = DefaultDir
	}
	return &Store{dir: dir}
}

// Save persists the record and returns the path it was written to.
func (s *Store) Save(record *Record) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create summaries directory %s: %w", s.dir, err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal screening record: %w", err)
	}

	path := filepath.Join(s.dir, s.filename(record))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write screening record %s: %w", path, err)
	}

	return path, nil
}

// Load reads a single record from the given path.
func (s *Store) Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read screening record %s: %w", path, err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parse screening record %s: %w", path, err)
	}

	return &record, nil
}

// List loads every stored record, newest first. Files that fail to parse are
// skipped so one corrupt record does not hide the rest.
func (s *Store) List() ([]*Record, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read summaries directory %s: %w", s.dir, err)
	}

	records := make([]*Record, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		record, err := s.Load(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}

		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})

	return records, nil
}

func (s *Store) filename(record *Record) string {
	name := strings.TrimSpace(record.Candidate.FullName)
	if name == "" {
		name = "candidate"
	}
	name = strings.ReplaceAll(name, " ", "_")

	id := record.ID
	if len(id) > 8 {
		id = id[:8]
	}

	return fmt.Sprintf("%s_%s_%s.json", record.Timestamp.Format("20060102_150405"), name, id)
}
