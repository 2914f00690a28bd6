package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Envelope carries a record with its type for decoding.
type Envelope struct {
	Type RecordType      `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Store appends records to a JSONL file.
type Store struct {
	file *os.File
}

// NewStore opens or creates the journal at path.
func NewStore(path string) (*Store, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal file: %w", err)
	}
	return &Store{file: file}, nil
}

// Append writes one record and syncs.
func (s *Store) Append(r Record) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", r.Type(), err)
	}
	line, err := json.Marshal(Envelope{Type: r.Type(), Data: data})
	if err != nil {
		return fmt.Errorf("failed to encode envelope: %w", err)
	}
	if _, err := s.file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to write journal: %w", err)
	}
	return s.file.Sync()
}

// Load reads every record from the start of the file.
func (s *Store) Load() ([]Record, error) {
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return Decode(s.file)
}

// Close releases the file.
func (s *Store) Close() error {
	return s.file.Close()
}

// Decode parses JSONL records from r.
func Decode(r io.Reader) ([]Record, error) {
	var out []Record
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for line := 1; scanner.Scan(); line++ {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var env Envelope
		if err := json.Unmarshal(scanner.Bytes(), &env); err != nil {
			return nil, fmt.Errorf("line %d: failed to decode envelope: %w", line, err)
		}

		var rec Record
		switch env.Type {
		case TypeCombatStarted:
			rec = &CombatStarted{}
		case TypeActionResolved:
			rec = &ActionResolved{}
		case TypeRecallResolved:
			rec = &RecallResolved{}
		case TypeActionRejected:
			rec = &ActionRejected{}
		case TypeCombatEnded:
			rec = &CombatEnded{}
		default:
			return nil, fmt.Errorf("line %d: unknown record type %q", line, env.Type)
		}
		if err := json.Unmarshal(env.Data, rec); err != nil {
			return nil, fmt.Errorf("line %d: failed to decode %s: %w", line, env.Type, err)
		}
		out = append(out, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
