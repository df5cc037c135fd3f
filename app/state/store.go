// Package state keeps the rolling article history between runs.
//
// The store file is owned by one process for the duration of a run. Runs are
// expected to be serialized by an external scheduler (cron, CI schedule), so
// the file is neither locked nor merged with concurrent writers.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/lysyi3m/devto-feed/app/files"
)

var (
	ErrStoreRead    = errors.New("failed to read state file")
	ErrStoreCorrupt = errors.New("state file is corrupt")
	ErrStoreWrite   = errors.New("failed to write state file")
)

type Store struct {
	Items map[string]StoredArticle
}

func NewStore() *Store {
	return &Store{Items: make(map[string]StoredArticle)}
}

// Load reads the store at path. A missing file yields an empty store; a file
// that cannot be parsed is an error, never an empty store.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewStore(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreRead, err)
	}

	var file struct {
		Items *[]json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrStoreCorrupt, path, err)
	}
	if file.Items == nil {
		return nil, fmt.Errorf("%w: %s: missing items", ErrStoreCorrupt, path)
	}

	store := NewStore()
	for i, raw := range *file.Items {
		item, err := decodeItem(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: item %d: %w", ErrStoreCorrupt, path, i, err)
		}
		store.Items[item.Key] = item
	}

	return store, nil
}

// requiredFields are written for every item by Encode.
var requiredFields = []string{
	"key", "title", "public_reactions_count", "positive_reactions_count", "tag_list", "last_seen",
}

func decodeItem(raw json.RawMessage) (StoredArticle, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return StoredArticle{}, err
	}
	if fields == nil {
		return StoredArticle{}, errors.New("item is null")
	}
	for _, name := range requiredFields {
		if _, ok := fields[name]; !ok {
			return StoredArticle{}, fmt.Errorf("missing field %s", name)
		}
	}

	var item StoredArticle
	if err := json.Unmarshal(raw, &item); err != nil {
		return StoredArticle{}, err
	}
	if item.Key == "" {
		return StoredArticle{}, errors.New("empty key")
	}
	if item.LastSeen == "" {
		return StoredArticle{}, errors.New("empty last_seen")
	}
	if item.TagList == nil {
		item.TagList = []string{}
	}
	return item, nil
}

// Save writes the store sorted by key, replacing path atomically.
func (s *Store) Save(path string) error {
	data, err := s.Encode()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}

	if err := files.WriteAtomic(path, data); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}
	return nil
}

// Encode returns the persisted representation: {"items": [...]} sorted by key.
func (s *Store) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(stateFile{Items: s.Sorted()}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state: %w", err)
	}
	return append(data, '\n'), nil
}

// Sorted returns a copy of the stored articles ordered by key.
func (s *Store) Sorted() []StoredArticle {
	list := make([]StoredArticle, 0, len(s.Items))
	for _, item := range s.Items {
		list = append(list, item)
	}
	slices.SortFunc(list, func(a, b StoredArticle) int {
		return strings.Compare(a.Key, b.Key)
	})
	return list
}

func (s *Store) Len() int {
	return len(s.Items)
}
