// Package file provides repositories persisting the whole record set
// as one JSON document. Writes go to a temporary file first and
// replace the document with a rename, so a crashed write leaves the
// prior state intact and Update stays atomic for readers.
package file

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sync"

	"github.com/PZavyalov/bank-account-service/internal/domain/entities"
	"github.com/PZavyalov/bank-account-service/internal/domain/entities/user"
)

// document is the on-disk layout. Accounts are keyed uniquely by
// number, users by userName.
type document struct {
	Accounts []entities.Account `json:"accounts"`
	Users    []user.BankUser    `json:"users"`
}

// Store serializes access to the JSON document. A single mutex covers
// every load-mutate-save sequence.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// load reads the whole document. A missing file is an empty store.
func (s *Store) load() (*document, error) {
	doc := new(document)

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return doc, nil
		}
		return nil, err
	}
	defer f.Close()

	if err = json.NewDecoder(f).Decode(doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// save writes the whole document atomically: temporary file first,
// then rename over the previous version.
func (s *Store) save(doc *document) error {
	tmp := s.path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err = enc.Encode(doc); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}
