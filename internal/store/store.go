// Package store persists the ledger's collections as human-readable JSON
// files. Callers always load, mutate and save a whole collection; there is
// no querying, indexing or cross-process locking. Two processes pointed at
// the same directory will race and the last writer wins.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"khaata/internal/logger"
	"khaata/pkg/models"
)

// Store reads and writes the three ledger collections under a data
// directory.
type Store struct {
	dataDir      string
	clientsFile  string
	invoicesFile string
	profileFile  string
	log          zerolog.Logger
}

// New creates a store rooted at dataDir using the given collection file
// names.
func New(dataDir, clientsFile, invoicesFile, profileFile string) *Store {
	return &Store{
		dataDir:      dataDir,
		clientsFile:  clientsFile,
		invoicesFile: invoicesFile,
		profileFile:  profileFile,
		log:          logger.WithComponent("store"),
	}
}

// LoadClients returns the client collection. A missing file yields an empty
// collection and no error. A malformed file yields an empty collection AND
// a StorageError wrapping ErrCorruptCollection so the caller can warn.
func (s *Store) LoadClients() ([]models.Client, error) {
	return loadJSON[[]models.Client](s, "LoadClients", s.clientsFile, nil)
}

// SaveClients overwrites the client collection.
func (s *Store) SaveClients(clients []models.Client) error {
	return saveJSON(s, "SaveClients", s.clientsFile, clients)
}

// LoadInvoices returns the invoice collection, with the same missing-file
// and corrupt-file behavior as LoadClients.
func (s *Store) LoadInvoices() ([]models.Invoice, error) {
	return loadJSON[[]models.Invoice](s, "LoadInvoices", s.invoicesFile, nil)
}

// SaveInvoices overwrites the invoice collection.
func (s *Store) SaveInvoices(invoices []models.Invoice) error {
	return saveJSON(s, "SaveInvoices", s.invoicesFile, invoices)
}

// LoadProfile returns the organization profile, falling back to
// models.DefaultProfile when the file is missing or corrupt.
func (s *Store) LoadProfile() (models.Profile, error) {
	return loadJSON(s, "LoadProfile", s.profileFile, models.DefaultProfile())
}

// SaveProfile overwrites the organization profile.
func (s *Store) SaveProfile(p models.Profile) error {
	return saveJSON(s, "SaveProfile", s.profileFile, p)
}

func loadJSON[T any](s *Store, op, name string, def T) (T, error) {
	path := filepath.Join(s.dataDir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return def, nil
		}
		return def, &StorageError{Op: op, Path: path, Err: err}
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		s.log.Warn().
			Str("path", path).
			Err(err).
			Msg("Collection file is unreadable, using defaults")
		return def, &StorageError{Op: op, Path: path, Err: fmt.Errorf("%w: %v", ErrCorruptCollection, err)}
	}
	return out, nil
}

// saveJSON writes the collection to a temp file in the same directory and
// renames it into place, so a crash mid-write never leaves a torn file.
func saveJSON(s *Store, op, name string, v any) error {
	path := filepath.Join(s.dataDir, name)

	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return &StorageError{Op: op, Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(s.dataDir, name+".tmp-*")
	if err != nil {
		return &StorageError{Op: op, Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &StorageError{Op: op, Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: op, Path: path, Err: err}
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: op, Path: path, Err: err}
	}
	return nil
}
