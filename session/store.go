// Package session persists the AssetMart access/refresh token pair across
// process restarts.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/buntdb"
)

// Fixed key names, shared with every other client of the same session file.
const (
	accessTokenKey  = "accessToken"
	refreshTokenKey = "refreshToken"
)

// ErrNoToken is returned when the requested token has not been stored.
var ErrNoToken = errors.New("no token stored")

// Store is the session storage the API client reads and writes. At most one
// token pair is held at a time; writes are last-write-wins.
type Store interface {
	AccessToken() (string, error)
	RefreshToken() (string, error)
	SetTokens(access, refresh string) error
	SetAccessToken(access string) error
	Clear() error
}

// FileStore keeps the token pair in a buntdb file. Pass ":memory:" to Open
// for a throwaway store in tests.
type FileStore struct {
	db *buntdb.DB
}

var _ Store = (*FileStore)(nil)

func Open(path string) (*FileStore, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create session dir %s: %w", dir, err)
		}
	}

	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open session store %s: %w", path, err)
	}

	return &FileStore{db: db}, nil
}

func (s *FileStore) Close() error {
	return s.db.Close()
}

func (s *FileStore) AccessToken() (string, error) {
	return s.get(accessTokenKey)
}

func (s *FileStore) RefreshToken() (string, error) {
	return s.get(refreshTokenKey)
}

// SetTokens overwrites both tokens in a single transaction.
func (s *FileStore) SetTokens(access, refresh string) error {
	return s.db.Update(func(tx *buntdb.Tx) error {
		if _, _, err := tx.Set(accessTokenKey, access, nil); err != nil {
			return err
		}
		_, _, err := tx.Set(refreshTokenKey, refresh, nil)
		return err
	})
}

// SetAccessToken overwrites the access token and leaves the refresh token
// untouched.
func (s *FileStore) SetAccessToken(access string) error {
	return s.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(accessTokenKey, access, nil)
		return err
	})
}

// Clear removes both tokens. Clearing an empty store is not an error.
func (s *FileStore) Clear() error {
	return s.db.Update(func(tx *buntdb.Tx) error {
		for _, key := range []string{accessTokenKey, refreshTokenKey} {
			if _, err := tx.Delete(key); err != nil && !errors.Is(err, buntdb.ErrNotFound) {
				return err
			}
		}
		return nil
	})
}

func (s *FileStore) get(key string) (string, error) {
	var value string
	err := s.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(key)
		if err != nil {
			return err
		}
		value = v
		return nil
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", err
	}
	return value, nil
}
