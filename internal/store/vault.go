package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Fixed keys for persisted session fields. Absence of the access-token
// key is the canonical anonymous signal at process start.
var (
	bucketSession = []byte("session")

	keyAccessToken  = []byte("access_token")
	keyRefreshToken = []byte("refresh_token")
	keyProfile      = []byte("profile")
)

// Vault is the durable client-side storage for session state, backed by
// BoltDB. The session store is its exclusive writer; no other component
// touches it. An empty baseDir yields a memory-only vault (no
// persistence), which is also what the tests use.
type Vault struct {
	db *bolt.DB

	mu  sync.Mutex
	mem map[string][]byte // memory-only mode
}

// OpenVault opens (or creates) the vault under baseDir.
func OpenVault(baseDir string) (*Vault, error) {
	if baseDir == "" {
		return &Vault{mem: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(baseDir, "session.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open session vault: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSession)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Vault{db: db}, nil
}

func (v *Vault) get(key []byte) ([]byte, bool) {
	if v.db == nil {
		v.mu.Lock()
		defer v.mu.Unlock()
		data, ok := v.mem[string(key)]
		return data, ok
	}

	var data []byte
	v.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSession)
		if b == nil {
			return nil
		}
		if val := b.Get(key); val != nil {
			data = make([]byte, len(val))
			copy(data, val)
		}
		return nil
	})
	return data, data != nil
}

func (v *Vault) put(key, value []byte) error {
	if v.db == nil {
		v.mu.Lock()
		defer v.mu.Unlock()
		v.mem[string(key)] = value
		return nil
	}

	return v.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSession).Put(key, value)
	})
}

func (v *Vault) delete(key []byte) {
	if v.db == nil {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.mem, string(key))
		return
	}

	v.db.Update(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucketSession); b != nil {
			b.Delete(key)
		}
		return nil
	})
}

// clear wipes every persisted session field.
func (v *Vault) clear() {
	if v.db == nil {
		v.mu.Lock()
		defer v.mu.Unlock()
		v.mem = make(map[string][]byte)
		return
	}

	v.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSession)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

func (v *Vault) Close() error {
	if v.db != nil {
		return v.db.Close()
	}
	return nil
}
