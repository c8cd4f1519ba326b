package ledger

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"time"

	"github.com/boltdb/bolt"

	"github.com/farthing-dev/farthing/internal/model"
)

// Each bucket maps a big-endian slice index to one gob-encoded record, so
// cursor order reproduces ledger order. Rule evaluation order rides on the
// same mechanism.
var (
	bucketTransactions = []byte("transactions")
	bucketAccounts     = []byte("accounts")
	bucketCategories   = []byte("categories")
	bucketRules        = []byte("rules")
)

// DB is the bolt file holding the ledger.
type DB struct {
	db *bolt.DB
}

// Open opens the ledger database at path, creating it if needed. The
// timeout keeps a second farthing process from hanging on the file lock.
func Open(path string) (*DB, error) {
	b, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening ledger db %s: %w", path, err)
	}
	return &DB{db: b}, nil
}

// Close releases the bolt file.
func (d *DB) Close() error {
	return d.db.Close()
}

// Load reads the full ledger state. A fresh database loads as an empty
// snapshot.
func (d *DB) Load() (model.Snapshot, error) {
	var snap model.Snapshot
	err := d.db.View(func(tx *bolt.Tx) error {
		var err error
		if snap.Transactions, err = readBucket[model.Transaction](tx, bucketTransactions); err != nil {
			return err
		}
		if snap.Accounts, err = readBucket[model.Account](tx, bucketAccounts); err != nil {
			return err
		}
		if snap.Categories, err = readBucket[model.Category](tx, bucketCategories); err != nil {
			return err
		}
		snap.Rules, err = readBucket[model.CategoryRule](tx, bucketRules)
		return err
	})
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("loading ledger: %w", err)
	}
	return snap, nil
}

// Save replaces the stored ledger with the snapshot in one transaction.
func (d *DB) Save(snap model.Snapshot) error {
	err := d.db.Update(func(tx *bolt.Tx) error {
		if err := writeBucket(tx, bucketTransactions, snap.Transactions); err != nil {
			return err
		}
		if err := writeBucket(tx, bucketAccounts, snap.Accounts); err != nil {
			return err
		}
		if err := writeBucket(tx, bucketCategories, snap.Categories); err != nil {
			return err
		}
		return writeBucket(tx, bucketRules, snap.Rules)
	})
	if err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}
	return nil
}

func readBucket[T any](tx *bolt.Tx, name []byte) ([]T, error) {
	b := tx.Bucket(name)
	if b == nil {
		return nil, nil
	}
	var out []T
	c := b.Cursor()
	for k, v := c.First(); k != nil; k, v = c.Next() {
		var rec T
		if err := gob.NewDecoder(bytes.NewReader(v)).Decode(&rec); err != nil {
			return nil, fmt.Errorf("decoding %s record: %w", name, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func writeBucket[T any](tx *bolt.Tx, name []byte, records []T) error {
	if err := tx.DeleteBucket(name); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
		return fmt.Errorf("clearing %s: %w", name, err)
	}
	b, err := tx.CreateBucket(name)
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	for i, rec := range records {
		var buf bytes.Buffer
		if err := gob.NewEncoder(&buf).Encode(rec); err != nil {
			return fmt.Errorf("encoding %s record: %w", name, err)
		}
		if err := b.Put(itob(uint64(i)), buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
