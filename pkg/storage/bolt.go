package storage

import (
	"context"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"tableflip.dev/stickies/pkg/note"
)

var boltBucket = []byte("stickies")

// Bolt is a fallback Backend backed by a bbolt file.
type Bolt struct {
	db *bbolt.DB
}

// NewBolt opens (or creates) the bbolt file at path. Another process holding
// the file lock makes NewBolt fail after a short timeout instead of blocking.
func NewBolt(path string) (*Bolt, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("storage: open bolt %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: create bolt bucket: %w", err)
	}
	return &Bolt{db: db}, nil
}

func (b *Bolt) Load(_ context.Context) ([]note.Record, error) {
	var data []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(boltBucket)
		if bucket == nil {
			return nil
		}
		// Values are only valid for the life of the transaction.
		data = append([]byte(nil), bucket.Get([]byte(NotesKey))...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: read bolt: %w", err)
	}
	return Decode(data)
}

func (b *Bolt) Save(_ context.Context, notes []note.Note) error {
	data, err := Encode(notes)
	if err != nil {
		return err
	}
	err = b.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(boltBucket)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(NotesKey), data)
	})
	if err != nil {
		return fmt.Errorf("storage: write bolt: %w", err)
	}
	return nil
}

func (b *Bolt) Close() error {
	return b.db.Close()
}
