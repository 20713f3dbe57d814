package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tableflip.dev/stickies/pkg/note"
)

// snapshot is one named blob: the live collection or a backup.
type snapshot struct {
	Name      string `gorm:"primaryKey"`
	Data      []byte
	UpdatedAt time.Time
}

func (snapshot) TableName() string {
	return "snapshots"
}

// SQLiteAdapter stores the collection and its backups as rows of a single
// table in a SQLite database.
type SQLiteAdapter struct {
	db  *gorm.DB
	now clock
}

// NewSQLite opens the database file at path and migrates the schema.
func NewSQLite(path string) (*SQLiteAdapter, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("storage: open sqlite %s: %w", path, err)
	}
	if err := db.AutoMigrate(&snapshot{}); err != nil {
		return nil, fmt.Errorf("storage: migrate sqlite: %w", err)
	}
	return &SQLiteAdapter{db: db}, nil
}

// WithClock overrides the clock used to name backups.
func (a *SQLiteAdapter) WithClock(now func() time.Time) *SQLiteAdapter {
	a.now = now
	return a
}

func (a *SQLiteAdapter) Load(ctx context.Context) ([]note.Record, error) {
	var s snapshot
	err := a.db.WithContext(ctx).First(&s, "name = ?", NotesKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []note.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: select %s: %w", NotesKey, err)
	}
	return Decode(s.Data)
}

func (a *SQLiteAdapter) Save(ctx context.Context, notes []note.Note) error {
	data, err := Encode(notes)
	if err != nil {
		return err
	}
	s := snapshot{Name: NotesKey, Data: data, UpdatedAt: a.now.now()}
	if err := a.db.WithContext(ctx).Save(&s).Error; err != nil {
		return fmt.Errorf("storage: upsert %s: %w", NotesKey, err)
	}
	return nil
}

func (a *SQLiteAdapter) Backup(ctx context.Context, notes []note.Note) (string, error) {
	data, err := Encode(notes)
	if err != nil {
		return "", err
	}
	now := a.now.now()
	s := snapshot{Name: BackupName(now), Data: data, UpdatedAt: now}
	if err := a.db.WithContext(ctx).Create(&s).Error; err != nil {
		return "", fmt.Errorf("storage: insert backup %s: %w", s.Name, err)
	}
	return s.Name, nil
}

// Backups lists the names of all backups, oldest first.
func (a *SQLiteAdapter) Backups(ctx context.Context) []string {
	var names []string
	err := a.db.WithContext(ctx).Model(&snapshot{}).
		Where("name LIKE ?", BackupPrefix+"%").
		Order("name").
		Pluck("name", &names).Error
	if err != nil {
		return nil
	}
	return names
}

func (a *SQLiteAdapter) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
