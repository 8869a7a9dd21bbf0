package database

import (
	"context"
	"errors"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"konnect-service-go/internal/apperr"
)

// Key identifies a single row by the value of one column.
type Key struct {
	Column string
	Value  any
}

func (k Key) expr() clause.Eq {
	return clause.Eq{Column: clause.Column{Name: k.Column}, Value: k.Value}
}

// Backend runs each operation in its own transaction and reports failures as *apperr.Error:
// missing rows as NotFound, constraint violations as Conflict, anything else as Internal.
type Backend struct {
	db *gorm.DB
}

// NewBackend creates a new Backend over db.
func NewBackend(db *gorm.DB) *Backend {
	return &Backend{db: db}
}

// Insert creates record, or every element when record is a slice, atomically.
func (b *Backend) Insert(ctx context.Context, record any) error {
	return translate(b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(record).Error
	}))
}

// Get loads the row matching key into dest.
func (b *Backend) Get(ctx context.Context, dest any, key Key) error {
	return translate(b.db.WithContext(ctx).Where(key.expr()).Take(dest).Error)
}

// First loads the row with the lowest primary key into dest.
func (b *Backend) First(ctx context.Context, dest any) error {
	return translate(b.db.WithContext(ctx).First(dest).Error)
}

// List loads every row of dest's table in storage order.
func (b *Backend) List(ctx context.Context, dest any) error {
	return translate(b.db.WithContext(ctx).Find(dest).Error)
}

// Count returns the number of rows in model's table.
func (b *Backend) Count(ctx context.Context, model any) (int64, error) {
	var n int64
	err := b.db.WithContext(ctx).Model(model).Count(&n).Error
	return n, translate(err)
}

// Update loads the row matching key into dest, lets apply modify it and writes it back,
// all inside one transaction. An error from apply aborts the write.
func (b *Backend) Update(ctx context.Context, dest any, key Key, apply func() error) error {
	return translate(b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(key.expr()).Take(dest).Error; err != nil {
			return err
		}
		if err := apply(); err != nil {
			return err
		}
		return tx.Save(dest).Error
	}))
}

// Delete loads the row matching key into dest and removes it in one transaction,
// leaving dest holding the deleted state.
func (b *Backend) Delete(ctx context.Context, dest any, key Key) error {
	return translate(b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(key.expr()).Take(dest).Error; err != nil {
			return err
		}
		return tx.Delete(dest).Error
	}))
}

func translate(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperr.Error
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(err)
	case errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		isConstraintViolation(err):
		return apperr.Conflict(err)
	}
	return apperr.Internal(err)
}

// isConstraintViolation catches the constraint failures gorm does not translate (NOT NULL, CHECK).
func isConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}
