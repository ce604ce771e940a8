package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories groups the repositories that share one connection or transaction.
type Repositories struct {
	Albums  AlbumRepository
	Reviews ReviewRepository
	Users   UserRepository
}

// NewRepositories binds every repository to db, which may be a transaction handle.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Albums:  NewAlbumRepository(db),
		Reviews: NewReviewRepository(db),
		Users:   NewUserRepository(db),
	}
}

// Store hands out repositories and runs multi-step writes as one transaction.
type Store interface {
	Repos() *Repositories
	WithinTransaction(ctx context.Context, fn func(tx *Repositories) error) error
	Ping(ctx context.Context) error
}

type gormStore struct {
	db    *gorm.DB
	repos *Repositories
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db, repos: NewRepositories(db)}
}

func (s *gormStore) Repos() *Repositories {
	return s.repos
}

// WithinTransaction commits when fn returns nil and rolls back otherwise.
func (s *gormStore) WithinTransaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
