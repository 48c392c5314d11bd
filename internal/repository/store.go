package repository

import "gorm.io/gorm"

type gormStore struct {
	db *gorm.DB
}

// NewStore wraps a gorm connection as a Store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Products() ProductRepository {
	return NewProductRepo(s.db)
}

func (s *gormStore) Transactions() TransactionRepository {
	return NewTransactionRepo(s.db)
}

func (s *gormStore) Users() UserRepository {
	return NewUserRepo(s.db)
}

// InTx hands fn a Store bound to one database transaction. A returned error
// rolls everything back.
func (s *gormStore) InTx(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
