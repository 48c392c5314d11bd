package repository

import (
	"errors"
	"time"

	"go-inventory-ledger/internal/apperr"
	"go-inventory-ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) Create(tx *model.Transaction) error {
	return r.db.Create(tx).Error
}

func (r *transactionRepo) FindAll(filter TransactionFilter) ([]model.Transaction, error) {
	query := r.db.Preload("Product").Preload("PerformedByUser")
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.Start != nil {
		query = query.Where("transaction_date >= ?", *filter.Start)
	}
	if filter.End != nil {
		query = query.Where("transaction_date <= ?", *filter.End)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var transactions []model.Transaction
	err := query.Order("transaction_date DESC").Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.Preload("Product").Preload("PerformedByUser").First(&transaction, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("transaction %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *transactionRepo) FindBetween(start, end time.Time) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Where("transaction_date >= ? AND transaction_date <= ?", start, end).
		Order("transaction_date ASC").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindRecent(limit int) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Preload("Product").Preload("PerformedByUser").
		Order("transaction_date DESC").
		Limit(limit).
		Find(&transactions).Error
	return transactions, err
}
