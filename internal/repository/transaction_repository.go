package repository

import (
	"context"
	"errors"

	"github.com/lshigami/coursequiz/internal/apperror"
	"github.com/lshigami/coursequiz/internal/model"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) error
	FindByID(ctx context.Context, id uint) (*model.Transaction, error)
	FindAll(ctx context.Context, userID *uint) ([]model.Transaction, error)
	// ResolvePending writes status only if the row is still pending and
	// reports whether it did.
	ResolvePending(ctx context.Context, id uint, status model.TransactionStatus) (bool, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *model.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *transactionRepository) FindByID(ctx context.Context, id uint) (*model.Transaction, error) {
	var tx model.Transaction
	if err := r.db.WithContext(ctx).First(&tx, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrTransactionNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindAll returns transactions newest first, optionally for one user.
func (r *transactionRepository) FindAll(ctx context.Context, userID *uint) ([]model.Transaction, error) {
	var txs []model.Transaction
	query := r.db.WithContext(ctx)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	err := query.Order("created_at DESC").Order("id DESC").Find(&txs).Error
	return txs, err
}

func (r *transactionRepository) ResolvePending(ctx context.Context, id uint, status model.TransactionStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("id = ? AND status = ?", id, model.TransactionStatusPending).
		Update("status", status)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
