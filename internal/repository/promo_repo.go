package repository

import (
	"context"
	"errors"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/models"

	"gorm.io/gorm"
)

var ErrPromoUsageExhausted = errors.New("promo code usage limit reached")

type PromoRepo interface {
	Create(ctx context.Context, p *models.PromoCode) error
	GetByCode(ctx context.Context, code string) (*models.PromoCode, error)
	// IncrementUsage учитывает использование, не выходя за usage_limit.
	IncrementUsage(ctx context.Context, code string) error
}

type promoRepo struct{ db *gorm.DB }

func NewPromoRepo(db *gorm.DB) PromoRepo { return &promoRepo{db: db} }

func (r *promoRepo) Create(ctx context.Context, p *models.PromoCode) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *promoRepo) GetByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	var p models.PromoCode
	err := r.db.WithContext(ctx).First(&p, "code = ?", models.NormalizePromoCode(code)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *promoRepo) IncrementUsage(ctx context.Context, code string) error {
	tx := r.db.WithContext(ctx).Model(&models.PromoCode{}).
		Where("code = ? AND (usage_limit = 0 OR used_count < usage_limit)", models.NormalizePromoCode(code)).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrPromoUsageExhausted
	}
	return nil
}
