package catalog

import (
	"context"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// ListProducts returns grid products, optionally filtered by category.
func (r *Repo) ListProducts(ctx context.Context, category string, limit int) ([]Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	q := r.db.WithContext(ctx).Order("id ASC").Limit(limit)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var products []Product
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Featured returns discounted products, deepest discount first.
func (r *Repo) Featured(ctx context.Context, limit int) ([]Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var products []Product
	err := r.db.WithContext(ctx).
		Where("discount > 0").
		Order("discount DESC, id ASC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *Repo) ListCategories(ctx context.Context) ([]Category, error) {
	var cats []Category
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

// SeedIfEmpty loads the default storefront grid once; reruns are no-ops.
func (r *Repo) SeedIfEmpty(ctx context.Context) error {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&Product{}).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt > 0 {
		return nil
	}

	if err := r.db.WithContext(ctx).Create(defaultProducts()).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(defaultCategories()).Error
}
