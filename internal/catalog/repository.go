package catalog

import (
	"context"

	"gorm.io/gorm"
	"tinymart/internal/domain"
)

// ProductRepository handles database operations for the product catalog
type ProductRepository interface {
	// ListWithRelations retrieves all products with category and tags preloaded
	ListWithRelations(ctx context.Context) ([]domain.Product, error)

	// GetWithTags retrieves a product by id with its tags preloaded
	GetWithTags(ctx context.Context, id int64) (*domain.Product, error)

	// ListCategories returns the category reference list in storage order
	ListCategories(ctx context.Context) ([]domain.Category, error)

	// ListTags returns the tag reference list in storage order
	ListTags(ctx context.Context) ([]domain.Tag, error)

	// CreateWithTags inserts a new product and attaches the given tag ids
	// as a single transaction
	CreateWithTags(ctx context.Context, product *domain.Product, tagIDs []int64) error

	// UpdateWithTags saves the product's scalar fields and reconciles its
	// tag associations to tagIDs as a single transaction
	UpdateWithTags(ctx context.Context, product *domain.Product, tagIDs []int64) error

	// Delete removes a product and its tag associations
	Delete(ctx context.Context, id int64) error
}

// GormProductRepository is the GORM implementation of ProductRepository
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM-based repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) ListWithRelations(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Tags").
		Order("id").
		Find(&products).Error
	return products, err
}

func (r *GormProductRepository) GetWithTags(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).
		Preload("Tags").
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := r.db.WithContext(ctx).Find(&categories).Error
	return categories, err
}

func (r *GormProductRepository) ListTags(ctx context.Context) ([]domain.Tag, error) {
	var tags []domain.Tag
	err := r.db.WithContext(ctx).Find(&tags).Error
	return tags, err
}

func (r *GormProductRepository) CreateWithTags(ctx context.Context, product *domain.Product, tagIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Category", "Tags").Create(product).Error; err != nil {
			return err
		}
		// first save: nothing to reconcile, plain attach
		if len(tagIDs) > 0 {
			return NewGormTagStore(tx).Attach(ctx, product.ID, tagIDs)
		}
		return nil
	})
}

func (r *GormProductRepository) UpdateWithTags(ctx context.Context, product *domain.Product, tagIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Category", "Tags").Save(product).Error; err != nil {
			return err
		}
		// the reconciler re-reads current membership through the
		// transaction handle, keeping the diff and the writes atomic
		return NewTagReconciler(NewGormTagStore(tx)).Reconcile(ctx, product.ID, tagIDs)
	})
}

func (r *GormProductRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&productTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Product{}, id).Error
	})
}

var _ ProductRepository = (*GormProductRepository)(nil)
