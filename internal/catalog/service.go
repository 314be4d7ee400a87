package catalog

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"tinymart/internal/domain"
)

// ErrProductNotFound is returned when a required fetch-by-id finds no row.
var ErrProductNotFound = errors.New("product not found")

// ProductInput carries the validated scalar fields and the target tag set
// of a create or update submission.
type ProductInput struct {
	Name        string
	Cost        float64
	Description string
	ImageURL    string
	CategoryID  int64
	TagIDs      []int64
}

// CatalogService is the create/update/delete workflow over the product
// catalog. Validation happens before the service is called; every method
// here assumes well-formed input.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ReferenceLists(ctx context.Context) ([]domain.Category, []domain.Tag, error)
	CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, in ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// ProductService is the default CatalogService backed by a ProductRepository
type ProductService struct {
	repo ProductRepository
}

func NewProductService(repo ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListWithRelations(ctx)
}

func (s *ProductService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.repo.GetWithTags(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) ReferenceLists(ctx context.Context) ([]domain.Category, []domain.Tag, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, nil, err
	}
	tags, err := s.repo.ListTags(ctx)
	if err != nil {
		return nil, nil, err
	}
	return categories, tags, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	now := time.Now()
	product := &domain.Product{
		Name:        in.Name,
		Cost:        in.Cost,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		CategoryID:  in.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateWithTags(ctx, product, in.TagIDs); err != nil {
		zap.L().Error("failed to create product", zap.String("name", in.Name), zap.Error(err))
		return nil, err
	}

	zap.L().Info("product created",
		zap.Int64("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Int64s("tags", in.TagIDs))
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id int64, in ProductInput) (*domain.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Cost = in.Cost
	product.Description = in.Description
	product.ImageURL = in.ImageURL
	product.CategoryID = in.CategoryID
	product.UpdatedAt = time.Now()
	product.Tags = nil

	if err := s.repo.UpdateWithTags(ctx, product, in.TagIDs); err != nil {
		zap.L().Error("failed to update product", zap.Int64("product_id", id), zap.Error(err))
		return nil, err
	}

	zap.L().Info("product updated",
		zap.Int64("product_id", id),
		zap.Int64s("tags", in.TagIDs))
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		zap.L().Error("failed to delete product", zap.Int64("product_id", id), zap.Error(err))
		return err
	}
	zap.L().Info("product deleted", zap.Int64("product_id", id))
	return nil
}

var _ CatalogService = (*ProductService)(nil)
