package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"tinymart/internal/domain"
)

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) ListWithRelations(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) GetWithTags(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockProductRepository) ListTags(ctx context.Context) ([]domain.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *MockProductRepository) CreateWithTags(ctx context.Context, product *domain.Product, tagIDs []int64) error {
	args := m.Called(ctx, product, tagIDs)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateWithTags(ctx context.Context, product *domain.Product, tagIDs []int64) error {
	args := m.Called(ctx, product, tagIDs)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestProductService_GetProduct(t *testing.T) {
	ctx := context.Background()

	testProduct := &domain.Product{
		ID:         1,
		Name:       "Watercolour Set",
		Cost:       24.9,
		CategoryID: 2,
		Tags:       []domain.Tag{{ID: 1, Name: "bestseller"}},
	}

	tests := []struct {
		name        string
		productID   int64
		mockReturn  *domain.Product
		mockError   error
		expectError error
	}{
		{
			name:       "Success",
			productID:  1,
			mockReturn: testProduct,
		},
		{
			name:        "Not found maps to ErrProductNotFound",
			productID:   99,
			mockError:   gorm.ErrRecordNotFound,
			expectError: ErrProductNotFound,
		},
		{
			name:        "Repository error passes through",
			productID:   1,
			mockError:   errors.New("connection refused"),
			expectError: errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			service := NewProductService(mockRepo)

			mockRepo.On("GetWithTags", ctx, tt.productID).Return(tt.mockReturn, tt.mockError)

			product, err := service.GetProduct(ctx, tt.productID)

			if tt.expectError != nil {
				require.Error(t, err)
				assert.EqualError(t, err, tt.expectError.Error())
				assert.Nil(t, product)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.mockReturn, product)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()

	in := ProductInput{
		Name:        "Sketchbook",
		Cost:        12.5,
		Description: "A5, 120gsm",
		ImageURL:    "https://img.example/sketchbook.png",
		CategoryID:  3,
		TagIDs:      []int64{2, 5},
	}

	t.Run("Success attaches the submitted tag set", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := NewProductService(mockRepo)

		mockRepo.On("CreateWithTags", ctx, mock.MatchedBy(func(p *domain.Product) bool {
			return p.Name == in.Name && p.Cost == in.Cost && p.CategoryID == in.CategoryID
		}), []int64{2, 5}).Return(nil)

		product, err := service.CreateProduct(ctx, in)

		require.NoError(t, err)
		assert.Equal(t, "Sketchbook", product.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Persistence failure surfaces", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := NewProductService(mockRepo)

		mockRepo.On("CreateWithTags", ctx, mock.Anything, mock.Anything).
			Return(errors.New("constraint violation"))

		product, err := service.CreateProduct(ctx, in)

		require.Error(t, err)
		assert.Nil(t, product)
		mockRepo.AssertExpectations(t)
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.Background()

	existing := &domain.Product{
		ID:         7,
		Name:       "Old Name",
		Cost:       5,
		CategoryID: 1,
		Tags:       []domain.Tag{{ID: 1}, {ID: 2}, {ID: 3}},
	}

	in := ProductInput{
		Name:       "New Name",
		Cost:       8.75,
		CategoryID: 2,
		TagIDs:     []int64{2, 3, 4},
	}

	t.Run("Success merges scalars and forwards the target tag set", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := NewProductService(mockRepo)

		mockRepo.On("GetWithTags", ctx, int64(7)).Return(existing, nil)
		mockRepo.On("UpdateWithTags", ctx, mock.MatchedBy(func(p *domain.Product) bool {
			return p.ID == 7 && p.Name == "New Name" && p.Cost == 8.75 && p.CategoryID == 2
		}), []int64{2, 3, 4}).Return(nil)

		product, err := service.UpdateProduct(ctx, 7, in)

		require.NoError(t, err)
		assert.Equal(t, "New Name", product.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown product id yields not found", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := NewProductService(mockRepo)

		mockRepo.On("GetWithTags", ctx, int64(404)).Return(nil, gorm.ErrRecordNotFound)

		product, err := service.UpdateProduct(ctx, 404, in)

		require.ErrorIs(t, err, ErrProductNotFound)
		assert.Nil(t, product)
		mockRepo.AssertNotCalled(t, "UpdateWithTags", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProductService_DeleteProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := NewProductService(mockRepo)

		mockRepo.On("GetWithTags", ctx, int64(3)).Return(&domain.Product{ID: 3}, nil)
		mockRepo.On("Delete", ctx, int64(3)).Return(nil)

		require.NoError(t, service.DeleteProduct(ctx, 3))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown product id yields not found", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := NewProductService(mockRepo)

		mockRepo.On("GetWithTags", ctx, int64(404)).Return(nil, gorm.ErrRecordNotFound)

		require.ErrorIs(t, service.DeleteProduct(ctx, 404), ErrProductNotFound)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestProductService_ReferenceLists(t *testing.T) {
	ctx := context.Background()

	categories := []domain.Category{{ID: 1, Name: "Fiction"}, {ID: 2, Name: "Stationery"}}
	tags := []domain.Tag{{ID: 1, Name: "bestseller"}, {ID: 2, Name: "clearance"}}

	mockRepo := new(MockProductRepository)
	service := NewProductService(mockRepo)

	mockRepo.On("ListCategories", ctx).Return(categories, nil)
	mockRepo.On("ListTags", ctx).Return(tags, nil)

	gotCategories, gotTags, err := service.ReferenceLists(ctx)

	require.NoError(t, err)
	assert.Equal(t, categories, gotCategories)
	assert.Equal(t, tags, gotTags)
	mockRepo.AssertExpectations(t)
}
