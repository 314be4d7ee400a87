package catalog

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// productTag maps the products_tags join table created by the Product
// many2many declaration. Rows are only ever inserted or deleted.
type productTag struct {
	ProductID int64 `gorm:"primaryKey"`
	TagID     int64 `gorm:"primaryKey"`
}

func (productTag) TableName() string {
	return "products_tags"
}

// GormTagStore is the GORM implementation of TagStore. Constructing it with
// a transaction handle scopes every primitive to that transaction.
type GormTagStore struct {
	db *gorm.DB
}

func NewGormTagStore(db *gorm.DB) *GormTagStore {
	return &GormTagStore{db: db}
}

func (s *GormTagStore) CurrentTagIDs(ctx context.Context, productID int64) ([]int64, error) {
	var ids []int64
	err := s.db.WithContext(ctx).
		Model(&productTag{}).
		Where("product_id = ?", productID).
		Order("tag_id").
		Pluck("tag_id", &ids).Error
	return ids, err
}

func (s *GormTagStore) Attach(ctx context.Context, productID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]productTag, 0, len(tagIDs))
	for _, id := range tagIDs {
		rows = append(rows, productTag{ProductID: productID, TagID: id})
	}
	// Existing pairs are skipped; a tag id without a tags row still fails
	// the foreign key check and surfaces as a persistence error.
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

func (s *GormTagStore) Detach(ctx context.Context, productID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Where("product_id = ? AND tag_id IN ?", productID, tagIDs).
		Delete(&productTag{}).Error
}

var _ TagStore = (*GormTagStore)(nil)
