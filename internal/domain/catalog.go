package domain

import "time"

// Product is a catalog item. It belongs to exactly one Category and carries
// a many-to-many relation to Tag through the products_tags join table. The
// join rows are managed exclusively from the product side.
type Product struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id,string" form:"id"`
	Name        string    `gorm:"index" json:"name" form:"name"`
	Cost        float64   `json:"cost" form:"cost"`
	Description string    `gorm:"size:2048" json:"description" form:"description"`
	ImageURL    string    `gorm:"size:1024" json:"image_url" form:"image_url"`
	CategoryID  int64     `gorm:"index" json:"category_id,string" form:"category_id"`
	Category    Category  `gorm:"foreignKey:CategoryID" json:"category"`
	Tags        []Tag     `gorm:"many2many:products_tags" json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}

// Category is a read-only reference list entry for the product form.
type Category struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id,string" form:"id"`
	Name      string    `gorm:"index" json:"name" form:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Category) TableName() string {
	return "categories"
}

// Tag is a read-only reference list entry. Its relation to Product is
// mutated through the products_tags association only.
type Tag struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id,string" form:"id"`
	Name      string    `gorm:"uniqueIndex" json:"name" form:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Tag) TableName() string {
	return "tags"
}
