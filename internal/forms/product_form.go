package forms

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
	"tinymart/internal/catalog"
	"tinymart/internal/domain"
)

var validate = validator.New()

// Choice is an id+name projection of a reference entity, used to populate
// selection widgets.
type Choice struct {
	ID   int64
	Name string
}

// ProductForm holds one create/update submission. Values stay raw strings so
// an invalid submission re-renders exactly what the user typed. A form value
// is built fresh per request; choice sets are never mutated after New.
type ProductForm struct {
	Name        string `form:"name" validate:"required,max=200"`
	Cost        string `form:"cost" validate:"required"`
	Description string `form:"description" validate:"max=2048"`
	ImageURL    string `form:"image_url" validate:"max=1024"`
	CategoryID  string `form:"category_id" validate:"required"`
	Tags        string `form:"tags"`

	Categories []Choice
	TagChoices []Choice
	Errors     map[string]string
}

// New builds an unbound form carrying the category and tag choice sets in
// storage order.
func New(categories []domain.Category, tags []domain.Tag) *ProductForm {
	f := &ProductForm{
		Categories: make([]Choice, 0, len(categories)),
		TagChoices: make([]Choice, 0, len(tags)),
		Errors:     map[string]string{},
	}
	for _, c := range categories {
		f.Categories = append(f.Categories, Choice{ID: c.ID, Name: c.Name})
	}
	for _, t := range tags {
		f.TagChoices = append(f.TagChoices, Choice{ID: t.ID, Name: t.Name})
	}
	return f
}

// Bind populates the form from a submission. A multi-valued tags field is
// joined into the canonical comma-separated form.
func (f *ProductForm) Bind(values url.Values) {
	f.Name = strings.TrimSpace(values.Get("name"))
	f.Cost = strings.TrimSpace(values.Get("cost"))
	f.Description = values.Get("description")
	f.ImageURL = strings.TrimSpace(values.Get("image_url"))
	f.CategoryID = strings.TrimSpace(values.Get("category_id"))
	f.Tags = strings.Join(values["tags"], ",")
}

// FillFrom populates every field from an existing product, including the
// current tag id set, so the edit form reflects persisted state.
func (f *ProductForm) FillFrom(product *domain.Product, tagIDs []int64) {
	f.Name = product.Name
	f.Cost = strconv.FormatFloat(product.Cost, 'f', -1, 64)
	f.Description = product.Description
	f.ImageURL = product.ImageURL
	f.CategoryID = strconv.FormatInt(product.CategoryID, 10)
	parts := make([]string, 0, len(tagIDs))
	for _, id := range tagIDs {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	f.Tags = strings.Join(parts, ",")
}

// Validate checks the bound values and records field-level errors. It
// returns true when the form is valid. Category and tag values must come
// from the form's own choice sets.
func (f *ProductForm) Validate() bool {
	f.Errors = map[string]string{}

	if err := validate.Struct(f); err != nil {
		verrs, _ := err.(validator.ValidationErrors)
		for _, fe := range verrs {
			switch fe.Field() {
			case "Name":
				f.Errors["name"] = "Name is required and must be at most 200 characters"
			case "Cost":
				f.Errors["cost"] = "Cost is required"
			case "Description":
				f.Errors["description"] = "Description must be at most 2048 characters"
			case "ImageURL":
				f.Errors["image_url"] = "Image URL must be at most 1024 characters"
			case "CategoryID":
				f.Errors["category_id"] = "Category is required"
			}
		}
	}

	if f.Cost != "" {
		if cost, err := cast.ToFloat64E(f.Cost); err != nil {
			f.Errors["cost"] = "Cost must be a number"
		} else if cost < 0 {
			f.Errors["cost"] = "Cost must not be negative"
		}
	}

	if f.CategoryID != "" {
		id, err := cast.ToInt64E(f.CategoryID)
		if err != nil || !f.hasCategory(id) {
			f.Errors["category_id"] = "Category must be one of the listed choices"
		}
	}

	for _, id := range catalog.ParseTagIDs(f.Tags) {
		if !f.hasTag(id) {
			f.Errors["tags"] = "Tags must come from the listed choices"
			break
		}
	}

	return len(f.Errors) == 0
}

// Input converts a validated form into the workflow input. Call only after
// Validate reports success.
func (f *ProductForm) Input() catalog.ProductInput {
	return catalog.ProductInput{
		Name:        f.Name,
		Cost:        cast.ToFloat64(f.Cost),
		Description: f.Description,
		ImageURL:    f.ImageURL,
		CategoryID:  cast.ToInt64(f.CategoryID),
		TagIDs:      catalog.ParseTagIDs(f.Tags),
	}
}

// CategorySelected reports whether the bound category value matches id.
func (f *ProductForm) CategorySelected(id int64) bool {
	return f.CategoryID == strconv.FormatInt(id, 10)
}

// TagSelected reports whether id is part of the bound tags value.
func (f *ProductForm) TagSelected(id int64) bool {
	for _, tid := range catalog.ParseTagIDs(f.Tags) {
		if tid == id {
			return true
		}
	}
	return false
}

func (f *ProductForm) hasCategory(id int64) bool {
	for _, c := range f.Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (f *ProductForm) hasTag(id int64) bool {
	for _, t := range f.TagChoices {
		if t.ID == id {
			return true
		}
	}
	return false
}
