package webserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"tinymart/internal/catalog"
	"tinymart/internal/domain"
	"tinymart/internal/forms"
)

func parseProductID(c echo.Context) (int64, error) {
	id, err := cast.ToInt64E(c.Param("product_id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, "Product not found")
	}
	return id, nil
}

func tagIDsOf(product *domain.Product) []int64 {
	ids := make([]int64, 0, len(product.Tags))
	for _, t := range product.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// buildForm rebuilds the product form with the current reference lists. The
// same choice sets back both the initial render and the submit validation.
func (s *WebServer) buildForm(c echo.Context) (*forms.ProductForm, error) {
	categories, tags, err := s.service.ReferenceLists(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return forms.New(categories, tags), nil
}

func (s *WebServer) cloudinaryData() echo.Map {
	return echo.Map{
		"CloudinaryName":   s.cfg.Cloudinary.Name,
		"CloudinaryApiKey": s.cfg.Cloudinary.ApiKey,
		"CloudinaryPreset": s.cfg.Cloudinary.UploadPreset,
	}
}

func (s *WebServer) listProducts(c echo.Context) error {
	products, err := s.service.ListProducts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "products_index.html", echo.Map{
		"Products": products,
		"Flashes":  Flashes(c),
	})
}

func (s *WebServer) createProductForm(c echo.Context) error {
	form, err := s.buildForm(c)
	if err != nil {
		return err
	}
	data := s.cloudinaryData()
	data["Form"] = form
	return c.Render(http.StatusOK, "products_create.html", data)
}

func (s *WebServer) createProductSubmit(c echo.Context) error {
	form, err := s.buildForm(c)
	if err != nil {
		return err
	}
	if err := c.Request().ParseForm(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Unable to parse form submission")
	}
	form.Bind(c.Request().PostForm)

	if !form.Validate() {
		return c.Render(http.StatusOK, "products_create.html", echo.Map{
			"Form": form,
		})
	}

	product, err := s.service.CreateProduct(c.Request().Context(), form.Input())
	if err != nil {
		return err
	}

	AddFlash(c, fmt.Sprintf("New Product %s has been created", product.Name))
	return c.Redirect(http.StatusFound, "/products")
}

func (s *WebServer) updateProductForm(c echo.Context) error {
	id, err := parseProductID(c)
	if err != nil {
		return err
	}
	product, err := s.service.GetProduct(c.Request().Context(), id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return err
	}

	form, err := s.buildForm(c)
	if err != nil {
		return err
	}
	form.FillFrom(product, tagIDsOf(product))

	data := s.cloudinaryData()
	data["Form"] = form
	data["Product"] = product
	return c.Render(http.StatusOK, "products_update.html", data)
}

func (s *WebServer) updateProductSubmit(c echo.Context) error {
	id, err := parseProductID(c)
	if err != nil {
		return err
	}
	product, err := s.service.GetProduct(c.Request().Context(), id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return err
	}

	form, err := s.buildForm(c)
	if err != nil {
		return err
	}
	if err := c.Request().ParseForm(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Unable to parse form submission")
	}
	form.Bind(c.Request().PostForm)

	if !form.Validate() {
		// nothing was persisted, re-render with the submitted values
		return c.Render(http.StatusOK, "products_update.html", echo.Map{
			"Form":    form,
			"Product": product,
		})
	}

	if _, err := s.service.UpdateProduct(c.Request().Context(), id, form.Input()); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return err
	}
	return c.Redirect(http.StatusFound, "/products")
}

func (s *WebServer) deleteProductConfirm(c echo.Context) error {
	id, err := parseProductID(c)
	if err != nil {
		return err
	}
	product, err := s.service.GetProduct(c.Request().Context(), id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "products_delete.html", echo.Map{
		"Product": product,
	})
}

func (s *WebServer) deleteProductSubmit(c echo.Context) error {
	id, err := parseProductID(c)
	if err != nil {
		return err
	}
	if err := s.service.DeleteProduct(c.Request().Context(), id); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return err
	}
	return c.Redirect(http.StatusFound, "/products")
}
