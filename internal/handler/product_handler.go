package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Hamza287/brenvick-dashboard/internal/middleware"
	"github.com/Hamza287/brenvick-dashboard/internal/productform"
	"github.com/Hamza287/brenvick-dashboard/internal/service"
	"github.com/Hamza287/brenvick-dashboard/internal/utils"
	"github.com/Hamza287/brenvick-dashboard/pkg/storeapi"
)

// ProductHandler handles catalog HTTP endpoints.
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// GetProducts returns the product list.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	token := middleware.GetUpstreamToken(c)
	products, err := h.productService.ListProducts(c.Request.Context(), token)
	if err != nil {
		upstreamError(c, err, "Failed to get products")
		return
	}
	utils.Success(c, 200, "Products retrieved successfully", gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct returns one product with its variant records.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Product id must be numeric")
		return
	}

	token := middleware.GetUpstreamToken(c)
	product, err := h.productService.GetProduct(c.Request.Context(), token, id)
	if err != nil {
		upstreamError(c, err, "Failed to get product")
		return
	}
	utils.Success(c, 200, "Product retrieved successfully", gin.H{"product": product})
}

// SearchProducts runs an upstream partial-record search.
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	var filter storeapi.ProductFilter
	if err := c.ShouldBindJSON(&filter); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid search filter")
		return
	}

	token := middleware.GetUpstreamToken(c)
	products, err := h.productService.SearchProducts(c.Request.Context(), token, filter)
	if err != nil {
		upstreamError(c, err, "Search failed")
		return
	}
	utils.Success(c, 200, "Search completed", gin.H{
		"products": products,
		"count":    len(products),
	})
}

// CreateProduct accepts a multipart product submission and forwards it
// upstream through the form pipeline.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	mf, err := c.MultipartForm()
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Expected a multipart form body")
		return
	}

	form := productform.New()
	if err := form.ApplyMultipart(mf); err != nil {
		formError(c, err)
		return
	}

	token := middleware.GetUpstreamToken(c)
	product, err := h.productService.CreateProduct(c.Request.Context(), token, form)
	if err != nil {
		formError(c, err)
		return
	}
	utils.Success(c, 201, "Product created", gin.H{"product": product})
}

// UpdateProduct applies a multipart submission to an existing product. The
// form is seeded from the stored record so untouched variants survive.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Product id must be numeric")
		return
	}
	mf, err := c.MultipartForm()
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Expected a multipart form body")
		return
	}

	token := middleware.GetUpstreamToken(c)
	existing, err := h.productService.GetProduct(c.Request.Context(), token, id)
	if err != nil {
		upstreamError(c, err, "Failed to load product for editing")
		return
	}

	form := productform.NewEdit(existing)
	if err := form.ApplyMultipart(mf); err != nil {
		formError(c, err)
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), token, id, form)
	if err != nil {
		formError(c, err)
		return
	}
	utils.Success(c, 200, "Product updated", gin.H{"product": product})
}

// DeleteProduct removes a product.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Product id must be numeric")
		return
	}

	token := middleware.GetUpstreamToken(c)
	if err := h.productService.DeleteProduct(c.Request.Context(), token, id); err != nil {
		upstreamError(c, err, "Failed to delete product")
		return
	}
	utils.Success(c, 200, "Product deleted", nil)
}

// GetCategories returns all product categories.
func (h *ProductHandler) GetCategories(c *gin.Context) {
	token := middleware.GetUpstreamToken(c)
	categories, err := h.productService.ListCategories(c.Request.Context(), token)
	if err != nil {
		upstreamError(c, err, "Failed to get categories")
		return
	}
	utils.Success(c, 200, "Categories retrieved successfully", gin.H{"categories": categories})
}

// GetVariantImages returns the variant-image records for a product.
func (h *ProductHandler) GetVariantImages(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Product id must be numeric")
		return
	}

	token := middleware.GetUpstreamToken(c)
	images, err := h.productService.ListVariantImages(c.Request.Context(), token, id)
	if err != nil {
		upstreamError(c, err, "Failed to get variant images")
		return
	}
	utils.Success(c, 200, "Variant images retrieved successfully", gin.H{"images": images})
}

// formError maps form validation failures onto 400 responses and everything
// else onto the generic upstream mapping.
func formError(c *gin.Context, err error) {
	var incomplete *productform.IncompleteVariantImagesError
	var invalid *productform.InvalidFieldError
	switch {
	case errors.Is(err, productform.ErrMissingBanner):
		utils.Error(c, 400, "MISSING_BANNER", err.Error())
	case errors.As(err, &incomplete):
		utils.Error(c, 400, "INCOMPLETE_VARIANT_IMAGES", err.Error())
	case errors.As(err, &invalid):
		utils.Error(c, 400, "INVALID_FIELD", err.Error())
	default:
		upstreamError(c, err, "Product submission failed")
	}
}

// upstreamError translates a storefront API failure into the dashboard's
// envelope, surfacing the upstream message when one exists.
func upstreamError(c *gin.Context, err error, fallback string) {
	var apiErr *storeapi.APIError
	if errors.As(err, &apiErr) {
		status := 502
		if apiErr.StatusCode == 404 {
			status = 404
		}
		msg := apiErr.Message
		if msg == "" && len(apiErr.ErrorList) > 0 {
			msg = apiErr.ErrorList[0]
		}
		if msg == "" {
			msg = fallback
		}
		utils.Error(c, status, "UPSTREAM_ERROR", msg)
		return
	}
	utils.Error(c, 500, "INTERNAL_ERROR", fallback)
}
