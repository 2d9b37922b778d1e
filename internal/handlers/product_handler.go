package handlers

import (
	"kayoemoeda/internal/models"
	"kayoemoeda/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// RegisterRoutes registers the public catalog routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListCatalog)
	productRoutes.Get("/:id", h.HandleGetCatalogProduct)
}

// RegisterAdminRoutes registers product management routes.
func (h *ProductHandler) RegisterAdminRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListAll)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleListCatalog lists ACTIVE products.
func (h *ProductHandler) HandleListCatalog(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext(), true)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// HandleGetCatalogProduct returns one ACTIVE product.
func (h *ProductHandler) HandleGetCatalogProduct(c *fiber.Ctx) error {
	product, err := h.service.GetCatalogProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandleListAll lists every product regardless of status.
func (h *ProductHandler) HandleListAll(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext(), false)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// HandleGetProduct returns a product regardless of status.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if ok, err := parseBody(c, &product); !ok {
		return err
	}
	product.ID = ""
	if err := h.service.CreateProduct(c.UserContext(), &product); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct replaces the editable fields of a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var product models.Product
	if ok, err := parseBody(c, &product); !ok {
		return err
	}
	product.ID = c.Params("id")
	if err := h.service.UpdateProduct(c.UserContext(), &product); err != nil {
		return respondError(c, err)
	}
	updated, err := h.service.GetProductByID(c.UserContext(), product.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// HandleDeleteProduct soft-deletes a product. Order history keeps its
// snapshot.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
