package handlers

import (
	"github.com/fathallah7/health-clinic/database"
	"github.com/fathallah7/health-clinic/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=255"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"min=0"`
	CategoryID  string  `json:"category_id" validate:"required,uuid"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

func ListProducts(c *fiber.Ctx) error {
	var products []models.Product
	if err := database.DB.Preload("Category").Order("name asc").Find(&products).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load products")
	}
	return success(c, fiber.StatusOK, "Products List", products)
}

func GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid product ID format")
	}

	var product models.Product
	if err := database.DB.Preload("Category").First(&product, "id = ?", id).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Product not found")
	}
	return success(c, fiber.StatusOK, "Product", product)
}

func CreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	categoryID, _ := uuid.Parse(req.CategoryID)
	var category models.Category
	if err := database.DB.First(&category, "id = ?", categoryID).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Category not found")
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  categoryID,
		ImageURL:    req.ImageURL,
	}
	if err := database.DB.Create(&product).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to create product")
	}

	return success(c, fiber.StatusCreated, "Product Created", product)
}

func UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid product ID format")
	}

	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var product models.Product
	if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Product not found")
	}

	categoryID, _ := uuid.Parse(req.CategoryID)
	var category models.Category
	if err := database.DB.First(&category, "id = ?", categoryID).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Category not found")
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.Stock = req.Stock
	product.CategoryID = categoryID
	product.ImageURL = req.ImageURL

	if err := database.DB.Save(&product).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to update product")
	}

	return success(c, fiber.StatusOK, "Product Updated", product)
}

func DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid product ID format")
	}

	var product models.Product
	if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Product not found")
	}

	if err := database.DB.Delete(&product).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to delete product")
	}

	return success(c, fiber.StatusOK, "Product Deleted", nil)
}
