package handlers

import (
	"github.com/fathallah7/health-clinic/database"
	"github.com/fathallah7/health-clinic/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description *string `json:"description,omitempty"`
}

func ListCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := database.DB.Order("name asc").Find(&categories).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load categories")
	}
	return success(c, fiber.StatusOK, "Categories List", categories)
}

func CreateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	category := models.Category{Name: req.Name, Description: req.Description}
	if err := database.DB.Create(&category).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to create category")
	}

	return success(c, fiber.StatusCreated, "Category Created", category)
}

func UpdateCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("categoryId"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid category ID format")
	}

	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var category models.Category
	if err := database.DB.First(&category, "id = ?", id).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Category not found")
	}

	category.Name = req.Name
	category.Description = req.Description
	if err := database.DB.Save(&category).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to update category")
	}

	return success(c, fiber.StatusOK, "Category Updated", category)
}

func DeleteCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("categoryId"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid category ID format")
	}

	var category models.Category
	if err := database.DB.First(&category, "id = ?", id).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Category not found")
	}

	var productCount int64
	if err := database.DB.Model(&models.Product{}).Where("category_id = ?", id).Count(&productCount).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to check category products")
	}
	if productCount > 0 {
		return fail(c, fiber.StatusConflict, "Category still has products")
	}

	if err := database.DB.Delete(&category).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to delete category")
	}

	return success(c, fiber.StatusOK, "Category Deleted", nil)
}
