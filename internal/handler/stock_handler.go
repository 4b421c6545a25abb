package handler

import (
	"go-stock-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type StockHandler struct {
	service service.StockService
}

func NewStockHandler(s service.StockService) *StockHandler {
	return &StockHandler{service: s}
}

type recordMovementRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Notes     string    `json:"notes"`
}

type updateMovementRequest struct {
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

func (h *StockHandler) CreateStockIn(c *fiber.Ctx) error {
	var req recordMovementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.ProductID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Product ID and quantity are required"})
	}

	m, err := h.service.RecordStockIn(req.ProductID, req.Quantity, req.Notes, actorID(c))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Stock added successfully",
		"stockIn": m,
	})
}

func (h *StockHandler) UpdateStockIn(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid record ID"})
	}

	var req updateMovementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	m, err := h.service.UpdateStockIn(id, req.Quantity, req.Notes, actorID(c))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Stock-in record updated successfully",
		"stockIn": m,
	})
}

func (h *StockHandler) DeleteStockIn(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid record ID"})
	}

	if err := h.service.DeleteStockIn(id, actorID(c)); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Stock-in record deleted successfully"})
}

func (h *StockHandler) ListStockIns(c *fiber.Ctx) error {
	records, err := h.service.ListStockIns(nil)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(records)
}

func (h *StockHandler) ListStockInsByProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	records, err := h.service.ListStockIns(&productID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(records)
}

func (h *StockHandler) CreateStockOut(c *fiber.Ctx) error {
	var req recordMovementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.ProductID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Product ID and quantity are required"})
	}

	m, err := h.service.RecordStockOut(req.ProductID, req.Quantity, req.Notes, actorID(c))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Stock removed successfully",
		"stockOut": m,
	})
}

func (h *StockHandler) UpdateStockOut(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid record ID"})
	}

	var req updateMovementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	m, err := h.service.UpdateStockOut(id, req.Quantity, req.Notes, actorID(c))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message":  "Stock-out record updated successfully",
		"stockOut": m,
	})
}

func (h *StockHandler) DeleteStockOut(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid record ID"})
	}

	if err := h.service.DeleteStockOut(id, actorID(c)); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Stock-out record deleted successfully"})
}

func (h *StockHandler) ListStockOuts(c *fiber.Ctx) error {
	records, err := h.service.ListStockOuts(nil)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(records)
}

func (h *StockHandler) ListStockOutsByProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	records, err := h.service.ListStockOuts(&productID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(records)
}
