package shipper

import (
	"fmt"

	"quickzone-backend/logger"
	agencyModel "quickzone-backend/models/agency"
	shipperModel "quickzone-backend/models/shipper"
	"quickzone-backend/types"
	shipperTypes "quickzone-backend/types/shipper"
	"quickzone-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ShipperController handles shipper account management
type ShipperController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewShipperController creates a new shipper controller
func NewShipperController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *ShipperController {
	return &ShipperController{
		DB:     db,
		Logger: asyncLogger,
	}
}

// Store registers a new shipper with a generated code
func (sc *ShipperController) Store(c *fiber.Ctx) error {
	var req shipperTypes.ShipperCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}

	if !utils.ValidatePhoneNumber(req.Phone) {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid phone number",
			Data:    nil,
		})
	}

	if req.AgencyID != nil {
		var agency agencyModel.Agency
		if err := sc.DB.First(&agency, *req.AgencyID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Agency not found",
				Data:    nil,
			})
		}
	}

	sh := shipperModel.Shipper{
		Code:     utils.GenerateReference("EXP"),
		Company:  req.Company,
		Name:     req.Name,
		Phone:    req.Phone,
		AgencyID: req.AgencyID,
	}
	if req.Email != "" {
		sh.Email = &req.Email
	}
	if req.City != "" {
		sh.City = &req.City
	}
	if req.BaseDeliveryFee > 0 {
		sh.BaseDeliveryFee = req.BaseDeliveryFee
	}

	if err := sc.DB.Create(&sh).Error; err != nil {
		logger.Error("Failed to create shipper", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create shipper",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Shipper %s created", sh.Code))

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Shipper created successfully",
		Data:    sh,
	})
}

// Index lists shippers
func (sc *ShipperController) Index(c *fiber.Ctx) error {
	var shippers []shipperModel.Shipper
	if err := sc.DB.Preload("Agency").Order("created_at DESC").Find(&shippers).Error; err != nil {
		logger.Error("Failed to list shippers", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Shippers fetched successfully",
		Data:    shippers,
	})
}

// Show returns one shipper by id
func (sc *ShipperController) Show(c *fiber.Ctx) error {
	var sh shipperModel.Shipper
	if err := sc.DB.Preload("Agency").First(&sh, c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Shipper not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find shipper", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Shipper fetched successfully",
		Data:    sh,
	})
}
