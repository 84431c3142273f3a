package payment

import (
	"fmt"
	"time"

	"quickzone-backend/logger"
	parcelModel "quickzone-backend/models/parcel"
	paymentModel "quickzone-backend/models/payment"
	shipperModel "quickzone-backend/models/shipper"
	"quickzone-backend/services/tracking"
	"quickzone-backend/types"
	paymentTypes "quickzone-backend/types/payment"
	"quickzone-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// PaymentController handles shipper payment HTTP requests
type PaymentController struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	History *tracking.HistoryStore
}

// NewPaymentController creates a new payment controller
func NewPaymentController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *PaymentController {
	return &PaymentController{
		DB:      db,
		Logger:  asyncLogger,
		History: tracking.NewHistoryStore(db),
	}
}

// Helper function to log API requests and responses
func (pc *PaymentController) logAPIRequest(c *fiber.Ctx) {
	logEntry := utils.CreateSanitizedLogEntry(c)
	pc.Logger.Log(logEntry)
}

// Helper function to send response and log in one call
func (pc *PaymentController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	pc.logAPIRequest(c)
	return result
}

// Store records a payment for a shipper and applies the payment transition
// to every covered parcel
func (pc *PaymentController) Store(c *fiber.Ctx) error {
	var req paymentTypes.PaymentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if err := req.Validate(); err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}

	claims, ok := c.Locals("user").(map[string]interface{})
	if !ok {
		return pc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
			Data:    nil,
		})
	}
	userUUID, _ := claims["uuid"].(string)
	userInfo, err := utils.GetUserByUUID(userUUID)
	if err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: err.Error(),
			Data:    nil,
		})
	}

	var sh shipperModel.Shipper
	if err := pc.DB.First(&sh, req.ShipperID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return pc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Shipper not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find shipper", err)
		return pc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	// Every listed parcel must exist and belong to the paid shipper.
	var parcels []parcelModel.Parcel
	if err := pc.DB.Where("id IN ? AND shipper_id = ?", req.ParcelIDs, sh.ID).Find(&parcels).Error; err != nil {
		logger.Error("Failed to load parcels", err)
		return pc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}
	if len(parcels) != len(req.ParcelIDs) {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Some parcels do not exist or do not belong to this shipper",
			Data:    nil,
		})
	}

	var payment paymentModel.Payment

	err = pc.DB.Transaction(func(tx *gorm.DB) error {
		payment = paymentModel.Payment{
			Reference: utils.GenerateReference("PAY"),
			Amount:    req.Amount,
			Method:    req.Method,
			ShipperID: sh.ID,
			CreatedBy: userInfo.ID,
		}
		if err := tx.Create(&payment).Error; err != nil {
			logger.Error("Failed to create payment", err)
			return err
		}

		for i := range parcels {
			p := &parcels[i]

			if err := tx.Exec("INSERT INTO payment_parcels (payment_id, parcel_id) VALUES (?, ?)",
				payment.ID, p.ID).Error; err != nil {
				return err
			}

			next, changed := parcelModel.PaymentTransition(p.Status)
			if !changed {
				continue
			}

			previous := p.Status
			p.Status = next
			if err := tx.Model(&parcelModel.Parcel{}).Where("id = ?", p.ID).
				Update("status", next).Error; err != nil {
				return err
			}

			notes := fmt.Sprintf("Paiement %s", payment.Reference)
			if err := pc.History.AppendRecord(tx, p.ID, next, &previous, nil, &userInfo.ID, nil, &notes); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save payment",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Payment %s recorded for shipper %s", payment.Reference, sh.Code))

	var created paymentModel.Payment
	if err := pc.DB.Preload("Shipper").Preload("Parcels").First(&created, payment.ID).Error; err != nil {
		logger.Error("Failed to load created payment data", err)
		return pc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Payment created but failed to retrieve complete data",
			Data:    nil,
		})
	}

	return pc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Payment recorded successfully",
		Data:    created,
	})
}

// Index lists payments, optionally restricted to one calendar month
// (month=YYYY-MM) or one shipper
func (pc *PaymentController) Index(c *fiber.Ctx) error {
	query := pc.DB.Model(&paymentModel.Payment{}).Preload("Shipper").Preload("Parcels")

	if month := c.Query("month"); month != "" {
		t, err := time.Parse("2006-01", month)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid month format, expected YYYY-MM",
				Data:    nil,
			})
		}
		start := now.With(t).BeginningOfMonth()
		end := now.With(t).EndOfMonth()
		query = query.Where("created_at BETWEEN ? AND ?", start, end)
	}

	if shipperID := c.Query("shipper_id"); shipperID != "" {
		query = query.Where("shipper_id = ?", shipperID)
	}

	var payments []paymentModel.Payment
	if err := query.Order("created_at DESC").Find(&payments).Error; err != nil {
		logger.Error("Failed to list payments", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Payments fetched successfully",
		Data:    payments,
	})
}

// Show returns one payment by id
func (pc *PaymentController) Show(c *fiber.Ctx) error {
	var payment paymentModel.Payment
	if err := pc.DB.Preload("Shipper").Preload("Parcels").First(&payment, c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Payment not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find payment", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Payment fetched successfully",
		Data:    payment,
	})
}
