package parcel

import (
	"fmt"
	"os"
	"strconv"

	"quickzone-backend/constants"
	"quickzone-backend/logger"
	"quickzone-backend/middleware"
	missionModel "quickzone-backend/models/mission"
	parcelModel "quickzone-backend/models/parcel"
	shipperModel "quickzone-backend/models/shipper"
	"quickzone-backend/services/fees"
	"quickzone-backend/services/timeline"
	"quickzone-backend/services/tracking"
	"quickzone-backend/types"
	parcelTypes "quickzone-backend/types/parcel"
	"quickzone-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ParcelController handles parcel-related HTTP requests
type ParcelController struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	History *tracking.HistoryStore

	// strictTransitions enables the predecessor table on status writes
	// (TRANSITION_MODE=strict). The permissive default matches the
	// historical dashboard behavior.
	strictTransitions bool
}

// NewParcelController creates a new parcel controller
func NewParcelController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *ParcelController {
	return &ParcelController{
		DB:                db,
		Logger:            asyncLogger,
		History:           tracking.NewHistoryStore(db),
		strictTransitions: os.Getenv("TRANSITION_MODE") == "strict",
	}
}

// Helper function to log API requests and responses
func (pc *ParcelController) logAPIRequest(c *fiber.Ctx) {
	logEntry := utils.CreateSanitizedLogEntry(c)
	pc.Logger.Log(logEntry)
}

// Helper function to send response and log in one call
func (pc *ParcelController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	pc.logAPIRequest(c)
	return result
}

func currentUserID(c *fiber.Ctx) (uint, string, error) {
	claims, ok := c.Locals("user").(map[string]interface{})
	if !ok {
		return 0, "", fmt.Errorf("invalid user claims")
	}

	userUUID, ok := claims["uuid"].(string)
	if !ok || userUUID == "" {
		return 0, "", fmt.Errorf("user UUID not found in token")
	}

	userInfo, err := utils.GetUserByUUID(userUUID)
	if err != nil {
		return 0, "", err
	}

	governorate := ""
	if g, ok := claims["governorate"].(string); ok {
		governorate = g
	}

	return userInfo.ID, governorate, nil
}

// Store creates a new parcel with a generated tracking number, an immutable
// client code and its initial "En attente" history row
func (pc *ParcelController) Store(c *fiber.Ctx) error {
	var req parcelTypes.ParcelCreateRequest
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

	if !utils.ValidatePhoneNumber(req.RecipientPhone) {
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid recipient phone number",
			Data:    nil,
		})
	}

	userID, _, err := currentUserID(c)
	if err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: err.Error(),
			Data:    nil,
		})
	}

	var sh shipperModel.Shipper
	if err := pc.DB.Preload("Agency").First(&sh, req.ShipperID).Error; err != nil {
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

	deliveryFees := fees.ComputeDeliveryFee(sh.BaseDeliveryFee, req.Weight)

	var p parcelModel.Parcel

	err = pc.DB.Transaction(func(tx *gorm.DB) error {
		p = parcelModel.Parcel{
			TrackingNumber:   utils.GenerateTrackingNumber(),
			ClientCode:       utils.GenerateClientCode(),
			Status:           parcelModel.StatusEnAttente,
			Weight:           req.Weight,
			Price:            req.Price,
			DeliveryFees:     deliveryFees,
			Destination:      req.Destination,
			RecipientName:    req.RecipientName,
			RecipientPhone:   req.RecipientPhone,
			RecipientAddress: req.RecipientAddress,
			ShipperID:        sh.ID,
			CreatedBy:        userID,
		}

		if err := tx.Create(&p).Error; err != nil {
			logger.Error("Failed to create parcel", err)
			return err
		}

		return pc.History.AppendRecord(tx, p.ID, parcelModel.StatusEnAttente, nil, nil, &userID, nil, nil)
	})

	if err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save parcel",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Parcel created successfully with tracking number: %s", p.TrackingNumber))

	var created parcelModel.Parcel
	if err := pc.DB.Preload("Shipper.Agency").First(&created, p.ID).Error; err != nil {
		logger.Error("Failed to load created parcel data", err)
		return pc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Parcel created but failed to retrieve complete data",
			Data:    nil,
		})
	}

	return pc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Parcel created successfully",
		Data:    created,
	})
}

// Index lists parcels with optional status filtering and pagination
func (pc *ParcelController) Index(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	query := pc.DB.Model(&parcelModel.Parcel{}).Preload("Shipper")

	if status := c.Query("status"); status != "" {
		if !parcelModel.ParcelStatus(status).IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Unknown status filter",
				Data:    nil,
			})
		}
		query = query.Where("status = ?", status)
	}

	if shipperID := c.Query("shipper_id"); shipperID != "" {
		query = query.Where("shipper_id = ?", shipperID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count parcels", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	var parcels []parcelModel.Parcel
	if err := query.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&parcels).Error; err != nil {
		logger.Error("Failed to list parcels", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Parcels fetched successfully",
		Data: map[string]interface{}{
			"parcels": parcels,
			"total":   total,
			"page":    page,
			"limit":   limit,
		},
	})
}

// Show returns one parcel by id
func (pc *ParcelController) Show(c *fiber.Ctx) error {
	var p parcelModel.Parcel
	if err := pc.DB.Preload("Shipper.Agency").First(&p, c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Parcel not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find parcel", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Parcel fetched successfully",
		Data:    p,
	})
}

// Update mutates a parcel; a status change appends a tracking-history row in
// the same transaction
func (pc *ParcelController) Update(c *fiber.Ctx) error {
	var req parcelTypes.ParcelUpdateRequest
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

	userID, _, err := currentUserID(c)
	if err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: err.Error(),
			Data:    nil,
		})
	}

	var p parcelModel.Parcel
	if err := pc.DB.Preload("Shipper").First(&p, c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return pc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Parcel not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find parcel", err)
		return pc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	previousStatus := p.Status
	statusChanged := false

	if req.Status != nil {
		newStatus := parcelModel.ParcelStatus(*req.Status)
		if newStatus != p.Status {
			if pc.strictTransitions && !parcelModel.CanTransition(p.Status, newStatus) {
				return pc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
					Status:  fiber.StatusBadRequest,
					Message: fmt.Sprintf("Transition from %q to %q is not allowed", p.Status, newStatus),
					Data:    nil,
				})
			}
			p.Status = newStatus
			statusChanged = true
		}
	}

	if req.Weight != nil && *req.Weight != p.Weight {
		p.Weight = *req.Weight
		p.DeliveryFees = fees.ComputeDeliveryFee(p.Shipper.BaseDeliveryFee, p.Weight)
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Destination != nil {
		p.Destination = *req.Destination
	}
	if req.RecipientName != nil {
		p.RecipientName = *req.RecipientName
	}
	if req.RecipientPhone != nil {
		p.RecipientPhone = *req.RecipientPhone
	}
	if req.RecipientAddress != nil {
		p.RecipientAddress = *req.RecipientAddress
	}

	err = pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&p).Error; err != nil {
			logger.Error("Failed to update parcel", err)
			return err
		}

		if statusChanged {
			return pc.History.AppendRecord(tx, p.ID, p.Status, &previousStatus, nil, &userID, req.Location, req.Notes)
		}
		return nil
	})

	if err != nil {
		return pc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update parcel",
			Data:    nil,
		})
	}

	if statusChanged {
		logger.Success(fmt.Sprintf("Parcel %s status changed from %q to %q", p.TrackingNumber, previousStatus, p.Status))
	}

	return pc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Parcel updated successfully",
		Data:    p,
	})
}

// Delete removes a parcel; tracking history cascades at the database level
func (pc *ParcelController) Delete(c *fiber.Ctx) error {
	if !middleware.HasAnyPermission(c, constants.AdminPermissions...) {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: "Insufficient permissions",
			Data:    nil,
		})
	}

	var p parcelModel.Parcel
	if err := pc.DB.First(&p, c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Parcel not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find parcel", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	if err := pc.DB.Delete(&p).Error; err != nil {
		logger.Error("Failed to delete parcel", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete parcel",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Parcel %s deleted", p.TrackingNumber))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Parcel deleted successfully",
		Data:    nil,
	})
}

// TrackingHistory returns the raw history rows newest first. The response
// shape matches what the dashboard expects from the tracking-history
// endpoint.
func (pc *ParcelController) TrackingHistory(c *fiber.Ctx) error {
	var p parcelModel.Parcel
	if err := pc.DB.First(&p, c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Parcel not found",
			})
		}
		logger.Error("Failed to find parcel", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Internal server error",
		})
	}

	records, err := pc.History.ListForParcelDesc(p.ID)
	if err != nil {
		logger.Error("Failed to list tracking history", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Internal server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"tracking_history": records,
		},
	})
}

// Timeline returns the reconstructed lifecycle steps for one parcel
func (pc *ParcelController) Timeline(c *fiber.Ctx) error {
	_, governorate, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: err.Error(),
			Data:    nil,
		})
	}

	var p parcelModel.Parcel
	if err := pc.DB.Preload("Shipper.Agency").First(&p, c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Parcel not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find parcel", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	steps, err := pc.reconstructTimeline(&p, timeline.Viewer{Governorate: governorate})
	if err != nil {
		logger.Error("Failed to reconstruct timeline", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Timeline reconstructed successfully",
		Data: map[string]interface{}{
			"tracking_number": p.TrackingNumber,
			"status":          p.Status,
			"timeline":        steps,
		},
	})
}

// Track is the public tracking-number lookup used by the marketing page
func (pc *ParcelController) Track(c *fiber.Ctx) error {
	trackingNumber := c.Params("trackingNumber")

	var p parcelModel.Parcel
	if err := pc.DB.Preload("Shipper.Agency").Where("tracking_number = ?", trackingNumber).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Parcel not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find parcel", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	// Anonymous viewer: the governorate fallback never applies here.
	steps, err := pc.reconstructTimeline(&p, timeline.Viewer{})
	if err != nil {
		logger.Error("Failed to reconstruct timeline", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Parcel tracked successfully",
		Data: map[string]interface{}{
			"tracking_number": p.TrackingNumber,
			"status":          p.Status,
			"destination":     p.Destination,
			"timeline":        steps,
		},
	})
}

// reconstructTimeline loads the history rows and mission references, then
// delegates to the timeline service.
func (pc *ParcelController) reconstructTimeline(p *parcelModel.Parcel, viewer timeline.Viewer) ([]timeline.Step, error) {
	records, err := pc.History.ListForParcel(p.ID)
	if err != nil {
		return nil, err
	}

	missionIDs := make([]uint, 0)
	seen := make(map[uint]bool)
	for _, rec := range records {
		if rec.MissionID != nil && !seen[*rec.MissionID] {
			seen[*rec.MissionID] = true
			missionIDs = append(missionIDs, *rec.MissionID)
		}
	}

	missionNumbers := make(map[uint]string)
	if len(missionIDs) > 0 {
		var missions []missionModel.PickupMission
		if err := pc.DB.Where("id IN ?", missionIDs).Find(&missions).Error; err != nil {
			return nil, err
		}
		for _, m := range missions {
			missionNumbers[m.ID] = m.MissionNumber
		}
	}

	return timeline.Reconstruct(p, records, missionNumbers, viewer), nil
}
