package mission

import (
	"fmt"

	"quickzone-backend/logger"
	missionModel "quickzone-backend/models/mission"
	parcelModel "quickzone-backend/models/parcel"
	shipperModel "quickzone-backend/models/shipper"
	userModel "quickzone-backend/models/user"
	"quickzone-backend/services/tracking"
	"quickzone-backend/types"
	missionTypes "quickzone-backend/types/mission"
	"quickzone-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MissionController handles pickup-mission HTTP requests
type MissionController struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	History *tracking.HistoryStore
}

// NewMissionController creates a new mission controller
func NewMissionController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *MissionController {
	return &MissionController{
		DB:      db,
		Logger:  asyncLogger,
		History: tracking.NewHistoryStore(db),
	}
}

// Helper function to log API requests and responses
func (mc *MissionController) logAPIRequest(c *fiber.Ctx) {
	logEntry := utils.CreateSanitizedLogEntry(c)
	mc.Logger.Log(logEntry)
}

// Helper function to send response and log in one call
func (mc *MissionController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	mc.logAPIRequest(c)
	return result
}

func (mc *MissionController) actorID(c *fiber.Ctx) (uint, error) {
	claims, ok := c.Locals("user").(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("invalid user claims")
	}

	userUUID, ok := claims["uuid"].(string)
	if !ok || userUUID == "" {
		return 0, fmt.Errorf("user UUID not found in token")
	}

	userInfo, err := utils.GetUserByUUID(userUUID)
	if err != nil {
		return 0, err
	}
	return userInfo.ID, nil
}

// Store creates a pickup mission with its demands and flags every listed
// parcel as "À enlever"
func (mc *MissionController) Store(c *fiber.Ctx) error {
	var req missionTypes.MissionCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return mc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if err := req.Validate(); err != nil {
		return mc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}

	userID, err := mc.actorID(c)
	if err != nil {
		return mc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: err.Error(),
			Data:    nil,
		})
	}

	var driver userModel.User
	if err := mc.DB.First(&driver, req.DriverID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return mc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Driver not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find driver", err)
		return mc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}
	if driver.Role != userModel.RoleLivreur {
		return mc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Assigned user is not a driver",
			Data:    nil,
		})
	}

	var mission missionModel.PickupMission

	err = mc.DB.Transaction(func(tx *gorm.DB) error {
		mission = missionModel.PickupMission{
			MissionNumber: utils.GenerateReference("PIK"),
			Status:        missionModel.MissionStatusEnAttente,
			DriverID:      driver.ID,
			CreatedBy:     userID,
		}
		if err := tx.Create(&mission).Error; err != nil {
			logger.Error("Failed to create mission", err)
			return err
		}

		for _, demandReq := range req.Demands {
			var sh shipperModel.Shipper
			if err := tx.First(&sh, demandReq.ShipperID).Error; err != nil {
				return fmt.Errorf("shipper %d not found", demandReq.ShipperID)
			}

			var parcels []parcelModel.Parcel
			if err := tx.Where("id IN ? AND shipper_id = ?", demandReq.ParcelIDs, sh.ID).Find(&parcels).Error; err != nil {
				return err
			}
			if len(parcels) != len(demandReq.ParcelIDs) {
				return fmt.Errorf("some parcels do not exist or do not belong to shipper %d", sh.ID)
			}

			demand := missionModel.PickupDemand{
				MissionID: mission.ID,
				ShipperID: sh.ID,
				Parcels:   parcels,
			}
			if err := tx.Create(&demand).Error; err != nil {
				logger.Error("Failed to create pickup demand", err)
				return err
			}

			for i := range parcels {
				p := &parcels[i]
				if p.Status == parcelModel.StatusAEnlever {
					continue
				}
				previous := p.Status
				p.Status = parcelModel.StatusAEnlever
				if err := tx.Model(&parcelModel.Parcel{}).Where("id = ?", p.ID).
					Update("status", parcelModel.StatusAEnlever).Error; err != nil {
					return err
				}
				if err := mc.History.AppendRecord(tx, p.ID, parcelModel.StatusAEnlever, &previous, &mission.ID, &userID, nil, nil); err != nil {
					return err
				}
			}
		}

		return nil
	})

	if err != nil {
		return mc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Pickup mission %s created", mission.MissionNumber))

	var created missionModel.PickupMission
	if err := mc.DB.Preload("Driver").Preload("Demands.Shipper").Preload("Demands.Parcels").First(&created, mission.ID).Error; err != nil {
		logger.Error("Failed to load created mission data", err)
		return mc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Mission created but failed to retrieve complete data",
			Data:    nil,
		})
	}

	return mc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Mission created successfully",
		Data:    created,
	})
}

// Index lists pickup missions, optionally filtered by status or driver
func (mc *MissionController) Index(c *fiber.Ctx) error {
	query := mc.DB.Model(&missionModel.PickupMission{}).
		Preload("Driver").
		Preload("Demands.Shipper").
		Preload("Demands.Parcels")

	if status := c.Query("status"); status != "" {
		if !missionModel.MissionStatus(status).IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Unknown status filter",
				Data:    nil,
			})
		}
		query = query.Where("status = ?", status)
	}

	if driverID := c.Query("driver_id"); driverID != "" {
		query = query.Where("driver_id = ?", driverID)
	}

	var missions []missionModel.PickupMission
	if err := query.Order("created_at DESC").Find(&missions).Error; err != nil {
		logger.Error("Failed to list missions", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Missions fetched successfully",
		Data:    missions,
	})
}

// Show returns one mission by id
func (mc *MissionController) Show(c *fiber.Ctx) error {
	var mission missionModel.PickupMission
	if err := mc.DB.Preload("Driver").Preload("Demands.Shipper").Preload("Demands.Parcels").
		First(&mission, c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Mission not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find mission", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Mission fetched successfully",
		Data:    mission,
	})
}

// Scan records the physical pickup of one parcel during a mission. The
// parcel moves to "Au dépôt" and the mission to "En cours".
func (mc *MissionController) Scan(c *fiber.Ctx) error {
	var req missionTypes.ScanRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return mc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if err := req.Validate(); err != nil {
		return mc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}

	userID, err := mc.actorID(c)
	if err != nil {
		return mc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: err.Error(),
			Data:    nil,
		})
	}

	var mission missionModel.PickupMission
	if err := mc.DB.First(&mission, c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return mc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Mission not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find mission", err)
		return mc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	if mission.Status == missionModel.MissionStatusTerminee {
		return mc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Mission is already completed",
			Data:    nil,
		})
	}

	var p parcelModel.Parcel
	if err := mc.DB.Where("tracking_number = ?", req.TrackingNumber).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return mc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Parcel not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find parcel", err)
		return mc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	// The parcel must belong to one of this mission's demands.
	var membership int64
	if err := mc.DB.Table("demand_parcels").
		Joins("JOIN pickup_demands ON pickup_demands.id = demand_parcels.pickup_demand_id").
		Where("pickup_demands.mission_id = ? AND demand_parcels.parcel_id = ?", mission.ID, p.ID).
		Count(&membership).Error; err != nil {
		logger.Error("Failed to check mission membership", err)
		return mc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}
	if membership == 0 {
		return mc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Parcel does not belong to this mission",
			Data:    nil,
		})
	}

	err = mc.DB.Transaction(func(tx *gorm.DB) error {
		previous := p.Status
		p.Status = parcelModel.StatusAuDepot
		if err := tx.Model(&parcelModel.Parcel{}).Where("id = ?", p.ID).
			Update("status", parcelModel.StatusAuDepot).Error; err != nil {
			return err
		}

		var location *string
		if req.Location != "" {
			location = &req.Location
		}
		if err := mc.History.AppendRecord(tx, p.ID, parcelModel.StatusAuDepot, &previous, &mission.ID, &userID, location, nil); err != nil {
			return err
		}

		if mission.Status != missionModel.MissionStatusEnCours {
			mission.Status = missionModel.MissionStatusEnCours
			if err := tx.Model(&missionModel.PickupMission{}).Where("id = ?", mission.ID).
				Update("status", missionModel.MissionStatusEnCours).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		logger.Error("Failed to record scan", err)
		return mc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to record scan",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Parcel %s scanned into mission %s", p.TrackingNumber, mission.MissionNumber))

	return mc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Parcel scanned successfully",
		Data: map[string]interface{}{
			"tracking_number": p.TrackingNumber,
			"status":          p.Status,
			"mission_number":  mission.MissionNumber,
			"mission_status":  mission.Status,
		},
	})
}

// Complete marks a mission as finished
func (mc *MissionController) Complete(c *fiber.Ctx) error {
	var mission missionModel.PickupMission
	if err := mc.DB.First(&mission, c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Mission not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find mission", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	if mission.Status == missionModel.MissionStatusTerminee {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Mission is already completed",
			Data:    nil,
		})
	}

	if err := mc.DB.Model(&missionModel.PickupMission{}).Where("id = ?", mission.ID).
		Update("status", missionModel.MissionStatusTerminee).Error; err != nil {
		logger.Error("Failed to complete mission", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to complete mission",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Mission %s completed", mission.MissionNumber))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Mission completed successfully",
		Data:    nil,
	})
}
