package user

import (
	"quickzone-backend/logger"
	"quickzone-backend/types"
	"quickzone-backend/utils"

	"github.com/gofiber/fiber/v2"
)

func GetUserInfo(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(map[string]interface{})
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Invalid user claims",
			Status:  fiber.StatusUnauthorized,
			Data:    nil,
		})
	}

	userUUID, ok := claims["uuid"].(string)
	if !ok || userUUID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "User UUID not found in token",
			Status:  fiber.StatusUnauthorized,
			Data:    nil,
		})
	}

	userInfo, err := utils.GetUserByUUID(userUUID)
	if err != nil {
		logger.Error("Error finding user by UUID", err)
		status := fiber.StatusInternalServerError
		msg := "Database error"
		if err.Error() == "user not found" {
			status = fiber.StatusNotFound
			msg = "User not found"
		}
		return c.Status(status).JSON(types.ApiResponse{
			Message: msg,
			Status:  status,
			Data:    nil,
		})
	}

	response := map[string]interface{}{
		"uuid":        userInfo.Uuid,
		"name":        userInfo.Name,
		"email":       userInfo.Email,
		"role":        userInfo.Role,
		"governorate": userInfo.Governorate,
		"agency_id":   userInfo.AgencyID,
		"permissions": userInfo.Permissions,
		"created_at":  userInfo.CreatedAt.Format("2006-01-02 15:04:05"),
		"updated_at":  userInfo.UpdatedAt.Format("2006-01-02 15:04:05"),
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "User fetched successfully",
		Status:  fiber.StatusOK,
		Data:    response,
	})
}
