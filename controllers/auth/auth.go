package auth

import (
	"fmt"

	"quickzone-backend/constants"
	"quickzone-backend/logger"
	"quickzone-backend/middleware"
	userModel "quickzone-backend/models/user"
	"quickzone-backend/types"
	authTypes "quickzone-backend/types/auth"
	"quickzone-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthController handles registration, login and logout
type AuthController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewAuthController creates a new auth controller
func NewAuthController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *AuthController {
	return &AuthController{
		DB:     db,
		Logger: asyncLogger,
	}
}

// Register creates a new user account with role-derived permissions
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req authTypes.RegisterRequest
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

	if req.Phone != "" && !utils.ValidatePhoneNumber(req.Phone) {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid phone number",
			Data:    nil,
		})
	}

	// Check if a user with the same email already exists
	var existing userModel.User
	err := ac.DB.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "A user with this email already exists",
			Data:    nil,
		})
	} else if err != gorm.ErrRecordNotFound {
		logger.Error("Database error while checking existing user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create user",
			Data:    nil,
		})
	}

	newUser := userModel.User{
		Uuid:         uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		AgencyID:     req.AgencyID,
		Permissions:  constants.RolePermissions[req.Role],
	}
	if req.Phone != "" {
		newUser.Phone = &req.Phone
	}
	if req.Governorate != "" {
		newUser.Governorate = &req.Governorate
	}

	if err := ac.DB.Create(&newUser).Error; err != nil {
		logger.Error("Failed to create user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create user",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("User registered successfully with ID: %d", newUser.ID))

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "User registered successfully",
		Data:    newUser,
	})
}

// Login verifies credentials and issues a JWT
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req authTypes.LoginRequest
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

	var u userModel.User
	if err := ac.DB.Where("email = ?", req.Email).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Status:  fiber.StatusUnauthorized,
				Message: "Invalid email or password",
				Data:    nil,
			})
		}
		logger.Error("Failed to find user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid email or password",
			Data:    nil,
		})
	}

	governorate := ""
	if u.Governorate != nil {
		governorate = *u.Governorate
	}

	permissions := make([]interface{}, 0, len(u.Permissions))
	for _, p := range u.Permissions {
		permissions = append(permissions, p)
	}

	token, err := middleware.SignToken(jwt.MapClaims{
		"uuid":        u.Uuid,
		"email":       u.Email,
		"name":        u.Name,
		"role":        u.Role,
		"governorate": governorate,
		"permissions": permissions,
	})
	if err != nil {
		logger.Error("Failed to sign token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to issue token",
			Data:    nil,
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access",
		Value:    token,
		HTTPOnly: true,
		Path:     "/",
	})

	logger.Success(fmt.Sprintf("User %s logged in", u.Email))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Login successful",
		Token:   token,
		Data: map[string]interface{}{
			"uuid":        u.Uuid,
			"name":        u.Name,
			"email":       u.Email,
			"role":        u.Role,
			"governorate": governorate,
			"permissions": u.Permissions,
		},
	})
}

// LogOut clears the access cookie
func (ac *AuthController) LogOut(c *fiber.Ctx) error {
	c.ClearCookie("access")

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Logged out successfully",
		Data:    nil,
	})
}
