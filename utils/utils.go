package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"quickzone-backend/database"
	"quickzone-backend/models/user"
	"quickzone-backend/types"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUserByUUID retrieves a user by their UUID from the database
func GetUserByUUID(uuid string) (*user.User, error) {
	if uuid == "" {
		return nil, errors.New("UUID cannot be empty")
	}

	var userModel user.User
	if err := database.DB.Where("uuid = ?", uuid).First(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &userModel, nil
}

// GenerateTrackingNumber creates a new client-facing tracking number,
// e.g. "QZ-3F0A9C21D4E8".
func GenerateTrackingNumber() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "QZ-" + raw[:12]
}

// GenerateClientCode creates the immutable client code assigned to a parcel
// at creation, e.g. "CL-8A1B2C3D".
func GenerateClientCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "CL-" + raw[:8]
}

// GenerateReference creates a prefixed reference for missions and payments,
// e.g. GenerateReference("PIK") -> "PIK-5E6F7A8B".
func GenerateReference(prefix string) string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return prefix + "-" + raw[:8]
}

// ValidatePhoneNumber validates a Tunisian phone number.
// Allows: 8 digits starting with 2, 4, 5 or 9, optionally prefixed by +216.
func ValidatePhoneNumber(phone string) bool {
	phone = strings.TrimSpace(phone)

	pattern := `^(?:\+216)?[2459][0-9]{7}$`

	re := regexp.MustCompile(pattern)

	return re.MatchString(phone)
}

// sanitizeRequestBody sanitizes request body for file uploads and large content
func sanitizeRequestBody(c *fiber.Ctx) string {
	contentType := c.Get("Content-Type")
	if strings.Contains(contentType, "multipart/form-data") {
		return "[MULTIPART_FORM_DATA]"
	}

	body := string(c.Body())
	if len(body) > 1000 && (strings.Contains(body, "data:image/") ||
		strings.Contains(body, "base64") ||
		isLikelyBase64(body)) {
		return "[LARGE_REQUEST_BODY_WITH_POSSIBLE_FILE_CONTENT]"
	}

	return body
}

// isLikelyBase64 detects if content looks like base64
func isLikelyBase64(content string) bool {
	if len(content) < 100 {
		return false
	}

	base64Chars := 0
	for _, char := range content {
		if (char >= 'A' && char <= 'Z') ||
			(char >= 'a' && char <= 'z') ||
			(char >= '0' && char <= '9') ||
			char == '+' || char == '/' || char == '=' {
			base64Chars++
		}
	}

	return float64(base64Chars)/float64(len(content)) > 0.8
}

// CreateSanitizedLogEntry creates a deep copied and sanitized log entry for logging
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	// Deep copies prevent fasthttp buffer reuse from corrupting the entry
	// after the handler returns.
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := sanitizeRequestBody(c)
	responseBody := string(append([]byte(nil), c.Response().Body()...))

	requestHeaders := make([]byte, len(c.Request().Header.Header()))
	copy(requestHeaders, c.Request().Header.Header())

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	return types.LogEntry{
		Method:          method,
		URL:             url,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  string(requestHeaders),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}
