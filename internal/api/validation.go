package api

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Human-readable labels for DTO fields, keyed by struct field name.
var fieldLabels = map[string]string{
	"Name":         "Name",
	"Email":        "Email",
	"Password":     "Password",
	"RefreshToken": "Refresh token",
	"FCMToken":     "FCM token",
	"Platform":     "Platform",
	"Title":        "Title",
	"Body":         "Body",
	"UserID":       "userId",
	"ChannelName":  "Channel name",
	"ThumbnailURL": "Thumbnail URL",
	"VideoURL":     "Video URL",
	"Token":        "FCM token",
}

// validationMessage converts a validator error into the message for the
// first violated field. Violations beyond the first are not reported.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid input"
	}

	fe := verrs[0]
	label := fieldLabels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", label)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: android, ios, web", label)
	case "gte":
		return fmt.Sprintf("Invalid %s", fe.StructField())
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}
