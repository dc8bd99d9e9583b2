package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/clinicdesk/booking-api/internal/schedule"
)

// RegisterCustomValidators wires domain validation rules into gin's
// binding engine. The timeofday rule accepts "HH:MM" or "HH:MM:SS".
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
			_, err := schedule.ParseTimeOfDay(fl.Field().String())
			return err == nil
		})
	}
}
