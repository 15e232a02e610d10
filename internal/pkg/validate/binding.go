package validate

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"barbershop/internal/pkg/timeslot"
)

// RegisterBindings adds the domain formats to gin's binding validator:
// "day" for YYYY-MM-DD fields and "clock" for HH:MM fields.
func RegisterBindings() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("day", func(fl validator.FieldLevel) bool {
		_, err := timeslot.ParseDay(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := timeslot.ParseClock(fl.Field().String())
		return err == nil
	})
}
