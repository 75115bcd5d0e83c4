package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Registry codes are upper-case with an optional network suffix, e.g.
// "BTC" or "USDT_TRC20".
var currencyCodePattern = regexp.MustCompile(`^[A-Z0-9]{2,10}(_[A-Z0-9]{2,10})?$`)

func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currencycode", func(fl validator.FieldLevel) bool {
			return currencyCodePattern.MatchString(fl.Field().String())
		})
	}
}
