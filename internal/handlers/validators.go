package handlers

import (
	"github.com/budgetcr/budget_backend/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators installs the domain validation tags used by the
// request DTOs on gin's binding validator. Must run before the router serves
// traffic.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("currencycode", func(fl validator.FieldLevel) bool {
		return domain.IsSupportedCurrency(domain.CurrencyCode(fl.Field().String()))
	})
	_ = v.RegisterValidation("cadence", func(fl validator.FieldLevel) bool {
		return domain.Cadence(fl.Field().String()).Valid()
	})
}
