package dto

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/SscSPs/splitledger/internal/core/identity"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Za-z]{3,5}$`)

// RegisterValidators adds the ledger's custom binding tags to gin's validator:
// account_id accepts a full or shortened account address, currency_code a 3 to 5
// letter code.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("account_id", validateAccountID); err != nil {
		return err
	}
	return v.RegisterValidation("currency_code", validateCurrencyCode)
}

func validateAccountID(fl validator.FieldLevel) bool {
	return identity.LooksLikeAccount(fl.Field().String())
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	return currencyCodePattern.MatchString(fl.Field().String())
}
