package validation

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,pwd"`
	OTP      string `json:"otp" validate:"omitempty,otp"`
	Phone    string `json:"phone" validate:"omitempty,phone"`
	Amount   int64  `json:"amount" validate:"omitempty,money"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	Register(v)
	return v
}

func TestToDetails_FieldMessages(t *testing.T) {
	err := newValidator().Struct(sample{Email: "nope", Password: "123", OTP: "12ab56", Phone: "0244", Amount: -5})

	d := ToDetails(err)
	assert.Equal(t, "must be a valid email", d["email"])
	assert.Equal(t, "must be between 6 and 72 characters long", d["password"])
	assert.Equal(t, "must be a 6-digit code", d["otp"])
	assert.Equal(t, "must be a valid phone number", d["phone"])
	assert.Equal(t, "must be greater than 0", d["amount"])
}

func TestToDetails_Required(t *testing.T) {
	d := ToDetails(newValidator().Struct(sample{}))
	assert.Equal(t, "is required", d["email"])
	assert.Equal(t, "is required", d["password"])
}

func TestToDetails_Valid(t *testing.T) {
	assert.Nil(t, ToDetails(newValidator().Struct(sample{Email: "a@x.com", Password: "secret1", OTP: "004217", Phone: "+233244000000", Amount: 10})))
}

func TestToDetails_InvalidJSON(t *testing.T) {
	var s sample
	err := json.Unmarshal([]byte(`{"email":`), &s)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
}
