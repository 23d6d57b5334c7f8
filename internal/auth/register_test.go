package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validInput() RegisterMasterInput {
	return RegisterMasterInput{
		TaxID:       "12345678000199",
		CompanyName: "Imobiliaria Sol",
		Phone:       "11999990000",
		AdminName:   "Ana Souza",
		Email:       "ana@example.com",
		Password:    "secret123",
	}
}

func TestRegisterMasterValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RegisterMasterInput)
	}{
		{"tax id too short", func(in *RegisterMasterInput) { in.TaxID = "123" }},
		{"tax id with letters", func(in *RegisterMasterInput) { in.TaxID = "1234567800019a" }},
		{"missing company name", func(in *RegisterMasterInput) { in.CompanyName = "" }},
		{"missing admin name", func(in *RegisterMasterInput) { in.AdminName = "" }},
		{"missing email", func(in *RegisterMasterInput) { in.Email = "" }},
		{"short password", func(in *RegisterMasterInput) { in.Password = "12345" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)

			// Validation fires before any database access.
			result, err := RegisterMaster(context.Background(), nil, input)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}
