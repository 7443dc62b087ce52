package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-hub/domain"
)

type lineItem struct {
	Name   string  `json:"name" validate:"required"`
	Amount float64 `json:"amount" validate:"gt=0"`
}

type payload struct {
	Title      string     `json:"title" validate:"required,max=5"`
	Difficulty string     `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
	Items      []lineItem `json:"items" validate:"required,min=1,dive"`
	Internal   string     `json:"-" validate:"omitempty,uuid"`
}

func TestValidateStruct(t *testing.T) {
	v := NewValidator()

	err := ValidateStruct(v, payload{
		Title:      "Too long title",
		Difficulty: "Extreme",
		Items:      []lineItem{{Name: "Salt", Amount: 1}, {Amount: -2}},
	})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.ErrorIs(t, err, domain.ErrValidationFailed)

	messages := make(map[string]string, len(verr.Details))
	for _, d := range verr.Details {
		messages[d.Field] = d.Message
	}
	assert.Equal(t, map[string]string{
		"title":           "title must be at most 5 characters long",
		"difficulty":      "difficulty must be one of: Easy, Medium, Hard",
		"items[1].name":   "items[1].name is required",
		"items[1].amount": "items[1].amount must be a positive number",
	}, messages)
}

func TestValidateStructEmptyList(t *testing.T) {
	err := ValidateStruct(NewValidator(), payload{Title: "Soup"})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Details, 1)
	assert.Equal(t, "items", verr.Details[0].Field)
	assert.Equal(t, "items must contain at least 1 item", verr.Details[0].Message)
}

func TestValidateStructPasses(t *testing.T) {
	err := ValidateStruct(NewValidator(), payload{Title: "Soup", Items: []lineItem{{Name: "Salt", Amount: 1}}})
	assert.NoError(t, err)
}
