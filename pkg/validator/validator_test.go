package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Date    string `json:"date" validate:"required,isodate"`
	Time    string `json:"time" validate:"required,hhmm"`
	Address string `json:"address" validate:"required,max=10"`
	Score   int    `json:"score" validate:"min=1,max=5"`
}

func TestValidate_OK(t *testing.T) {
	assert.Nil(t, Validate(&sample{Date: "2025-06-02", Time: "09:30", Address: "Calle 1", Score: 5}))
}

func TestValidate_UsesJSONNames(t *testing.T) {
	errs := Validate(&sample{Date: "02/06/2025", Time: "25:00", Score: 6})

	assert.Equal(t, map[string]string{
		"date":    "isodate",
		"time":    "hhmm",
		"address": "required",
		"score":   "max",
	}, errs)
	assert.Equal(t, "address: required; date: isodate; score: max; time: hhmm", Message(errs))
}
