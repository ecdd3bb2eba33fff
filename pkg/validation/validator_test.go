package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/devconnector-api/pkg/response"
)

type sample struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	From     string `json:"from" binding:"required,date"`
	To       string `json:"to" binding:"omitempty,date"`
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2020-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2020-03-01T10:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, 8, d.Hour())

	_, err = ParseDate("03/01/2020")
	assert.Error(t, err)
}

func TestParseOptionalDate(t *testing.T) {
	d, err := ParseOptionalDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseOptionalDate("2021-01-01")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 2021, d.Year())
}

func TestToErrors_FieldMessages(t *testing.T) {
	Init()
	err := binding.Validator.ValidateStruct(&sample{Email: "nope", Password: "123", From: "yesterday", To: "2020-01-01"})
	require.Error(t, err)

	items := ToErrors(err, map[string]string{"name": "Name is required"})
	byParam := map[string]string{}
	for _, it := range items {
		byParam[it.Param] = it.Msg
	}
	assert.Equal(t, "Name is required", byParam["name"])
	assert.Equal(t, "email must be a valid email", byParam["email"])
	assert.Equal(t, "password must be 6 or more characters", byParam["password"])
	assert.Contains(t, byParam["from"], "must be a date")
	assert.NotContains(t, byParam, "to")
}

func TestToErrors_Payload(t *testing.T) {
	assert.Nil(t, ToErrors(nil, nil))
	assert.Equal(t, []response.ErrorItem{{Msg: "invalid payload", Param: "payload"}}, ToErrors(errors.New("x"), nil))
}
