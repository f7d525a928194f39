package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type preferencePayload struct {
	DaysBefore       int    `json:"days_before" validate:"min=1,max=90"`
	NotificationTime string `json:"notification_time" validate:"hhmm"`
}

func TestValidateStructRange(t *testing.T) {
	require.NoError(t, ValidateStruct(&preferencePayload{DaysBefore: 15, NotificationTime: "09:00"}))

	err := ValidateStruct(&preferencePayload{DaysBefore: 120, NotificationTime: "09:00"})
	require.Error(t, err)

	ve, ok := err.(ValidationErrors)
	require.True(t, ok)
	require.Len(t, ve, 1)
	require.Equal(t, "days_before", ve[0].Field)
	require.Equal(t, "max", ve[0].Tag)
}

func TestValidateStructHHMM(t *testing.T) {
	for _, valid := range []string{"00:00", "09:00", "23:59"} {
		require.NoError(t, ValidateStruct(&preferencePayload{DaysBefore: 1, NotificationTime: valid}), valid)
	}

	for _, invalid := range []string{"24:00", "9am", "09:60", "0900"} {
		err := ValidateStruct(&preferencePayload{DaysBefore: 1, NotificationTime: invalid})
		require.Error(t, err, invalid)
	}
}
