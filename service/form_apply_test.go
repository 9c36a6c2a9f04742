package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stayparse/reservation-import/dto"
)

func applyFixture() dto.ParsedReservation {
	guests := 2
	rooms := 1
	return dto.ParsedReservation{
		Provider:           dto.ProviderBooking,
		ConfirmationNumber: "1234.567.890",
		StartDateTime:      "2026-01-31T15:00",
		EndDateTime:        "2026-02-08T11:00",
		NotesAppend:        "PIN: 4321",
		Hotel: dto.HotelDetails{
			Name:           "Hotel Playa Sol",
			Address:        "Calle Mayor 1, Madrid",
			Phone:          "+34 911 222 333",
			NumberOfGuests: &guests,
			NumberOfRooms:  &rooms,
			RoomTypeRaw:    "Apartamento de 2 dormitorios",
			CheckInTime:    "15:00",
			CheckOutTime:   "11:00",
		},
	}
}

func TestApplyToFormFillsEmptyFields(t *testing.T) {
	merged := ApplyToForm(applyFixture(), dto.FormValues{})

	assert.Equal(t, "1234.567.890", merged.ConfirmationNumber)
	assert.Equal(t, "2026-01-31T15:00", merged.StartDateTime)
	assert.Equal(t, "2026-02-08T11:00", merged.EndDateTime)
	assert.Equal(t, "Hotel Playa Sol", merged.HotelName)
	assert.Equal(t, "Calle Mayor 1, Madrid", merged.Address)
	assert.Equal(t, "+34 911 222 333", merged.Phone)
	assert.Equal(t, "2", merged.NumberOfGuests)
	assert.Equal(t, "1", merged.NumberOfRooms)
	assert.Equal(t, "Apartamento de 2 dormitorios", merged.RoomType)
	assert.Equal(t, "15:00", merged.CheckInTime)
	assert.Equal(t, "11:00", merged.CheckOutTime)
	assert.Equal(t, "PIN: 4321", merged.Notes)
}

func TestApplyToFormNeverClobbersUserInput(t *testing.T) {
	form := dto.FormValues{
		ConfirmationNumber: "USER-ENTERED",
		HotelName:          "My own name",
		NumberOfGuests:     "4",
	}

	merged := ApplyToForm(applyFixture(), form)

	assert.Equal(t, "USER-ENTERED", merged.ConfirmationNumber)
	assert.Equal(t, "My own name", merged.HotelName)
	assert.Equal(t, "4", merged.NumberOfGuests)
	// Untouched fields still fill in.
	assert.Equal(t, "Calle Mayor 1, Madrid", merged.Address)
}

func TestApplyToFormAlwaysOverwritesTimeFields(t *testing.T) {
	form := dto.FormValues{
		CheckInTime:  "14:00",
		CheckOutTime: "10:00",
	}

	merged := ApplyToForm(applyFixture(), form)

	assert.Equal(t, "15:00", merged.CheckInTime)
	assert.Equal(t, "11:00", merged.CheckOutTime)
}

func TestApplyToFormTimeFieldsSurviveAbsentParse(t *testing.T) {
	parsed := applyFixture()
	parsed.Hotel.CheckInTime = ""
	parsed.Hotel.CheckOutTime = ""

	form := dto.FormValues{CheckInTime: "14:00", CheckOutTime: "10:00"}
	merged := ApplyToForm(parsed, form)

	assert.Equal(t, "14:00", merged.CheckInTime)
	assert.Equal(t, "10:00", merged.CheckOutTime)
}

func TestApplyToFormNotesAppend(t *testing.T) {
	merged := ApplyToForm(applyFixture(), dto.FormValues{Notes: "Bring towels"})
	assert.Equal(t, "Bring towels\nPIN: 4321", merged.Notes)

	// Appending twice stays idempotent.
	again := ApplyToForm(applyFixture(), merged)
	assert.Equal(t, "Bring towels\nPIN: 4321", again.Notes)

	// No note means notes stay untouched.
	parsed := applyFixture()
	parsed.NotesAppend = ""
	kept := ApplyToForm(parsed, dto.FormValues{Notes: "Bring towels"})
	assert.Equal(t, "Bring towels", kept.Notes)
}
