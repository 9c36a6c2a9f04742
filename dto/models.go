package dto

import "strings"

type Provider string

const (
	ProviderAuto    Provider = "auto"
	ProviderBooking Provider = "booking"
	ProviderAirbnb  Provider = "airbnb"
	ProviderOther   Provider = "other"
)

// IsValid reports whether p is one of the four known provider values.
func (p Provider) IsValid() bool {
	switch p {
	case ProviderAuto, ProviderBooking, ProviderAirbnb, ProviderOther:
		return true
	}
	return false
}

// HotelDetails groups the property-level fields of a reservation.
// Counts are pointers so "not found" stays distinguishable from zero.
type HotelDetails struct {
	Name           string `json:"name,omitempty"`
	Address        string `json:"address,omitempty"`
	Phone          string `json:"phone,omitempty"`
	NumberOfGuests *int   `json:"number_of_guests,omitempty"`
	NumberOfRooms  *int   `json:"number_of_rooms,omitempty"`
	RoomTypeRaw    string `json:"room_type_raw,omitempty"`
	CheckInTime    string `json:"check_in_time,omitempty"`  // "HH:MM"
	CheckOutTime   string `json:"check_out_time,omitempty"` // "HH:MM"
}

// ParsedReservation is the result of one parser invocation. String fields use
// "" for absent; date-times are local "YYYY-MM-DDTHH:MM" without a zone.
// Confirmation numbers keep their original punctuation since they are opaque
// identifiers, not numbers.
type ParsedReservation struct {
	Provider           Provider     `json:"provider"`
	ConfirmationNumber string       `json:"confirmation_number,omitempty"`
	StartDateTime      string       `json:"start_date_time,omitempty"`
	EndDateTime        string       `json:"end_date_time,omitempty"`
	NotesAppend        string       `json:"notes_append,omitempty"`
	Hotel              HotelDetails `json:"hotel"`
}

// FormValues mirrors the destination form a parsed reservation is applied to.
// The import core never touches a real form; it only merges values.
type FormValues struct {
	ConfirmationNumber string `json:"confirmation_number,omitempty"`
	StartDateTime      string `json:"start_date_time,omitempty"`
	EndDateTime        string `json:"end_date_time,omitempty"`
	HotelName          string `json:"hotel_name,omitempty"`
	Address            string `json:"address,omitempty"`
	Phone              string `json:"phone,omitempty"`
	NumberOfGuests     string `json:"number_of_guests,omitempty"`
	NumberOfRooms      string `json:"number_of_rooms,omitempty"`
	RoomType           string `json:"room_type,omitempty"`
	CheckInTime        string `json:"check_in_time,omitempty"`
	CheckOutTime       string `json:"check_out_time,omitempty"`
	Notes              string `json:"notes,omitempty"`
}

// HasValue centralizes the "present and non-blank" check used for the
// optional string fields.
func HasValue(s string) bool {
	return strings.TrimSpace(s) != ""
}
