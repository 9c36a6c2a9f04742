package service

import (
	"strconv"
	"strings"

	"github.com/stayparse/reservation-import/dto"
)

// ApplyToForm merges a parsed reservation into existing form values. User
// input wins: a populated field is never overwritten, with one exception in
// the two time-of-day fields, which always take the parsed value. The
// notesAppend line lands as a new notes line unless the notes already
// contain it verbatim.
func ApplyToForm(parsed dto.ParsedReservation, form dto.FormValues) dto.FormValues {
	merged := form

	setIfEmpty(&merged.ConfirmationNumber, parsed.ConfirmationNumber)
	setIfEmpty(&merged.StartDateTime, parsed.StartDateTime)
	setIfEmpty(&merged.EndDateTime, parsed.EndDateTime)
	setIfEmpty(&merged.HotelName, parsed.Hotel.Name)
	setIfEmpty(&merged.Address, parsed.Hotel.Address)
	setIfEmpty(&merged.Phone, parsed.Hotel.Phone)
	setIfEmpty(&merged.RoomType, parsed.Hotel.RoomTypeRaw)
	if parsed.Hotel.NumberOfGuests != nil {
		setIfEmpty(&merged.NumberOfGuests, strconv.Itoa(*parsed.Hotel.NumberOfGuests))
	}
	if parsed.Hotel.NumberOfRooms != nil {
		setIfEmpty(&merged.NumberOfRooms, strconv.Itoa(*parsed.Hotel.NumberOfRooms))
	}

	if dto.HasValue(parsed.Hotel.CheckInTime) {
		merged.CheckInTime = parsed.Hotel.CheckInTime
	}
	if dto.HasValue(parsed.Hotel.CheckOutTime) {
		merged.CheckOutTime = parsed.Hotel.CheckOutTime
	}

	merged.Notes = appendNote(merged.Notes, parsed.NotesAppend)
	return merged
}

func setIfEmpty(dst *string, value string) {
	if !dto.HasValue(*dst) && dto.HasValue(value) {
		*dst = value
	}
}

func appendNote(notes, note string) string {
	if !dto.HasValue(note) || strings.Contains(notes, note) {
		return notes
	}
	if notes == "" {
		return note
	}
	return notes + "\n" + note
}
