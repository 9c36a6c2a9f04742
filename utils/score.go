package utils

import "github.com/stayparse/reservation-import/dto"

// IsRobustEnough is the bar for applying a parse without a debug detour:
// confirmation number and both date-times present, plus at least one of
// hotel name / address to anchor the reservation to a place.
func IsRobustEnough(parsed dto.ParsedReservation) bool {
	if !dto.HasValue(parsed.ConfirmationNumber) {
		return false
	}
	if !dto.HasValue(parsed.StartDateTime) || !dto.HasValue(parsed.EndDateTime) {
		return false
	}
	return dto.HasValue(parsed.Hotel.Name) || dto.HasValue(parsed.Hotel.Address)
}

// Score ranks parse candidates that are not individually robust, so the
// "least bad" one can front the diagnostics view.
func Score(parsed dto.ParsedReservation) float64 {
	score := 0.0
	if dto.HasValue(parsed.ConfirmationNumber) {
		score += 3
	}
	if dto.HasValue(parsed.StartDateTime) {
		score += 2
	}
	if dto.HasValue(parsed.EndDateTime) {
		score += 2
	}
	if dto.HasValue(parsed.Hotel.Name) {
		score += 1
	}
	if dto.HasValue(parsed.Hotel.Address) {
		score += 1
	}
	if dto.HasValue(parsed.Hotel.Phone) {
		score += 0.5
	}
	if parsed.Hotel.NumberOfGuests != nil {
		score += 0.5
	}
	return score
}
