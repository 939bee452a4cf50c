package calendar

import "github.com/pellagroup/conveyance-api/models"

// Card is the draggable view-model for one booking on the calendar.
type Card struct {
	BookingID       string `json:"bookingId"`
	CaseID          string `json:"caseId"`
	TrusteeOfficeID string `json:"trusteeOfficeId"`
	RepName         string `json:"repName"`
	Label           string `json:"label"`
	Pending         bool   `json:"pending"`
}

// Label derives the human label for a booking card: the buyer's name when a
// BUYER party exists, otherwise the seller's, otherwise "N/A". Buyer-first
// precedence is fixed, not configurable.
func Label(b models.Booking) string {
	if name, ok := partyName(b.Details.Case.Parties, models.PartyRoleBuyer); ok {
		return "Buyer: " + name
	}
	if name, ok := partyName(b.Details.Case.Parties, models.PartyRoleSeller); ok {
		return "Seller: " + name
	}
	return "N/A"
}

func partyName(parties []models.Party, role string) (string, bool) {
	for _, p := range parties {
		if p.Role != role || len(p.Members) == 0 {
			continue
		}
		if name := p.Members[0].Name; name != "" {
			return name, true
		}
	}
	return "", false
}
