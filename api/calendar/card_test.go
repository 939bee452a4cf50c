package calendar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pellagroup/conveyance-api/api/calendar"
	"github.com/pellagroup/conveyance-api/models"
)

func bookingWithParties(parties ...models.Party) models.Booking {
	return models.Booking{
		Details: models.BookingDetails{
			Case: models.CaseDetails{Parties: parties},
		},
	}
}

func TestLabelBuyerFirst(t *testing.T) {
	b := bookingWithParties(
		models.Party{Role: models.PartyRoleSeller, Members: []models.PartyMember{{Name: "Sven Svensson"}}},
		models.Party{Role: models.PartyRoleBuyer, Members: []models.PartyMember{{Name: "Anna Andersson"}}},
	)
	assert.Equal(t, "Buyer: Anna Andersson", calendar.Label(b))
}

func TestLabelFallsBackToSeller(t *testing.T) {
	b := bookingWithParties(
		models.Party{Role: models.PartyRoleSeller, Members: []models.PartyMember{{Name: "Sven Svensson"}}},
	)
	assert.Equal(t, "Seller: Sven Svensson", calendar.Label(b))
}

func TestLabelBuyerWithoutMembersFallsBack(t *testing.T) {
	b := bookingWithParties(
		models.Party{Role: models.PartyRoleBuyer},
		models.Party{Role: models.PartyRoleSeller, Members: []models.PartyMember{{Name: "Sven Svensson"}}},
	)
	assert.Equal(t, "Seller: Sven Svensson", calendar.Label(b))
}

func TestLabelEmptyNameFallsBack(t *testing.T) {
	b := bookingWithParties(
		models.Party{Role: models.PartyRoleBuyer, Members: []models.PartyMember{{Name: ""}}},
		models.Party{Role: models.PartyRoleSeller, Members: []models.PartyMember{{Name: "Sven Svensson"}}},
	)
	assert.Equal(t, "Seller: Sven Svensson", calendar.Label(b))
}

func TestLabelNoParties(t *testing.T) {
	assert.Equal(t, "N/A", calendar.Label(bookingWithParties()))
}

func TestLabelFirstMatchingBuyerWins(t *testing.T) {
	b := bookingWithParties(
		models.Party{Role: models.PartyRoleBuyer, Members: []models.PartyMember{{Name: "Anna Andersson"}}},
		models.Party{Role: models.PartyRoleBuyer, Members: []models.PartyMember{{Name: "Berit Berg"}}},
	)
	assert.Equal(t, "Buyer: Anna Andersson", calendar.Label(b))
}
