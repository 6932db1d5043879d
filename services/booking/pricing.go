package booking

import "courtbook/models"

// defaultCourtName stands in when the remote API returns a court without a name.
const defaultCourtName = "Default Court Name"

// Quote is the amount charged for one slot on court: its listed price.
func Quote(court models.Court) int {
	return court.Price
}

func courtName(court models.Court) string {
	if court.Name == "" {
		return defaultCourtName
	}
	return court.Name
}
