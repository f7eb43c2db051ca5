package dto

// Card carries a validated contact record and color spec from the
// controller into the card use-case.
type Card struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Mobile    string `json:"mobile"`
	Work      string `json:"work"`
	Email     string `json:"email"`
	Company   string `json:"company"`
	Role      string `json:"role"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Website   string `json:"website"`
	Color     string `json:"color"`
}
