package request

// CreateInvestorRequest represents the request body for creating an investor
type CreateInvestorRequest struct {
	Alias    string `json:"alias"`
	Username string `json:"username,omitempty"`
}
