package request

// CreateCurrencyRequest represents the request body for creating a currency
type CreateCurrencyRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// UpdateCurrencyRequest represents the request body for updating a currency
type UpdateCurrencyRequest struct {
	Code string `json:"code,omitempty"`
	Name string `json:"name,omitempty"`
}
