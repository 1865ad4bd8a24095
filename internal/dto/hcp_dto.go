package dto

type HCPResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	City      string `json:"city"`
}
