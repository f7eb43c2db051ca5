package response

type Card struct {
	Image string `json:"image" example:"data:image/png;base64,..."`
}
