package api

// MaskRequest is the body of POST /api/v1/mask.
type MaskRequest struct {
	Message string `json:"message"`
}
