package types

type StartSessionBody struct {
	Token string `json:"token" binding:"required"`
}
