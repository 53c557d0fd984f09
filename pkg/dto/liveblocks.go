package dto

type LiveblocksAuthRequest struct {
	Room string `json:"room"`
}

type LiveblocksAuthResponse struct {
	Token string `json:"token"`
}
