package domain

type Provider string

const (
	ProviderLocal Provider = "local"
)

type AuthPayload struct {
	Username   string   `json:"username"`
	Role       string   `json:"role"`
	Capability []string `json:"capability"`
}

type LoginResponse struct {
	Token string `json:"token"`
}
