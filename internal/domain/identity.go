package domain

// Identity is the mock player record owned by the identity collaborator.
// No economic decision ever depends on it.
type Identity struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}
