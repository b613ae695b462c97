package models

// Identity is the verified poster identity supplied by the external
// session collaborator. Email is the owner-comparison key for delete
// permission checks; the engine never manages credentials itself.
type Identity struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// IsAuthenticated reports whether a verified identity is present.
func (i Identity) IsAuthenticated() bool {
	return i.Email != ""
}
