package models

// Page is a slice of a server-side list.
type Page[T any] struct {
	Items   []T  `json:"items"`
	Total   int  `json:"total"`
	Size    int  `json:"size,omitempty"`
	HasMore bool `json:"hasMore,omitempty"`
}

// Category is a clinical examination or paraclinical test category.
type Category struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryInput is the body for creating or renaming a category.
type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=2000"`
}

// Role is an IAM role such as ROLE_ADMIN.
type Role struct {
	ID          ID     `json:"id"`
	RoleName    string `json:"roleName"`
	Description string `json:"description,omitempty"`
}

// User is an IAM account with its granted roles.
type User struct {
	ID        ID     `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Active    bool   `json:"active"`
	Roles     []Role `json:"roles"`
}

// HasRole reports whether the user holds a role with the given name.
func (u User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.RoleName == name {
			return true
		}
	}
	return false
}
