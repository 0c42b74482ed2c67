package domain

// Role is an actor capability tier
type Role string

const (
	RoleMember Role = "member"
	RoleEditor Role = "editor"
	RolePastor Role = "pastor"
	RoleAdmin  Role = "admin"
)

// Elevated reports whether the role may approve or reject content.
// Plain members can only author and submit their own content.
func (r Role) Elevated() bool {
	switch r {
	case RoleEditor, RolePastor, RoleAdmin:
		return true
	}
	return false
}

// Actor identifies who performs an operation. It is passed explicitly
// into every workflow/versioning call instead of being re-derived from
// ambient request context.
type Actor struct {
	ID   string
	Name string
	Role Role
}
