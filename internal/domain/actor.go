package domain

// Role of the caller, set by the gateway
type Role string

const (
	RoleClient       Role = "client"
	RoleProfessional Role = "professional"
	RoleAdmin        Role = "admin"
)

// IsValid returns true for known roles
func (r Role) IsValid() bool {
	return r == RoleClient || r == RoleProfessional || r == RoleAdmin
}

// Actor is the authenticated caller of an operation.
// For professionals UserID is the professional id.
type Actor struct {
	UserID int64
	Role   Role
}

// IsAdmin returns true for administrators
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IsClientOf returns true if the actor is the client of the booking
func (a Actor) IsClientOf(t *Turno) bool {
	return a.Role == RoleClient && a.UserID == t.ClientID
}

// IsProfessionalOf returns true if the actor is the professional of the booking
func (a Actor) IsProfessionalOf(t *Turno) bool {
	return a.Role == RoleProfessional && a.UserID == t.ProfessionalID
}

// CanView returns true if the actor may read the booking
func (a Actor) CanView(t *Turno) bool {
	return a.IsAdmin() || a.IsClientOf(t) || a.IsProfessionalOf(t)
}
