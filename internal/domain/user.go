package domain

type Role string

const (
	RoleCustomer Role = "customer"
	RoleWorker   Role = "worker"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID           int32  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	RentalInfoID *int32 `json:"rental_info_id,omitempty"`
}

func (u *User) DisplayName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return ""
	case u.LastName == "":
		return u.FirstName
	case u.FirstName == "":
		return u.LastName
	default:
		return u.FirstName + " " + u.LastName
	}
}
