package entity

type UserRole string

const (
	RoleUser  UserRole = "ROLE_USER"
	RoleAdmin UserRole = "ROLE_ADMIN"
)

type User struct {
	Base
	Name         string   `db:"name"`
	Age          *int     `db:"age"`
	Gender       *string  `db:"gender"`
	Address      *string  `db:"address"`
	MobileNo     *string  `db:"mobile_no"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Role         UserRole `db:"role"`
}
