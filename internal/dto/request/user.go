package request

type UserRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=100"`
	Age      *int    `json:"age,omitempty" validate:"omitempty,gte=0,lte=150"`
	Gender   *string `json:"gender,omitempty" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Address  *string `json:"address,omitempty"`
	MobileNo *string `json:"mobile_no,omitempty" validate:"omitempty,min=10,max=15"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
}

// AuthRequest logs in with the email as username
type AuthRequest struct {
	Username string `json:"username" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
