package forms

import "pizza-orders/internal/models"

type LoginForm struct {
	Email    string `schema:"email" validate:"required,email"`
	Password string `schema:"password" validate:"required"`
}

type RegisterForm struct {
	Email           string `schema:"email" validate:"required,email"`
	Password        string `schema:"password" validate:"required,min=6"`
	ConfirmPassword string `schema:"confirm_password" validate:"required,eqfield=Password"`
	Role            string `schema:"role" validate:"omitempty,oneof=customer staff c s"`
}

// ToUser builds the stored user; an empty role means customer.
func (f RegisterForm) ToUser() models.User {
	role, ok := models.ParseRole(f.Role)
	if !ok {
		role = models.RoleCustomer
	}
	return models.User{
		Email:    f.Email,
		Password: f.Password,
		Role:     role,
	}
}
