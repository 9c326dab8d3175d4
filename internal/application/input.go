package application

// RegisterInput is the registration payload. Rules are checked in field
// order and the first violation is reported.
type RegisterInput struct {
	Email     string `json:"email" form:"email" validate:"account_email"`
	Name      string `json:"name" form:"name" validate:"account_name"`
	Password  string `json:"password" form:"password" validate:"account_pwd"`
	Password2 string `json:"password2" form:"password2" validate:"required,eqfield=Password"`
}

type LoginInput struct {
	Email    string `json:"email" form:"email" validate:"account_email"`
	Password string `json:"password" form:"password" validate:"account_pwd"`
}

// RoleChangeInput also accepts the legacy userType key sent by older admin
// pages; Normalize folds it into Role.
type RoleChangeInput struct {
	Email    string `json:"email" form:"email" validate:"account_email"`
	Role     string `json:"role" form:"role" validate:"account_role"`
	UserType string `json:"userType" form:"userType" validate:"-"`
}

func (in *RoleChangeInput) Normalize() {
	if in.Role == "" {
		in.Role = in.UserType
	}
}

type DeleteUserInput struct {
	Email string `json:"email" form:"email" validate:"account_email"`
}
