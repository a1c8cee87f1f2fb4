package dto

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT de sesión y proyección de la cuenta.
type LoginResponse struct {
	Token   string          `json:"token"`
	Account AccountResponse `json:"account"`
}

// RegisterVendorRequest entrada del registro público. El rol siempre es
// VENDOR y la cuenta nace pendiente de aprobación; no se aceptan campos
// restringidos desde este formulario.
type RegisterVendorRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=100"`
	CompanyName string `json:"company_name" validate:"required,max=200"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=20"`
	Address     string `json:"address" validate:"omitempty,max=500"`
	Website     string `json:"website" validate:"omitempty,max=200"`
	TaxID       string `json:"tax_id" validate:"omitempty,max=50"`
}

// ResetPasswordRequestInput pedido de reseteo: solo email. La respuesta es
// idéntica exista o no la cuenta (no se filtra existencia de emails).
type ResetPasswordRequestInput struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordInput completación del reseteo con el token del link.
type ResetPasswordInput struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=100"`
}
