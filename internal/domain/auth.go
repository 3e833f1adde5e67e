package domain

// Credentials are submitted to the backend to log in or to create an admin.
type Credentials struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Validate reports missing fields.
func (c *Credentials) Validate() error {
	return validatorInstance.Struct(c)
}

// ContactMessage is the public contact form payload.
type ContactMessage struct {
	Name    string `json:"name" form:"name" validate:"required,max=200"`
	Email   string `json:"email" form:"email" validate:"required,email"`
	Subject string `json:"subject,omitempty" form:"subject" validate:"max=200"`
	Message string `json:"message" form:"message" validate:"required,max=5000"`
}

// Validate reports missing or malformed fields.
func (m *ContactMessage) Validate() error {
	return validatorInstance.Struct(m)
}
