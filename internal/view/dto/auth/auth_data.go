package auth

// LoginData is a View Model (DTO) used specifically for the login template.
// It carries the previously submitted username back to the form.
type LoginData struct {
	Username string
	Error    string
	// Next is where to go after a successful login.
	Next string
}

// CreateAdminData backs the create-admin form in the settings section.
type CreateAdminData struct {
	Username string
	Error    string
}
