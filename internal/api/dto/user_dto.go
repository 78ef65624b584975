package dto

// RegistrationRequest payload for new users.
type RegistrationRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// RegistrationResponse returned on successful registration.
type RegistrationResponse struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
}

// UserProfile is the public view of an account.
type UserProfile struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
