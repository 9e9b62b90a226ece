package request

// Register defines parameters for Register.
type Register struct {
	UserName  string `json:"user_name"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Login defines parameters for Login.
type Login struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}
