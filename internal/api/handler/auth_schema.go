package handler

type registerRequest struct {
	Nombre               string `json:"nombre"               validate:"notblank,max=100"`
	Apellidos            string `json:"apellidos"            validate:"max=150"`
	Username             string `json:"username"             validate:"notblank,max=50"`
	Email                string `json:"email"                validate:"required,email,max=254"`
	Password             string `json:"password"             validate:"required,min=6,maxbytes=72"`
	PasswordConfirmation string `json:"passwordConfirmation" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

// authResponse is the token envelope returned by register and login.
type authResponse struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Nombre    string `json:"nombre"`
	Apellidos string `json:"apellidos"`
}

// errorResponse documents the error envelope for swagger.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
