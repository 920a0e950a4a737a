package model

// Empresa is the tenant scope: productos and comprobantes hang off one of
// these. Managed by the remote backend; the console only mirrors it.
type Empresa struct {
	ID          int64  `json:"id"`
	RazonSocial string `json:"razonSocial"`
	Ruc         string `json:"ruc"`
	Email       string `json:"email"`
	Direccion   string `json:"direccion"`
}

// Usuario is a console account on the remote backend.
type Usuario struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Email    string `json:"email"`
	Admin    bool   `json:"admin"`
}
