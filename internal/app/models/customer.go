package models

// Customer is the JSON payload FnloginCustomer embeds in its SOAP return value.
type Customer struct {
	Success bool   `json:"success"`
	Name    string `json:"Name"`
	Email   string `json:"email"`
	Image   string `json:"image"`
	Message string `json:"message"`
}
