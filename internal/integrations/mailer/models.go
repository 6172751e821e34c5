package mailer

// SendRequest тело запроса к почтовому API
type SendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
	HTML    string   `json:"html"`
}

// SendResponse ответ почтового API
type SendResponse struct {
	ID string `json:"id"`
}

// ErrorResponse модель ошибки почтового API
type ErrorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}
