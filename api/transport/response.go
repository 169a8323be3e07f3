package transport

// MessageBody is the success payload of mutating endpoints.
type MessageBody struct {
	Message string `json:"message"`
}

// ErrorBody is the uniform error payload: {"error": <message>}.
type ErrorBody struct {
	Error string `json:"error"`
}

// CreatedTaskBody echoes a newly created task. Relationship ids are not
// echoed back on create.
type CreatedTaskBody struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// NewMessage returns a success message body.
func NewMessage(message string) MessageBody {
	return MessageBody{Message: message}
}

// NewError returns an error body.
func NewError(message string) ErrorBody {
	return ErrorBody{Error: message}
}
