package transport

// ErrorBody is the error shape every endpoint returns:
// {"error": "...", "details": "..."}.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func NewError(message, details string) ErrorBody {
	return ErrorBody{Error: message, Details: details}
}

// Success builds a {"success":true, ...} body with optional extra fields.
func Success(extra map[string]interface{}) map[string]interface{} {
	body := map[string]interface{}{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	return body
}
