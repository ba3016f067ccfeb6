package notification

type NotifyRequest struct {
	Subject   string   `json:"subject"`
	Message   string   `json:"message"`
	Employees []string `json:"employees"`
	Extra     []string `json:"extra"`
}

type NotifyResponse struct {
	Queued          bool     `json:"queued"`
	EventID         string   `json:"event_id"`
	Recipients      []string `json:"recipients"`
	MissingEmailFor []string `json:"missing_email_for"`
}
