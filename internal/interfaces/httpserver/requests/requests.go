package requests

// LoginRequest carries the shared access key.
type LoginRequest struct {
	AccessKey string `json:"access_key"`
}

// SendMessageRequest carries one user submission.
type SendMessageRequest struct {
	Text string `json:"text"`
}
