package chat

import (
	"strings"
)

type SendMessageRequest struct {
	ToUserID string `json:"to_user_id"`
	Body     string `json:"body"`
}

func (r SendMessageRequest) Validate() error {
	if strings.TrimSpace(r.Body) == "" {
		return ErrEmptyMessage
	}
	return nil
}
