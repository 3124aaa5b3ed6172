package api

type ContactProto struct {
	Email string `json:"email" form:"email"`
	Body  string `json:"body" form:"body"`
}

type ContactMessage struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}
