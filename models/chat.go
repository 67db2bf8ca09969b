package models

import "time"

// ChatMedia is a media reference attached to a chat message.
type ChatMedia struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// ChatMessage mirrors the completion-API message shape, plus optional media.
type ChatMessage struct {
	Role    string      `json:"role"`
	Content string      `json:"content"`
	Media   []ChatMedia `json:"media,omitempty"`
}

// ChatRequest is the POST /chat payload.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages" validate:"required,min=1"`
}

// Session is one unlocked site-lock session.
type Session struct {
	ID         string    `json:"id"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
	LastUsedAt time.Time `json:"last_used_at"`
}

// UnlockRequest is the POST /auth/unlock payload.
type UnlockRequest struct {
	Password string `json:"password" validate:"required"`
}
