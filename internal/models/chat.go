package models

import "time"

type ChatMessage struct {
	ID      string
	Author  string
	Content string
	SentAt  time.Time
	FromMe  bool
	Read    bool
}

// ChatPreview summarises one conversation for the chat list.
type ChatPreview struct {
	Contact     string
	LastMessage string
	LastTime    time.Time
	UnreadCount int
}
