package service

import "time"

const (
	// AnalyzeTimeout bounds one blueprint generation upstream call.
	AnalyzeTimeout = 60 * time.Second

	// ChatTimeout bounds one section question.
	ChatTimeout = 30 * time.Second

	// MaxChatHistory is how many prior turns are forwarded with a question.
	MaxChatHistory = 20
)
