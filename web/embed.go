package web

import "embed"

//go:embed chat.html
var pages embed.FS

// ChatPage returns the embedded chat page
func ChatPage() ([]byte, error) {
	return pages.ReadFile("chat.html")
}
