package storage

// Config holds storage configuration
type Config struct {
	Dir     string // Root directory for uploaded files
	BaseURL string // Public prefix files are served under, e.g. "https://lounge.example.com"
}

// MediaPrefix is the HTTP path stored files are served from.
const MediaPrefix = "/media/"
