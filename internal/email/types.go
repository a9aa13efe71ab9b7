package email

import "time"

// Email is a single outbound message
type Email struct {
	To      []string
	Subject string
	Body    string
	HTML    string
}

// Config holds SMTP transport settings
type Config struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromEmail   string
	FromName    string
	SendTimeout time.Duration // bound on a single send
}
