package models

import "time"

type Notification struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	TimeSent    time.Time `json:"time_sent"`
	Sender      string    `json:"sender"`
	IsRead      bool      `json:"is_read"`
	Destination string    `json:"destination"`
}
