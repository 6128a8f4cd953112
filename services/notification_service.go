package services

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"homehub/models"
	"homehub/utils/errors"
	"homehub/utils/logger"
)

// NotificationService holds the in-app notification inbox.
type NotificationService struct {
	mu    sync.Mutex
	items []models.Notification
	muted map[string]bool
	now   func() time.Time
	log   *zap.Logger
}

func NewNotificationService(now func() time.Time, log *zap.Logger) *NotificationService {
	if now == nil {
		now = time.Now
	}
	s := &NotificationService{muted: make(map[string]bool), now: now, log: logger.OrNop(log)}
	s.items = seedNotifications(now())
	return s
}

func seedNotifications(now time.Time) []models.Notification {
	return []models.Notification{
		{
			ID:          "1",
			Title:       "New Feature Added!",
			Message:     "Check out the new dark mode option in settings.",
			TimeSent:    now.Add(-2600 * time.Second),
			Sender:      "HomeHub Support Team",
			IsRead:      true,
			Destination: "Settings",
		},
		{
			ID:          "2",
			Title:       "Task Reminder",
			Message:     "Don't forget to complete your pending tasks.",
			TimeSent:    now.Add(-24 * time.Hour),
			Sender:      "TaskBot",
			IsRead:      true,
			Destination: "Chat",
		},
		{
			ID:          "3",
			Title:       "Welcome!",
			Message:     "Thanks for joining the app. Let's stay productive!",
			TimeSent:    now.Add(-2 * time.Hour),
			Sender:      "HomeHub Support Team",
			IsRead:      false,
			Destination: "Home",
		},
	}
}

// List returns notifications from unmuted senders, newest first.
func (s *NotificationService) List() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Notification, 0, len(s.items))
	for _, n := range s.items {
		if !s.muted[n.Sender] {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TimeSent.After(out[j].TimeSent) })
	return out
}

func (s *NotificationService) Get(id string) (models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.items {
		if n.ID == id {
			return n, nil
		}
	}
	return models.Notification{}, errors.ErrNotFound
}

func (s *NotificationService) MarkRead(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].IsRead = true
			return nil
		}
	}
	return errors.ErrNotFound
}

func (s *NotificationService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return errors.ErrNotFound
}

func (s *NotificationService) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Mute hides every notification from sender.
func (s *NotificationService) Mute(sender string) error {
	if sender == "" {
		return errors.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted[sender] = true
	s.log.Info("Muted notification sender", zap.String("sender", sender))
	return nil
}

// Unread counts visible unread notifications.
func (s *NotificationService) Unread() int {
	n := 0
	for _, item := range s.List() {
		if !item.IsRead {
			n++
		}
	}
	return n
}

// TimeAgo renders the age of sent relative to now.
func TimeAgo(sent, now time.Time) string {
	minutes := int(now.Sub(sent) / time.Minute)
	if minutes <= 60 {
		return fmt.Sprintf("%d mins ago", minutes)
	}
	hours := minutes / 60
	if hours <= 24 {
		return fmt.Sprintf("%d hours ago", hours)
	}
	return fmt.Sprintf("%d days ago", hours/24)
}

// Now exposes the service clock so handlers format ages consistently.
func (s *NotificationService) Now() time.Time {
	return s.now()
}
