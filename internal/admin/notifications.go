// internal/admin/notifications.go
package admin

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	ResumeID  int64     `json:"resume_id,omitempty"`
	UserID    int64     `json:"user_id,omitempty"`
	Email     string    `json:"email,omitempty"`
}

type NotificationFeed struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unread_count"`
}

func sourceLabel(sourceType string) string {
	switch strings.ToLower(sourceType) {
	case "":
		return "Upload"
	case "guest":
		return "Career / Guest"
	case "gmail":
		return "Gmail / Email"
	case "outlook":
		return "Outlook"
	case "company_employee":
		return "Employee"
	case "admin":
		return "Admin upload"
	case "freelancer":
		return "Freelancer"
	default:
		parts := strings.Split(strings.ReplaceAll(sourceType, "_", " "), " ")
		for i, p := range parts {
			if p != "" {
				parts[i] = strings.ToUpper(p[:1]) + p[1:]
			}
		}
		return strings.Join(parts, " ")
	}
}

// Notifications builds the recent-activity feed: resume uploads and user
// logins inside the window, plus a records-tab reminder on even hours.
func (s *Service) Notifications(ctx context.Context, limit, days int) (*NotificationFeed, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if days <= 0 || days > 30 {
		days = 7
	}
	now := time.Now().UTC()
	since := now.AddDate(0, 0, -days)

	var notifications []Notification

	uploads, err := s.resumes.RecentUploads(ctx, since, limit)
	if err != nil {
		return nil, err
	}
	for i := range uploads {
		rec := &uploads[i]
		ts := now
		if rec.UploadedAt != nil {
			ts = *rec.UploadedAt
		}
		notifications = append(notifications, Notification{
			ID:        fmt.Sprintf("resume-%d", rec.ID),
			Type:      "resume_upload",
			Message:   fmt.Sprintf("New resume uploaded (%s)", sourceLabel(rec.SourceType)),
			Timestamp: ts,
			ResumeID:  rec.ID,
		})
	}

	logins, err := s.users.RecentLogins(ctx, since, limit)
	if err != nil {
		return nil, err
	}
	for i := range logins {
		u := &logins[i]
		if u.LastLoginAt == nil {
			continue
		}
		display := strings.TrimSpace(u.FullName)
		if display == "" {
			display = u.Email
		}
		notifications = append(notifications, Notification{
			ID:        fmt.Sprintf("login-%d-%d", u.ID, u.LastLoginAt.Unix()),
			Type:      "login",
			Message:   fmt.Sprintf("User logged in: %s", display),
			Timestamp: *u.LastLoginAt,
			UserID:    u.ID,
			Email:     u.Email,
		})
	}

	if now.Hour()%2 == 0 {
		notifications = append(notifications, Notification{
			ID:        "reminder-records",
			Type:      "reminder",
			Message:   "Reminder: Open the Records tab to see new resumes.",
			Timestamp: now,
		})
	}

	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].Timestamp.After(notifications[j].Timestamp)
	})
	if len(notifications) > limit {
		notifications = notifications[:limit]
	}

	unread := len(notifications)
	if unread > 99 {
		unread = 99
	}
	return &NotificationFeed{Notifications: notifications, UnreadCount: unread}, nil
}
