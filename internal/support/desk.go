// Package support is the help desk: customer tickets and the announcements
// shown to subscribers.
package support

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	"smartisp.net/console/internal/clock"
	"smartisp.net/console/internal/models"
	"smartisp.net/console/pkg/logger"
)

const ticketTimeLayout = "2006-01-02 03:04 PM"

var (
	ErrTicketNotFound       = errors.New("ticket not found")
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrInvalidStatus        = errors.New("invalid ticket status")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrSubjectRequired      = errors.New("subject is required")
	ErrTitleRequired        = errors.New("title is required")
)

type Desk struct {
	mu            sync.RWMutex
	tickets       []models.SupportTicket
	announcements []models.Announcement
	clock         clock.Clock
	logger        *logger.Logger
}

func NewDesk(tickets []models.SupportTicket, announcements []models.Announcement, clk clock.Clock, log *logger.Logger) *Desk {
	return &Desk{
		tickets:       append([]models.SupportTicket(nil), tickets...),
		announcements: append([]models.Announcement(nil), announcements...),
		clock:         clk,
		logger:        log.With("component", "support"),
	}
}

// TicketFilter keeps tickets in Status ("" or "All" for any) whose client
// name contains Query case-insensitively or whose id contains it.
type TicketFilter struct {
	Status string
	Query  string
}

func (d *Desk) ListTickets(f TicketFilter) []models.SupportTicket {
	d.mu.RLock()
	defer d.mu.RUnlock()

	q := strings.ToLower(f.Query)
	out := make([]models.SupportTicket, 0, len(d.tickets))
	for _, t := range d.tickets {
		if f.Status != "" && f.Status != "All" && string(t.Status) != f.Status {
			continue
		}
		if !strings.Contains(strings.ToLower(t.ClientName), q) && !strings.Contains(t.ID, f.Query) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (d *Desk) Ticket(id string) (models.SupportTicket, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, t := range d.tickets {
		if t.ID == id {
			return t, nil
		}
	}
	return models.SupportTicket{}, ErrTicketNotFound
}

type TicketStats struct {
	Open       int `json:"open"`
	Processing int `json:"processing"`
	Urgent     int `json:"urgent"`
}

func (d *Desk) Stats() TicketStats {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var s TicketStats
	for _, t := range d.tickets {
		switch t.Status {
		case models.TicketOpen:
			s.Open++
		case models.TicketProcessing:
			s.Processing++
		}
		if t.Priority == models.PriorityUrgent {
			s.Urgent++
		}
	}
	return s
}

// CreateTicket prepends an Open ticket. Priority defaults to Medium and
// category to Other.
func (d *Desk) CreateTicket(t models.SupportTicket) (models.SupportTicket, error) {
	if strings.TrimSpace(t.Subject) == "" {
		return models.SupportTicket{}, ErrSubjectRequired
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	if t.Category == "" {
		t.Category = models.CategoryOther
	}
	t.Status = models.TicketOpen
	t.CreatedAt = d.clock.Now().UTC().Format(ticketTimeLayout)

	d.mu.Lock()
	t.ID = "T-" + strconv.Itoa(nextNumber(len(d.tickets), 100, func(i int) string { return d.tickets[i].ID }))
	d.tickets = append([]models.SupportTicket{t}, d.tickets...)
	d.mu.Unlock()

	d.logger.Info("Ticket created", "ticket_id", t.ID, "client", t.ClientName, "priority", t.Priority)
	return t, nil
}

// SetTicketStatus overwrites the status. Any status may follow any other.
func (d *Desk) SetTicketStatus(id string, status models.TicketStatus) (models.SupportTicket, error) {
	switch status {
	case models.TicketOpen, models.TicketProcessing, models.TicketResolved:
	default:
		return models.SupportTicket{}, ErrInvalidStatus
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for i, t := range d.tickets {
		if t.ID != id {
			continue
		}
		next := append([]models.SupportTicket(nil), d.tickets...)
		t.Status = status
		next[i] = t
		d.tickets = next
		d.logger.Info("Ticket status changed", "ticket_id", id, "status", status)
		return t, nil
	}
	return models.SupportTicket{}, ErrTicketNotFound
}

func (d *Desk) DeleteTicket(id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	next := make([]models.SupportTicket, 0, len(d.tickets))
	for _, t := range d.tickets {
		if t.ID != id {
			next = append(next, t)
		}
	}
	if len(next) == len(d.tickets) {
		return ErrTicketNotFound
	}
	d.tickets = next
	d.logger.Info("Ticket deleted", "ticket_id", id)
	return nil
}

func (d *Desk) Announcements() []models.Announcement {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]models.Announcement(nil), d.announcements...)
}

// CreateAnnouncement prepends an active announcement; type defaults to News.
func (d *Desk) CreateAnnouncement(a models.Announcement) (models.Announcement, error) {
	if strings.TrimSpace(a.Title) == "" {
		return models.Announcement{}, ErrTitleRequired
	}
	if a.Type == "" {
		a.Type = models.AnnouncementNews
	}
	a.Active = true
	a.CreatedAt = d.clock.Now().UTC().Format(models.DateLayout)

	d.mu.Lock()
	a.ID = "A-" + strconv.Itoa(nextNumber(len(d.announcements), 0, func(i int) string { return d.announcements[i].ID }))
	d.announcements = append([]models.Announcement{a}, d.announcements...)
	d.mu.Unlock()

	d.logger.Info("Announcement created", "announcement_id", a.ID, "type", a.Type)
	return a, nil
}

func (d *Desk) ToggleAnnouncementActive(id string) (models.Announcement, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, a := range d.announcements {
		if a.ID != id {
			continue
		}
		next := append([]models.Announcement(nil), d.announcements...)
		a.Active = !a.Active
		next[i] = a
		d.announcements = next
		d.logger.Info("Announcement toggled", "announcement_id", id, "active", a.Active)
		return a, nil
	}
	return models.Announcement{}, ErrAnnouncementNotFound
}

// nextNumber returns one more than the highest numeric suffix among the n
// ids (or floor+1 when none parse).
func nextNumber(n, floor int, id func(int) string) int {
	highest := floor
	for i := 0; i < n; i++ {
		s := id(i)
		dash := strings.LastIndexByte(s, '-')
		if num, err := strconv.Atoi(s[dash+1:]); err == nil && num > highest {
			highest = num
		}
	}
	return highest + 1
}
