package support

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartisp.net/console/internal/clock"
	"smartisp.net/console/internal/models"
	"smartisp.net/console/internal/seed"
	"smartisp.net/console/pkg/logger"
)

func newDesk(t *testing.T) *Desk {
	t.Helper()
	d := seed.MustLoad()
	clk := clock.NewFake(time.Date(2024, 6, 22, 14, 5, 0, 0, time.UTC))
	return NewDesk(d.Tickets, d.Announcements, clk, logger.Discard())
}

func ticketIDs(ts []models.SupportTicket) []string {
	out := []string{}
	for _, t := range ts {
		out = append(out, t.ID)
	}
	return out
}

func TestListTickets(t *testing.T) {
	d := newDesk(t)

	assert.Equal(t, []string{"T-101", "T-102", "T-103"}, ticketIDs(d.ListTickets(TicketFilter{})))
	assert.Equal(t, []string{"T-102"}, ticketIDs(d.ListTickets(TicketFilter{Status: "Open"})))
	assert.Equal(t, []string{"T-103"}, ticketIDs(d.ListTickets(TicketFilter{Query: "karim"})))
	assert.Equal(t, []string{"T-101"}, ticketIDs(d.ListTickets(TicketFilter{Query: "101", Status: "All"})))
	assert.Empty(t, d.ListTickets(TicketFilter{Query: "karim", Status: "Open"}))
}

func TestStats(t *testing.T) {
	d := newDesk(t)
	assert.Equal(t, TicketStats{Open: 1, Processing: 1, Urgent: 1}, d.Stats())
}

func TestSetTicketStatusAnyOrder(t *testing.T) {
	d := newDesk(t)

	tk, err := d.SetTicketStatus("T-103", models.TicketOpen)
	require.NoError(t, err)
	assert.Equal(t, models.TicketOpen, tk.Status, "Resolved may go back to Open")

	for _, s := range []models.TicketStatus{models.TicketResolved, models.TicketProcessing, models.TicketOpen} {
		tk, err = d.SetTicketStatus("T-101", s)
		require.NoError(t, err)
		assert.Equal(t, s, tk.Status)
	}

	_, err = d.SetTicketStatus("T-101", "Closed")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = d.SetTicketStatus("T-999", models.TicketOpen)
	assert.ErrorIs(t, err, ErrTicketNotFound)

	assert.Equal(t, TicketStats{Open: 3, Processing: 0, Urgent: 1}, d.Stats())
}

func TestDeleteTicket(t *testing.T) {
	d := newDesk(t)

	assert.ErrorIs(t, d.DeleteTicket("T-102", false), ErrConfirmationRequired)
	require.NoError(t, d.DeleteTicket("T-102", true))
	assert.Equal(t, []string{"T-101", "T-103"}, ticketIDs(d.ListTickets(TicketFilter{})))
	assert.ErrorIs(t, d.DeleteTicket("T-102", true), ErrTicketNotFound)

	_, err := d.Ticket("T-102")
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestCreateTicket(t *testing.T) {
	d := newDesk(t)

	_, err := d.CreateTicket(models.SupportTicket{ClientName: "Rahim"})
	assert.ErrorIs(t, err, ErrSubjectRequired)

	tk, err := d.CreateTicket(models.SupportTicket{ClientID: "1", ClientName: "Abdur Rahim", Subject: "Router reboot loop", Status: models.TicketResolved})
	require.NoError(t, err)
	assert.Equal(t, "T-104", tk.ID)
	assert.Equal(t, models.TicketOpen, tk.Status)
	assert.Equal(t, models.PriorityMedium, tk.Priority)
	assert.Equal(t, models.CategoryOther, tk.Category)
	assert.Equal(t, "2024-06-22 02:05 PM", tk.CreatedAt)

	got, err := d.Ticket("T-104")
	require.NoError(t, err)
	assert.Equal(t, tk, got)
	assert.Equal(t, "T-104", d.ListTickets(TicketFilter{})[0].ID)
}

func TestAnnouncements(t *testing.T) {
	d := newDesk(t)

	a, err := d.ToggleAnnouncementActive("A-1")
	require.NoError(t, err)
	assert.False(t, a.Active)
	a, err = d.ToggleAnnouncementActive("A-1")
	require.NoError(t, err)
	assert.True(t, a.Active)

	_, err = d.ToggleAnnouncementActive("A-9")
	assert.ErrorIs(t, err, ErrAnnouncementNotFound)

	_, err = d.CreateAnnouncement(models.Announcement{Message: "no title"})
	assert.ErrorIs(t, err, ErrTitleRequired)

	created, err := d.CreateAnnouncement(models.Announcement{Title: "New package", Message: "20 Mbps now 800 Tk", Active: false})
	require.NoError(t, err)
	assert.Equal(t, "A-3", created.ID)
	assert.True(t, created.Active)
	assert.Equal(t, models.AnnouncementNews, created.Type)
	assert.Equal(t, "2024-06-22", created.CreatedAt)

	list := d.Announcements()
	require.Len(t, list, 3)
	assert.Equal(t, "A-3", list[0].ID)
}

func TestNextNumber(t *testing.T) {
	ids := []string{"T-101", "odd", "T-250", "T-99"}
	assert.Equal(t, 251, nextNumber(len(ids), 100, func(i int) string { return ids[i] }))
	assert.Equal(t, 1, nextNumber(0, 0, nil))
}
