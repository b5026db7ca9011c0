package clients

import (
	"strings"
	"time"

	"smartisp.net/console/internal/models"
)

// ClientFilter narrows the client list. Type "" or "All" keeps every type.
type ClientFilter struct {
	Type  string
	Query string
}

func (f ClientFilter) matches(c models.Client) bool {
	if f.Type != "" && f.Type != "All" && string(c.Type) != f.Type {
		return false
	}
	if f.Query == "" {
		return true
	}
	q := strings.ToLower(f.Query)
	return strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(c.Phone, f.Query) ||
		(c.MACAddress != "" && strings.Contains(strings.ToLower(c.MACAddress), q))
}

// Segment names the dashboard drill-down lists.
type Segment string

const (
	SegmentJoinedMonth    Segment = "joined_month"
	SegmentActiveNow      Segment = "active_now"
	SegmentHotspot        Segment = "hotspot"
	SegmentExpiredTotal   Segment = "expired_total"
	SegmentExpiredHotspot Segment = "expired_hotspot"
	SegmentPending        Segment = "pending"
	SegmentLeft           Segment = "left"
)

// IsExpired reports whether the expiry date lies strictly before now.
// Unreadable dates never count as expired.
func IsExpired(c models.Client, now time.Time) bool {
	expiry, err := ParseDate(c.ExpiryDate)
	if err != nil {
		return false
	}
	return expiry.Before(now)
}

func inSegment(c models.Client, seg Segment, now time.Time) bool {
	switch seg {
	case SegmentJoinedMonth:
		joined, err := ParseDate(c.JoinDate)
		if err != nil {
			return false
		}
		now = now.UTC()
		return joined.Month() == now.Month() && joined.Year() == now.Year()
	case SegmentActiveNow:
		return c.Status == models.ClientActive
	case SegmentHotspot:
		return c.Type == models.ConnectionHotspot
	case SegmentExpiredTotal:
		return IsExpired(c, now)
	case SegmentExpiredHotspot:
		return c.Type == models.ConnectionHotspot && IsExpired(c, now)
	case SegmentPending:
		return c.Status == models.ClientDisabled || c.Status == models.ClientInactive
	case SegmentLeft:
		return c.Status == models.ClientInactive
	default:
		return true
	}
}

// Segment lists the clients in seg; an unknown segment lists everyone.
func (r *Registry) Segment(seg Segment) []models.Client {
	now := r.clock.Now()
	all := r.store.Clients()
	out := make([]models.Client, 0, len(all))
	for _, c := range all {
		if inSegment(c, seg, now) {
			out = append(out, c)
		}
	}
	return out
}

type Summary struct {
	Total          int   `json:"total"`
	JoinedMonth    int   `json:"joined_month"`
	Active         int   `json:"active"`
	Hotspot        int   `json:"hotspot"`
	Expired        int   `json:"expired"`
	ExpiredHotspot int   `json:"expired_hotspot"`
	Pending        int   `json:"pending"`
	Left           int   `json:"left"`
	TotalBalance   int64 `json:"total_balance"`
}

// Summary derives the dashboard counters from the current snapshot.
func (r *Registry) Summary() Summary {
	now := r.clock.Now()
	all := r.store.Clients()
	s := Summary{Total: len(all)}
	for _, c := range all {
		s.TotalBalance += c.Balance
		if inSegment(c, SegmentJoinedMonth, now) {
			s.JoinedMonth++
		}
		if inSegment(c, SegmentActiveNow, now) {
			s.Active++
		}
		if inSegment(c, SegmentHotspot, now) {
			s.Hotspot++
		}
		if inSegment(c, SegmentExpiredTotal, now) {
			s.Expired++
		}
		if inSegment(c, SegmentExpiredHotspot, now) {
			s.ExpiredHotspot++
		}
		if inSegment(c, SegmentPending, now) {
			s.Pending++
		}
		if inSegment(c, SegmentLeft, now) {
			s.Left++
		}
	}
	return s
}
