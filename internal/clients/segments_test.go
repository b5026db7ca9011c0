package clients

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"smartisp.net/console/internal/models"
)

func sampleClients() []models.Client {
	return []models.Client{
		{ID: "1", Name: "Abdur Rahim", Phone: "01711-111111", Type: models.ConnectionPPPoE, Status: models.ClientActive, Balance: 500, JoinDate: "2024-06-02", ExpiryDate: "2024-07-02", MACAddress: "00:1A:2B:3C:4D:5E"},
		{ID: "2", Name: "Karim Hossain", Phone: "01822-222222", Type: models.ConnectionHotspot, Status: models.ClientDisabled, Balance: -150, JoinDate: "2024-05-10", ExpiryDate: "2024-06-09"},
		{ID: "3", Name: "Siddikur Rahman", Phone: "01933-333333", Type: models.ConnectionHotspot, Status: models.ClientInactive, JoinDate: "2023-06-15", ExpiryDate: "2024-08-01"},
		{ID: "4", Name: "Nasrin Akter", Phone: "01544-444444", Type: models.ConnectionPPPoE, Status: models.ClientSuspended, JoinDate: "2024-06-20", ExpiryDate: "2024-06-01"},
	}
}

func idsOf(cs []models.Client) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func TestListFilter(t *testing.T) {
	r, _ := newRegistry(t, sampleClients()...)

	tests := []struct {
		name   string
		filter ClientFilter
		want   []string
	}{
		{"all", ClientFilter{}, []string{"1", "2", "3", "4"}},
		{"explicit all", ClientFilter{Type: "All"}, []string{"1", "2", "3", "4"}},
		{"hotspot", ClientFilter{Type: "Hotspot"}, []string{"2", "3"}},
		{"name case-insensitive", ClientFilter{Query: "rahIM"}, []string{"1"}},
		{"phone substring", ClientFilter{Query: "01822"}, []string{"2"}},
		{"mac", ClientFilter{Query: "4d:5e"}, []string{"1"}},
		{"type and query", ClientFilter{Type: "PPPoE", Query: "rahman"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, idsOf(r.List(tt.filter)))
		})
	}
}

func TestSegments(t *testing.T) {
	r, _ := newRegistry(t, sampleClients()...)

	tests := []struct {
		seg  Segment
		want []string
	}{
		{SegmentJoinedMonth, []string{"1", "4"}},
		{SegmentActiveNow, []string{"1"}},
		{SegmentHotspot, []string{"2", "3"}},
		{SegmentExpiredTotal, []string{"2", "4"}},
		{SegmentExpiredHotspot, []string{"2"}},
		{SegmentPending, []string{"2", "3"}},
		{SegmentLeft, []string{"3"}},
		{Segment("anything"), []string{"1", "2", "3", "4"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.seg), func(t *testing.T) {
			assert.Equal(t, tt.want, idsOf(r.Segment(tt.seg)))
		})
	}
}

func TestSummary(t *testing.T) {
	r, _ := newRegistry(t, sampleClients()...)

	s := r.Summary()

	assert.Equal(t, Summary{
		Total: 4, JoinedMonth: 2, Active: 1, Hotspot: 2, Expired: 2,
		ExpiredHotspot: 1, Pending: 2, Left: 1, TotalBalance: 350,
	}, s)
}

func TestIsExpiredIgnoresUnreadableDates(t *testing.T) {
	assert.False(t, IsExpired(models.Client{ExpiryDate: ""}, today))
	assert.True(t, IsExpired(models.Client{ExpiryDate: "2024-06-20"}, today))
	assert.False(t, IsExpired(models.Client{ExpiryDate: "2024-06-22"}, today))
}
