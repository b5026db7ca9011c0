package models

import (
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used for join, expiry and invoice dates.
const DateLayout = "2006-01-02"

type ConnectionType string

const (
	ConnectionPPPoE   ConnectionType = "PPPoE"
	ConnectionHotspot ConnectionType = "Hotspot"
)

type ClientStatus string

const (
	ClientActive    ClientStatus = "Active"
	ClientInactive  ClientStatus = "Inactive"
	ClientSuspended ClientStatus = "Suspended"
	ClientDisabled  ClientStatus = "Disabled"
)

type Client struct {
	ID         string         `json:"id" yaml:"id"`
	Name       string         `json:"name" yaml:"name"`
	Phone      string         `json:"phone" yaml:"phone"`
	Email      string         `json:"email,omitempty" yaml:"email"`
	Address    string         `json:"address,omitempty" yaml:"address"`
	MACAddress string         `json:"macAddress,omitempty" yaml:"macAddress"`
	Type       ConnectionType `json:"type" yaml:"type"`
	Plan       string         `json:"plan" yaml:"plan"`
	Status     ClientStatus   `json:"status" yaml:"status"`
	// Balance is in whole currency units; negative means the client owes money.
	Balance    int64  `json:"balance" yaml:"balance"`
	JoinDate   string `json:"joinDate" yaml:"joinDate"`
	ExpiryDate string `json:"expiryDate" yaml:"expiryDate"`
}

type InvoiceStatus string

const (
	InvoicePaid    InvoiceStatus = "Paid"
	InvoiceUnpaid  InvoiceStatus = "Unpaid"
	InvoiceOverdue InvoiceStatus = "Overdue"
)

// Invoice refers to its client by name only.
type Invoice struct {
	ID     string          `json:"id"`
	Client string          `json:"client"`
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"`
	Status InvoiceStatus   `json:"status"`
	Method string          `json:"method"`
}

type HotspotPackage struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Price    int64  `json:"price" yaml:"price"`
	Validity string `json:"validity" yaml:"validity"`
	Limit    string `json:"limit" yaml:"limit"`
}

type VoucherPattern string

const (
	PatternNone    VoucherPattern = "none"
	PatternDots    VoucherPattern = "dots"
	PatternLines   VoucherPattern = "lines"
	PatternCircuit VoucherPattern = "circuit"
	PatternMesh    VoucherPattern = "mesh"
)

type BorderStyle string

const (
	BorderNone   BorderStyle = "none"
	BorderSolid  BorderStyle = "solid"
	BorderDashed BorderStyle = "dashed"
	BorderDouble BorderStyle = "double"
)

type VoucherLayout string

const (
	LayoutClassic  VoucherLayout = "classic"
	LayoutModern   VoucherLayout = "modern"
	LayoutMinimal  VoucherLayout = "minimal"
	LayoutGradient VoucherLayout = "gradient"
)

type VoucherTemplate struct {
	BackgroundColor string         `json:"backgroundColor" yaml:"backgroundColor"`
	SecondaryColor  string         `json:"secondaryColor" yaml:"secondaryColor"`
	TextColor       string         `json:"textColor" yaml:"textColor"`
	ShowLogo        bool           `json:"showLogo" yaml:"showLogo"`
	ShowQR          bool           `json:"showQR" yaml:"showQR"`
	Pattern         VoucherPattern `json:"pattern" yaml:"pattern"`
	BorderStyle     BorderStyle    `json:"borderStyle" yaml:"borderStyle"`
	Layout          VoucherLayout  `json:"layout" yaml:"layout"`
}

// SavedVoucherTemplate is a named design; its JSON form is the template
// fields plus id, templateName and createdAt.
type SavedVoucherTemplate struct {
	VoucherTemplate `yaml:",inline"`
	ID              string `json:"id" yaml:"id"`
	TemplateName    string `json:"templateName" yaml:"templateName"`
	CreatedAt       string `json:"createdAt" yaml:"createdAt"`
}

type VoucherStatus string

const (
	VoucherUnused  VoucherStatus = "Unused"
	VoucherUsed    VoucherStatus = "Used"
	VoucherExpired VoucherStatus = "Expired"
)

type VoucherCard struct {
	ID        string          `json:"id"`
	Code      string          `json:"code"`
	Serial    string          `json:"serial"`
	Plan      string          `json:"plan"`
	Price     int64           `json:"price"`
	Validity  string          `json:"validity"`
	Status    VoucherStatus   `json:"status"`
	CreatedAt string          `json:"createdAt"`
	Mobile    string          `json:"mobile,omitempty"`
	Design    VoucherTemplate `json:"design"`
}

type TicketPriority string

const (
	PriorityUrgent TicketPriority = "Urgent"
	PriorityMedium TicketPriority = "Medium"
	PriorityLow    TicketPriority = "Low"
)

type TicketStatus string

const (
	TicketOpen       TicketStatus = "Open"
	TicketProcessing TicketStatus = "Processing"
	TicketResolved   TicketStatus = "Resolved"
)

type TicketCategory string

const (
	CategoryInternetSlow TicketCategory = "Internet Slow"
	CategoryNoLink       TicketCategory = "No Link"
	CategoryBilling      TicketCategory = "Billing"
	CategoryTechnical    TicketCategory = "Technical"
	CategoryOther        TicketCategory = "Other"
)

type SupportTicket struct {
	ID          string         `json:"id" yaml:"id"`
	ClientID    string         `json:"clientId" yaml:"clientId"`
	ClientName  string         `json:"clientName" yaml:"clientName"`
	Subject     string         `json:"subject" yaml:"subject"`
	Description string         `json:"description" yaml:"description"`
	Priority    TicketPriority `json:"priority" yaml:"priority"`
	Status      TicketStatus   `json:"status" yaml:"status"`
	CreatedAt   string         `json:"createdAt" yaml:"createdAt"`
	Category    TicketCategory `json:"category" yaml:"category"`
}

type AnnouncementType string

const (
	AnnouncementMaintenance AnnouncementType = "Maintenance"
	AnnouncementAlert       AnnouncementType = "Alert"
	AnnouncementNews        AnnouncementType = "News"
)

type Announcement struct {
	ID        string           `json:"id" yaml:"id"`
	Title     string           `json:"title" yaml:"title"`
	Message   string           `json:"message" yaml:"message"`
	Type      AnnouncementType `json:"type" yaml:"type"`
	Active    bool             `json:"active" yaml:"active"`
	CreatedAt string           `json:"createdAt" yaml:"createdAt"`
}
