package models

// Router records are illustrative sample data; nothing here talks to a device.

type RouterStatus string

const (
	RouterConnected    RouterStatus = "Connected"
	RouterDisconnected RouterStatus = "Disconnected"
)

type EntryStatus string

const (
	EntryEnabled  EntryStatus = "Enabled"
	EntryDisabled EntryStatus = "Disabled"
)

// Toggle flips Enabled and Disabled.
func (s EntryStatus) Toggle() EntryStatus {
	if s == EntryEnabled {
		return EntryDisabled
	}
	return EntryEnabled
}

type InterfaceStats struct {
	Name   string `json:"name" yaml:"name"`
	Type   string `json:"type" yaml:"type"`
	Status string `json:"status" yaml:"status"`
	RX     string `json:"rx" yaml:"rx"`
	TX     string `json:"tx" yaml:"tx"`
}

type Router struct {
	ID         string           `json:"id" yaml:"id"`
	Name       string           `json:"name" yaml:"name"`
	IP         string           `json:"ip" yaml:"ip"`
	Username   string           `json:"username" yaml:"username"`
	Status     RouterStatus     `json:"status" yaml:"status"`
	CPU        int              `json:"cpu" yaml:"cpu"`
	Memory     string           `json:"memory" yaml:"memory"`
	Uptime     string           `json:"uptime" yaml:"uptime"`
	Interfaces []InterfaceStats `json:"interfaces" yaml:"interfaces"`
}

type PPPoESecret struct {
	ID         string      `json:"id" yaml:"id"`
	Name       string      `json:"name" yaml:"name"`
	Password   string      `json:"password" yaml:"password"`
	Service    string      `json:"service" yaml:"service"`
	Profile    string      `json:"profile" yaml:"profile"`
	Status     EntryStatus `json:"status" yaml:"status"`
	LastCaller string      `json:"lastCaller,omitempty" yaml:"lastCaller"`
}

type HotspotServer struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Interface   string      `json:"interface" yaml:"interface"`
	Profile     string      `json:"profile" yaml:"profile"`
	Status      EntryStatus `json:"status" yaml:"status"`
	AddressPool string      `json:"addressPool" yaml:"addressPool"`
}

type FirewallRule struct {
	ID         string      `json:"id" yaml:"id"`
	Chain      string      `json:"chain" yaml:"chain"`
	Action     string      `json:"action" yaml:"action"`
	SrcAddress string      `json:"srcAddress,omitempty" yaml:"srcAddress"`
	DstAddress string      `json:"dstAddress,omitempty" yaml:"dstAddress"`
	Comment    string      `json:"comment" yaml:"comment"`
	Status     EntryStatus `json:"status" yaml:"status"`
}

type RouterLog struct {
	ID      string `json:"id" yaml:"id"`
	Time    string `json:"time" yaml:"time"`
	Topics  string `json:"topics" yaml:"topics"`
	Message string `json:"message" yaml:"message"`
	Type    string `json:"type" yaml:"type"`
}
