package handlers

import (
	"github.com/gorilla/mux"
)

// Routes registers every endpoint. protect wraps the authenticated subrouter.
func (h *Handler) Routes(protect ...mux.MiddlewareFunc) *mux.Router {
	r := mux.NewRouter()

	// ============== PUBLIC ROUTES ==============
	r.HandleFunc("/api/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/api/auth/login", h.Login).Methods("POST")

	// ============== PROTECTED ROUTES ==============
	api := r.PathPrefix("/api").Subrouter()
	api.Use(protect...)

	// Auth
	api.HandleFunc("/auth/logout", h.Logout).Methods("POST")
	api.HandleFunc("/auth/status", h.AuthStatus).Methods("GET")

	// Dashboard
	api.HandleFunc("/dashboard/summary", h.GetDashboardSummary).Methods("GET")
	api.HandleFunc("/dashboard/segments/{kind}", h.GetDashboardSegment).Methods("GET")

	// Clients
	api.HandleFunc("/clients", h.GetClients).Methods("GET")
	api.HandleFunc("/clients", h.CreateClient).Methods("POST")
	api.HandleFunc("/clients/{id}", h.GetClient).Methods("GET")
	api.HandleFunc("/clients/{id}", h.UpdateClient).Methods("PUT")
	api.HandleFunc("/clients/{id}", h.DeleteClient).Methods("DELETE")
	api.HandleFunc("/clients/{id}/toggle-status", h.ToggleClientStatus).Methods("POST")
	api.HandleFunc("/clients/{id}/suspend-toggle", h.SuspendToggleClient).Methods("POST")
	api.HandleFunc("/clients/{id}/renew", h.RenewClient).Methods("POST")
	api.HandleFunc("/clients/{id}/collect", h.CollectPayment).Methods("POST")

	// Billing
	api.HandleFunc("/invoices", h.GetInvoices).Methods("GET")
	api.HandleFunc("/invoices", h.CreateInvoice).Methods("POST")
	api.HandleFunc("/invoices/stats", h.GetInvoiceStats).Methods("GET")
	api.HandleFunc("/invoices/{id}", h.GetInvoice).Methods("GET")
	api.HandleFunc("/invoices/{id}/print", h.PrintInvoice).Methods("GET")

	// Vouchers
	api.HandleFunc("/vouchers", h.GetVouchers).Methods("GET")
	api.HandleFunc("/vouchers/generate", h.GenerateVouchers).Methods("POST")
	api.HandleFunc("/vouchers/export", h.ExportVouchers).Methods("GET")
	api.HandleFunc("/vouchers/packages", h.GetPackages).Methods("GET")
	api.HandleFunc("/vouchers/packages", h.CreatePackage).Methods("POST")
	api.HandleFunc("/vouchers/packages/{id}", h.UpdatePackage).Methods("PUT")
	api.HandleFunc("/vouchers/packages/{id}", h.DeletePackage).Methods("DELETE")
	api.HandleFunc("/vouchers/packages/{id}/select", h.SelectPackage).Methods("POST")
	api.HandleFunc("/vouchers/design", h.GetDesign).Methods("GET")
	api.HandleFunc("/vouchers/design", h.UpdateDesign).Methods("PUT")
	api.HandleFunc("/vouchers/templates", h.GetTemplates).Methods("GET")
	api.HandleFunc("/vouchers/templates", h.SaveTemplate).Methods("POST")
	api.HandleFunc("/vouchers/templates/{id}", h.DeleteTemplate).Methods("DELETE")
	api.HandleFunc("/vouchers/templates/{id}/apply", h.ApplyTemplate).Methods("POST")

	// Support
	api.HandleFunc("/support/tickets", h.GetTickets).Methods("GET")
	api.HandleFunc("/support/tickets", h.CreateTicket).Methods("POST")
	api.HandleFunc("/support/tickets/stats", h.GetTicketStats).Methods("GET")
	api.HandleFunc("/support/tickets/{id}", h.GetTicket).Methods("GET")
	api.HandleFunc("/support/tickets/{id}", h.DeleteTicket).Methods("DELETE")
	api.HandleFunc("/support/tickets/{id}/status", h.UpdateTicketStatus).Methods("PUT")
	api.HandleFunc("/support/announcements", h.GetAnnouncements).Methods("GET")
	api.HandleFunc("/support/announcements", h.CreateAnnouncement).Methods("POST")
	api.HandleFunc("/support/announcements/{id}/toggle", h.ToggleAnnouncement).Methods("POST")

	// Settings
	api.HandleFunc("/settings", h.GetSettings).Methods("GET")
	api.HandleFunc("/settings", h.UpdateSettings).Methods("PUT")
	api.HandleFunc("/settings/theme", h.GetTheme).Methods("GET")
	api.HandleFunc("/settings/login", h.UpdateLoginConfig).Methods("PUT")
	api.HandleFunc("/settings/hotspot", h.UpdateHotspotConfig).Methods("PUT")
	api.HandleFunc("/settings/presets", h.GetHotspotPresets).Methods("GET")
	api.HandleFunc("/settings/presets/{name}/apply", h.ApplyHotspotPreset).Methods("POST")
	api.HandleFunc("/settings/save", h.SaveSettings).Methods("POST")

	// MikroTik
	api.HandleFunc("/mikrotik/routers", h.GetRouters).Methods("GET")
	api.HandleFunc("/mikrotik/routers", h.AddRouter).Methods("POST")
	api.HandleFunc("/mikrotik/routers/{id}", h.GetRouter).Methods("GET")
	api.HandleFunc("/mikrotik/routers/{id}", h.DeleteRouter).Methods("DELETE")
	api.HandleFunc("/mikrotik/routers/{id}/logs/stream", h.StreamRouterLogs).Methods("GET")
	api.HandleFunc("/mikrotik/logs", h.GetRouterLogs).Methods("GET")
	api.HandleFunc("/mikrotik/pppoe", h.GetPPPoESecrets).Methods("GET")
	api.HandleFunc("/mikrotik/pppoe/{id}", h.SavePPPoE).Methods("PUT")
	api.HandleFunc("/mikrotik/pppoe/{id}", h.DeletePPPoE).Methods("DELETE")
	api.HandleFunc("/mikrotik/pppoe/{id}/toggle", h.TogglePPPoE).Methods("POST")
	api.HandleFunc("/mikrotik/hotspot", h.GetHotspotServers).Methods("GET")
	api.HandleFunc("/mikrotik/hotspot/{id}", h.SaveHotspotServer).Methods("PUT")
	api.HandleFunc("/mikrotik/hotspot/{id}", h.DeleteHotspotServer).Methods("DELETE")
	api.HandleFunc("/mikrotik/hotspot/{id}/toggle", h.ToggleHotspotServer).Methods("POST")
	api.HandleFunc("/mikrotik/firewall", h.GetFirewallRules).Methods("GET")
	api.HandleFunc("/mikrotik/firewall/{id}", h.SaveFirewallRule).Methods("PUT")
	api.HandleFunc("/mikrotik/firewall/{id}", h.DeleteFirewallRule).Methods("DELETE")
	api.HandleFunc("/mikrotik/firewall/{id}/toggle", h.ToggleFirewallRule).Methods("POST")

	// Reports
	api.HandleFunc("/reports/summary", h.GetReportSummary).Methods("GET")
	api.HandleFunc("/reports/transactions", h.GetTransactions).Methods("GET")
	api.HandleFunc("/reports/export", h.ExportReport).Methods("GET")

	return r
}
