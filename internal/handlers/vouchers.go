package handlers

import (
	"bytes"
	"net/http"

	"github.com/gorilla/mux"

	"smartisp.net/console/internal/export"
	"smartisp.net/console/internal/models"
	"smartisp.net/console/internal/vouchers"
)

type GenerateRequest struct {
	PackageID string `json:"packageId"`
	Count     int    `json:"count"`
}

type SaveTemplateRequest struct {
	Name string `json:"name"`
}

func (h *Handler) GetPackages(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"packages": h.svc.Vouchers.Packages(),
			"selected": h.svc.Vouchers.SelectedPackage(),
		},
	})
}

func (h *Handler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var req models.HotspotPackage
	if err := decode(r, &req); err != nil {
		h.sendError(w, err)
		return
	}
	if req.Name == "" {
		h.sendJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Package name is required"})
		return
	}

	p := h.svc.Vouchers.CreatePackage(req)
	h.sendJSON(w, http.StatusCreated, Response{Success: true, Message: "Package created", Data: p})
}

func (h *Handler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	var patch vouchers.PackagePatch
	if err := decode(r, &patch); err != nil {
		h.sendError(w, err)
		return
	}

	p, err := h.svc.Vouchers.UpdatePackage(mux.Vars(r)["id"], patch)
	if err != nil {
		h.sendError(w, err)
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Message: "Package updated", Data: p})
}

func (h *Handler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Vouchers.DeletePackage(mux.Vars(r)["id"], confirmed(r)); err != nil {
		h.sendError(w, err)
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Message: "Package deleted"})
}

func (h *Handler) SelectPackage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.svc.Vouchers.SelectPackage(id); err != nil {
		h.sendError(w, err)
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: map[string]string{"selected": id}})
}

// GenerateVouchers uses the selected package when none is named.
func (h *Handler) GenerateVouchers(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := decode(r, &req); err != nil {
		h.sendError(w, err)
		return
	}
	if req.PackageID == "" {
		req.PackageID = h.svc.Vouchers.SelectedPackage()
	}

	batch, err := h.svc.Vouchers.GenerateBatch(req.PackageID, req.Count)
	if err != nil {
		h.sendError(w, err)
		return
	}
	h.sendJSON(w, http.StatusCreated, Response{Success: true, Message: "Vouchers generated", Data: batch})
}

func (h *Handler) GetVouchers(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: h.svc.Vouchers.Search(r.URL.Query().Get("q"))})
}

func (h *Handler) ExportVouchers(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = export.FormatXLSX
	}

	var buf bytes.Buffer
	if err := h.svc.Vouchers.ExportCards(&buf, format, r.URL.Query().Get("q")); err != nil {
		h.sendError(w, err)
		return
	}
	sendFile(w, format, "vouchers", buf.Bytes())
}

func (h *Handler) GetDesign(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: h.svc.Vouchers.Design()})
}

// UpdateDesign merges the body onto the active design.
func (h *Handler) UpdateDesign(w http.ResponseWriter, r *http.Request) {
	design := h.svc.Vouchers.Design()
	if err := decode(r, &design); err != nil {
		h.sendError(w, err)
		return
	}
	h.svc.Vouchers.SetDesign(design)
	h.sendJSON(w, http.StatusOK, Response{Success: true, Message: "Design updated", Data: design})
}

func (h *Handler) GetTemplates(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"templates": h.svc.Vouchers.Templates(),
			"presets":   h.svc.Vouchers.Presets(),
		},
	})
}

func (h *Handler) SaveTemplate(w http.ResponseWriter, r *http.Request) {
	var req SaveTemplateRequest
	if err := decode(r, &req); err != nil {
		h.sendError(w, err)
		return
	}

	tpl, err := h.svc.Vouchers.SaveTemplate(r.Context(), req.Name)
	if err != nil {
		h.sendError(w, err)
		return
	}
	h.sendJSON(w, http.StatusCreated, Response{Success: true, Message: "Template saved", Data: tpl})
}

func (h *Handler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Vouchers.DeleteTemplate(r.Context(), mux.Vars(r)["id"], confirmed(r)); err != nil {
		h.sendError(w, err)
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Message: "Template deleted"})
}

func (h *Handler) ApplyTemplate(w http.ResponseWriter, r *http.Request) {
	design, err := h.svc.Vouchers.ApplyTemplate(mux.Vars(r)["id"])
	if err != nil {
		h.sendError(w, err)
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Message: "Template applied", Data: design})
}

// sendFile serves an export as an attachment.
func sendFile(w http.ResponseWriter, format, name string, body []byte) {
	w.Header().Set("Content-Type", export.ContentType(format))
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+"."+export.FileExtension(format)+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
