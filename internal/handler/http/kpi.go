package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/peoplepulse/perform-backend-go/internal/domain/kpi"
	"github.com/peoplepulse/perform-backend-go/internal/handler/http/response"
)

// KPIHandler defines the KPI handler interface
type KPIHandler interface {
	Set(w http.ResponseWriter, r *http.Request)
	Acknowledge(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	UpdateItemStatus(w http.ResponseWriter, r *http.Request)
	CreateTemplate(w http.ResponseWriter, r *http.Request)
	ListTemplates(w http.ResponseWriter, r *http.Request)
}

type kpiHandlerImpl struct {
	kpiService kpi.KPIService
}

// NewKPIHandler creates a new KPI handler
func NewKPIHandler(kpiService kpi.KPIService) KPIHandler {
	return &kpiHandlerImpl{kpiService: kpiService}
}

// getUserIDFromContext extracts user_id from JWT context
func getUserIDFromContext(r *http.Request) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	if userID, ok := claims["user_id"].(string); ok {
		return userID
	}
	return ""
}

// Set creates a KPI for a direct report
func (h *kpiHandlerImpl) Set(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req kpi.SetKPIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.kpiService.SetKPI(r.Context(), userID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "KPI created", created)
}

// Acknowledge marks a pending KPI as acknowledged by its employee
func (h *kpiHandlerImpl) Acknowledge(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	kpiID := chi.URLParam(r, "id")
	if kpiID == "" {
		response.BadRequest(w, "KPI ID is required", nil)
		return
	}

	record, err := h.kpiService.AcknowledgeKPI(r.Context(), userID, kpiID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "KPI acknowledged", record)
}

func (h *kpiHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	kpiID := chi.URLParam(r, "id")
	if kpiID == "" {
		response.BadRequest(w, "KPI ID is required", nil)
		return
	}

	record, err := h.kpiService.GetKPI(r.Context(), userID, kpiID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}

func (h *kpiHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	filter := kpi.KPIFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		ManagerID:  r.URL.Query().Get("manager_id"),
		PeriodType: r.URL.Query().Get("period_type"),
	}
	if year := r.URL.Query().Get("year"); year != "" {
		if y, err := strconv.Atoi(year); err == nil {
			filter.Year = y
		}
	}

	records, err := h.kpiService.ListKPIs(r.Context(), userID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// UpdateItemStatus sets or clears the performance flag on a KPI item
func (h *kpiHandlerImpl) UpdateItemStatus(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	kpiID := chi.URLParam(r, "id")
	itemID := chi.URLParam(r, "itemID")
	if kpiID == "" || itemID == "" {
		response.BadRequest(w, "KPI ID and item ID are required", nil)
		return
	}

	var req kpi.UpdateItemStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	item, err := h.kpiService.UpdateItemStatus(r.Context(), userID, kpiID, itemID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Item status updated", item)
}

func (h *kpiHandlerImpl) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req kpi.CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	template, err := h.kpiService.CreateTemplate(r.Context(), userID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Template created", template)
}

func (h *kpiHandlerImpl) ListTemplates(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	templates, err := h.kpiService.ListTemplates(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, templates)
}
