package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sandeepkv93/catalog-api/internal/http/response"
	"github.com/sandeepkv93/catalog-api/internal/observability"
	"github.com/sandeepkv93/catalog-api/internal/service"
)

const categoriesListPath = "/api/categories/get"

type CategoryHandler struct {
	svc      service.CategoryService
	maxLimit int
}

func NewCategoryHandler(svc service.CategoryService, maxLimit int) *CategoryHandler {
	return &CategoryHandler{svc: svc, maxLimit: maxLimit}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ListPaged(r.Context(), parsePageRequest(r, h.maxLimit))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	observability.RecordCatalogListLimit(r.Context(), "category", res.Limit)
	response.Paginated(w, r, msgFound, newCategoryDetailViews(res.Items), response.Page{
		Number:     res.Page,
		Limit:      res.Limit,
		TotalPages: res.TotalPages,
		Path:       categoriesListPath,
	})
}

func (h *CategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	category, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, r, msgFound, newCategoryDetailView(category))
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body categoryRequest
	if !decodeAndValidate(w, r, &body) {
		return
	}
	created, err := h.svc.Create(r.Context(), service.CategoryInput{Name: body.Name, Description: body.Description})
	if err != nil {
		h.audit(r, "create", "", err)
		writeServiceError(w, r, err)
		return
	}
	h.audit(r, "create", formatID(created.ID), nil)
	response.Success(w, r, msgCreated, newCategoryWriteView(created))
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	var body categoryRequest
	if !decodeAndValidate(w, r, &body) {
		return
	}
	updated, err := h.svc.Update(r.Context(), id, service.CategoryInput{Name: body.Name, Description: body.Description})
	h.audit(r, "update", formatID(id), err)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, r, "Category updated successfully", newCategoryWriteView(updated))
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	removedProducts, err := h.svc.DeleteByID(r.Context(), id)
	h.audit(r, "delete", formatID(id), err)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if removedProducts > 0 {
		observability.EmitAudit(r, observability.AuditInput{
			EventName:  "catalog.category.delete.cascade",
			TargetType: "category",
			TargetID:   formatID(id),
			Action:     "delete",
			Outcome:    "success",
			Reason:     "products_removed=" + strconv.FormatInt(removedProducts, 10),
		})
	}
	response.Success(w, r, "Category deleted successfully", nil)
}

func (h *CategoryHandler) audit(r *http.Request, action, targetID string, err error) {
	observability.EmitAudit(r, observability.AuditInput{
		EventName:  "catalog.category." + action,
		TargetType: "category",
		TargetID:   targetID,
		Action:     action,
		Outcome:    auditOutcome(err),
		Reason:     auditReason(err),
	})
}
