package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sandeepkv93/catalog-api/internal/http/response"
	"github.com/sandeepkv93/catalog-api/internal/observability"
	"github.com/sandeepkv93/catalog-api/internal/service"
)

const productsListPath = "/api/products/get"

type ProductHandler struct {
	svc      service.ProductService
	maxLimit int
}

func NewProductHandler(svc service.ProductService, maxLimit int) *ProductHandler {
	return &ProductHandler{svc: svc, maxLimit: maxLimit}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ListPaged(r.Context(), parsePageRequest(r, h.maxLimit))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	observability.RecordCatalogListLimit(r.Context(), "product", res.Limit)
	response.Paginated(w, r, msgFound, newProductDetailViews(res.Items), response.Page{
		Number:     res.Page,
		Limit:      res.Limit,
		TotalPages: res.TotalPages,
		Path:       productsListPath,
	})
}

func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	product, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, r, msgFound, newProductDetailView(product))
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body productRequest
	if !decodeAndValidate(w, r, &body) {
		return
	}
	created, err := h.svc.Create(r.Context(), body.input())
	if err != nil {
		h.audit(r, "create", "", err)
		writeServiceError(w, r, err)
		return
	}
	h.audit(r, "create", formatID(created.ID), nil)
	response.Success(w, r, msgCreated, newProductDetailView(created))
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	var body productRequest
	if !decodeAndValidate(w, r, &body) {
		return
	}
	updated, err := h.svc.Update(r.Context(), id, body.input())
	h.audit(r, "update", formatID(id), err)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, r, "Product updated successfully", newProductDetailView(updated))
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	err = h.svc.DeleteByID(r.Context(), id)
	h.audit(r, "delete", formatID(id), err)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, r, "Product deleted successfully", nil)
}

func (h *ProductHandler) audit(r *http.Request, action, targetID string, err error) {
	observability.EmitAudit(r, observability.AuditInput{
		EventName:  "catalog.product." + action,
		TargetType: "product",
		TargetID:   targetID,
		Action:     action,
		Outcome:    auditOutcome(err),
		Reason:     auditReason(err),
	})
}

// input is only called after validation, so the pointers are set.
func (b productRequest) input() service.ProductInput {
	return service.ProductInput{
		Name:        b.Name,
		Description: b.Description,
		Price:       *b.Price,
		CategoryID:  *b.CategoryID,
	}
}
