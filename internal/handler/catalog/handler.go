package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	catalogModel "github.com/interlux/chatbot/backend/internal/model/catalog"
	catalogService "github.com/interlux/chatbot/backend/internal/service/catalog"
	"github.com/interlux/chatbot/backend/pkg/utils"
)

// Handler exposes catalog administration over the four record kinds.
type Handler struct {
	catalogSvc *catalogService.Service
}

// New creates the catalog handler.
func New(catalogSvc *catalogService.Service) *Handler {
	return &Handler{catalogSvc: catalogSvc}
}

// RegisterRoutes mounts the CRUD routes for each kind.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/catalog", func(r chi.Router) {
		r.Get("/products", h.handleListProducts)
		r.Get("/products/{id}", h.handleGetProduct)
		r.Post("/products", h.handleAddProduct)
		r.Put("/products/{id}", h.handleUpdateProduct)
		r.Delete("/products/{id}", h.handleDeleteProduct)

		r.Get("/policies", h.handleListPolicies)
		r.Get("/policies/{id}", h.handleGetPolicy)
		r.Post("/policies", h.handleAddPolicy)
		r.Put("/policies/{id}", h.handleUpdatePolicy)
		r.Delete("/policies/{id}", h.handleDeletePolicy)

		r.Get("/faqs", h.handleListFAQs)
		r.Get("/faqs/{id}", h.handleGetFAQ)
		r.Post("/faqs", h.handleAddFAQ)
		r.Put("/faqs/{id}", h.handleUpdateFAQ)
		r.Delete("/faqs/{id}", h.handleDeleteFAQ)

		r.Get("/orders", h.handleListOrders)
		r.Get("/orders/{id}", h.handleGetOrder)
		r.Post("/orders", h.handleAddOrder)
		r.Put("/orders/{id}", h.handleUpdateOrder)
		r.Delete("/orders/{id}", h.handleDeleteOrder)
	})
}

// statusFor maps catalog errors onto HTTP statuses at this boundary.
func statusFor(err error) int {
	switch {
	case errors.Is(err, catalogModel.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalogModel.ErrDuplicateID):
		return http.StatusConflict
	case errors.Is(err, catalogModel.ErrInvalidRecord):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondMutation(w http.ResponseWriter, err error) {
	if err != nil {
		utils.RespondError(w, statusFor(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogSvc.Store().Products()
	if err != nil {
		utils.RespondError(w, statusFor(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, products)
}

func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalogSvc.Store().ProductByID(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondError(w, statusFor(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, p)
}

func (h *Handler) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	var p catalogModel.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	respondMutation(w, h.catalogSvc.AddProduct(r.Context(), p))
}

func (h *Handler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var p catalogModel.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	respondMutation(w, h.catalogSvc.UpdateProduct(r.Context(), chi.URLParam(r, "id"), p))
}

func (h *Handler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	respondMutation(w, h.catalogSvc.DeleteProduct(r.Context(), chi.URLParam(r, "id")))
}

func (h *Handler) handleListPolicies(w http.ResponseWriter, r *http.Request) {
	policies, err := h.catalogSvc.Store().Policies()
	if err != nil {
		utils.RespondError(w, statusFor(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, policies)
}

func (h *Handler) handleGetPolicy(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalogSvc.Store().PolicyByID(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondError(w, statusFor(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, p)
}

func (h *Handler) handleAddPolicy(w http.ResponseWriter, r *http.Request) {
	var p catalogModel.Policy
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	respondMutation(w, h.catalogSvc.AddPolicy(r.Context(), p))
}

func (h *Handler) handleUpdatePolicy(w http.ResponseWriter, r *http.Request) {
	var p catalogModel.Policy
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	respondMutation(w, h.catalogSvc.UpdatePolicy(r.Context(), chi.URLParam(r, "id"), p))
}

func (h *Handler) handleDeletePolicy(w http.ResponseWriter, r *http.Request) {
	respondMutation(w, h.catalogSvc.DeletePolicy(r.Context(), chi.URLParam(r, "id")))
}

func (h *Handler) handleListFAQs(w http.ResponseWriter, r *http.Request) {
	faqs, err := h.catalogSvc.Store().FAQs()
	if err != nil {
		utils.RespondError(w, statusFor(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, faqs)
}

func (h *Handler) handleGetFAQ(w http.ResponseWriter, r *http.Request) {
	f, err := h.catalogSvc.Store().FAQByID(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondError(w, statusFor(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, f)
}

func (h *Handler) handleAddFAQ(w http.ResponseWriter, r *http.Request) {
	var f catalogModel.FAQ
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	respondMutation(w, h.catalogSvc.AddFAQ(r.Context(), f))
}

func (h *Handler) handleUpdateFAQ(w http.ResponseWriter, r *http.Request) {
	var f catalogModel.FAQ
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	respondMutation(w, h.catalogSvc.UpdateFAQ(r.Context(), chi.URLParam(r, "id"), f))
}

func (h *Handler) handleDeleteFAQ(w http.ResponseWriter, r *http.Request) {
	respondMutation(w, h.catalogSvc.DeleteFAQ(r.Context(), chi.URLParam(r, "id")))
}

func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	var (
		orders []catalogModel.Order
		err    error
	)
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		orders, err = h.catalogSvc.Store().OrdersByUser(userID)
	} else {
		orders, err = h.catalogSvc.Store().Orders()
	}
	if err != nil {
		utils.RespondError(w, statusFor(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, orders)
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.catalogSvc.Store().OrderByID(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondError(w, statusFor(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, o)
}

func (h *Handler) handleAddOrder(w http.ResponseWriter, r *http.Request) {
	var o catalogModel.Order
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	respondMutation(w, h.catalogSvc.AddOrder(o))
}

func (h *Handler) handleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	var o catalogModel.Order
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	respondMutation(w, h.catalogSvc.UpdateOrder(chi.URLParam(r, "id"), o))
}

func (h *Handler) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	respondMutation(w, h.catalogSvc.DeleteOrder(chi.URLParam(r, "id")))
}
