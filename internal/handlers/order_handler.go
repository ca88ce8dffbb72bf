package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"pizza-orders/internal/forms"
	"pizza-orders/internal/repository"
	"pizza-orders/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type OrderHandler struct {
	orderService *services.OrderService
	forms        *forms.Validator
	view         *Renderer
	logger       zerolog.Logger
}

func NewOrderHandler(orderService *services.OrderService, validator *forms.Validator, view *Renderer, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		forms:        validator,
		view:         view,
		logger:       logger,
	}
}

func (h *OrderHandler) Index(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.List(r.Context())
	if err != nil {
		h.view.ServerError(w, r, err)
		return
	}

	h.view.Render(w, r, http.StatusOK, "index", PageData{Title: "Orders", Orders: orders})
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.orderService.Catalog(r.Context())
	if err != nil {
		h.view.ServerError(w, r, err)
		return
	}

	var form forms.OrderForm
	data := PageData{Title: "New Order", Form: &form, Catalog: catalog}

	if r.Method != http.MethodPost {
		h.view.Render(w, r, http.StatusOK, "pizza", data)
		return
	}

	if !h.bindOrder(w, r, &form, &data, "pizza") {
		return
	}

	order, err := form.ToOrder()
	if err != nil {
		h.view.ServerError(w, r, err)
		return
	}
	order.ID = 0

	if _, err := h.orderService.Create(r.Context(), order); err != nil {
		h.view.ServerError(w, r, err)
		return
	}

	h.view.session(r).Flash("success", "Pizza order placed successfully!")
	h.view.Redirect(w, r, "/")
}

func (h *OrderHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	order, err := h.orderService.Get(r.Context(), id)
	if errors.Is(err, repository.ErrOrderNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.view.ServerError(w, r, err)
		return
	}

	if r.Method != http.MethodPost {
		h.view.Render(w, r, http.StatusOK, "confirm_delete", PageData{Title: "Delete Order", Order: order})
		return
	}

	if err := h.orderService.Delete(r.Context(), id); err != nil {
		h.view.ServerError(w, r, err)
		return
	}

	h.view.session(r).Flash("success", "Order deleted successfully!")
	h.view.Redirect(w, r, "/")
}

func (h *OrderHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	catalog, err := h.orderService.Catalog(r.Context())
	if err != nil {
		h.view.ServerError(w, r, err)
		return
	}

	existing, err := h.orderService.Get(r.Context(), id)
	if errors.Is(err, repository.ErrOrderNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.view.ServerError(w, r, err)
		return
	}

	if r.Method != http.MethodPost {
		form := forms.PrefillOrderForm(*existing)
		h.view.Render(w, r, http.StatusOK, "edit_order", PageData{Title: "Edit Order", Form: &form, Catalog: catalog, Order: existing})
		return
	}

	var form forms.OrderForm
	data := PageData{Title: "Edit Order", Form: &form, Catalog: catalog, Order: existing}
	if !h.bindOrder(w, r, &form, &data, "edit_order") {
		return
	}

	// The path decides which order is edited, not the hidden field.
	form.ID = id
	order, err := form.ToOrder()
	if err != nil {
		h.view.ServerError(w, r, err)
		return
	}

	err = h.orderService.Update(r.Context(), order)
	if errors.Is(err, repository.ErrOrderNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.view.ServerError(w, r, err)
		return
	}

	h.view.session(r).Flash("success", "Order updated successfully!")
	h.view.Redirect(w, r, "/")
}

// bindOrder decodes and validates the order form. On failure it renders page
// with the field errors and returns false.
func (h *OrderHandler) bindOrder(w http.ResponseWriter, r *http.Request, form *forms.OrderForm, data *PageData, page string) bool {
	data.Errors = h.forms.Bind(r, form)
	form.CheckCatalog(data.Catalog, data.Errors)
	if !data.Errors.Any() {
		return true
	}

	h.logger.Debug().Interface("errors", data.Errors).Msg("Order form rejected")
	h.view.session(r).Flash("danger", "Please correct the errors in the form.")
	h.view.Render(w, r, http.StatusUnprocessableEntity, page, *data)
	return false
}

func (h *OrderHandler) orderID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		h.notFound(w, r)
		return 0, false
	}
	return id, true
}

func (h *OrderHandler) notFound(w http.ResponseWriter, r *http.Request) {
	h.view.session(r).Flash("danger", "Order not found.")
	h.view.Redirect(w, r, "/")
}
