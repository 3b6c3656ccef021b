package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/teaguenet/shadebar/pkg/driver"
	"github.com/teaguenet/shadebar/pkg/models"
	"github.com/teaguenet/shadebar/pkg/pullsheet"
	"github.com/teaguenet/shadebar/pkg/repository"
	orderrepo "github.com/teaguenet/shadebar/pkg/repository/order"
	"github.com/teaguenet/shadebar/pkg/utils"
	httputils "github.com/teaguenet/shadebar/pkg/utils/http"

	"github.com/sirupsen/logrus"
)

// Order represents a handler for performing operations on orders via HTTP.
type Order struct {
	repo repository.Order
}

// NewOrderHandler creates and initializes a new handler for performing operations on orders via HTTP.
func NewOrderHandler(db *driver.DB) *Order {
	return &Order{
		repo: orderrepo.NewPostgresOrderRepo(db.Gorm),
	}
}

// orderLineRequest is the canonical wire shape of one order line. Aliased
// field names (sku, SKU, ...) seen in older clients are rejected by the
// decoder, not sniffed for.
type orderLineRequest struct {
	ItemNumber string `json:"itemNumber"`
	Quantity   int    `json:"quantity"`
}

type createOrderRequest struct {
	CustomerName string             `json:"customerName"`
	Notes        string             `json:"notes"`
	Items        []orderLineRequest `json:"items"`
}

type updateOrderRequest struct {
	CustomerName   string             `json:"customerName"`
	Notes          string             `json:"notes"`
	Items          []orderLineRequest `json:"items"`
	TouchTimestamp bool               `json:"touchTimestamp"`
}

// CreateOrder creates a new order based on the supplied HTTP request and sends a response in JSON containing the new order's id.
// Lines with a blank item number or non-positive quantity are dropped before
// processing; the request fails only if nothing survives. An item number
// that does not resolve against the catalog fails the whole request with no
// state change.
func (h *Order) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := utils.DecodeJSONBody(w, r, &req, utils.MAX_CREATE_REQUEST_SIZE_IN_BYTES); err != nil {
		writeDecodeError(w, err)
		return
	}

	order := models.Order{
		CustomerName: strings.TrimSpace(req.CustomerName),
		Notes:        req.Notes,
	}
	if err := order.CustomerNameIsValid(); err != nil {
		utils.WriteJSONErrorResponse(w, http.StatusBadRequest, "Order "+validationFailedErrMsgPrefix+err.Error())
		return
	}
	lines := models.FilterLines(linesFromRequest(req.Items))
	if len(lines) == 0 {
		utils.WriteJSONErrorResponse(w, http.StatusBadRequest, "Order "+validationFailedErrMsgPrefix+"order must contain at least one valid item")
		return
	}

	logrus.Info(fmt.Sprintf("Inserting new order for %q with %d lines...", order.CustomerName, len(lines)))
	createdID, err := h.repo.Create(&order, lines)
	if err != nil {
		var itemErr *repository.ItemNotFoundError
		if errors.As(err, &itemErr) {
			utils.WriteJSONErrorResponse(w, http.StatusBadRequest, itemErr.Error())
			return
		}
		logMsg := fmt.Sprintf("Error inserting order %+v into database: %s", order, err.Error())
		utils.WriteJSONErrorResponse(w, http.StatusInternalServerError, internalServerErrMsg, logMsg)
		return
	}
	logrus.Info(fmt.Sprintf("Created new order (id: %d) with total quantity %d", createdID, order.TotalQuantity))
	utils.WriteJSONResponse(w, http.StatusCreated, map[string]uint{"orderId": createdID})
}

// GetOrders sends a response containing a page of orders with their lines
// resolved against the current catalog. Filtering by customer name or date is
// left to the caller.
func (h *Order) GetOrders(w http.ResponseWriter, r *http.Request) {
	seek, err := utils.GetPageSeekOptions(r, readPageMaxLimit)
	if err != nil {
		utils.WriteJSONErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	orders, err := h.repo.Fetch(seek)
	if err != nil {
		logMsg := fmt.Sprintf("Error selecting orders: %s", err.Error())
		utils.WriteJSONErrorResponse(w, http.StatusInternalServerError, internalServerErrMsg, logMsg)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, orders)
}

// GetOrder sends a response containing the order named by the route's id
// variable, with resolved lines, or a 404 if it does not exist.
func (h *Order) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := h.fetchOrder(w, r)
	if !ok {
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, order)
}

// GetPullSheet assembles and returns the warehouse pull sheet for the order named by the route's id variable.
func (h *Order) GetPullSheet(w http.ResponseWriter, r *http.Request) {
	order, ok := h.fetchOrder(w, r)
	if !ok {
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, pullsheet.Assemble(order))
}

// UpdateOrder replaces an existing order's header fields and entire line set
// based on the supplied http request, and sends the updated order with
// freshly resolved lines. Repeating the same payload yields the same final
// line set. Setting touchTimestamp refreshes the order's creation timestamp.
func (h *Order) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := httputils.GetPathVarAsUint(r, idVar)
	if err != nil {
		utils.WriteJSONErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateOrderRequest
	if err := utils.DecodeJSONBody(w, r, &req, utils.MAX_CREATE_REQUEST_SIZE_IN_BYTES); err != nil {
		writeDecodeError(w, err)
		return
	}

	order := models.Order{
		CustomerName: strings.TrimSpace(req.CustomerName),
		Notes:        req.Notes,
	}
	order.ID = id
	if err := order.CustomerNameIsValid(); err != nil {
		utils.WriteJSONErrorResponse(w, http.StatusBadRequest, "Order "+validationFailedErrMsgPrefix+err.Error())
		return
	}
	lines := models.FilterLines(linesFromRequest(req.Items))
	if len(lines) == 0 {
		utils.WriteJSONErrorResponse(w, http.StatusBadRequest, "Order "+validationFailedErrMsgPrefix+"order must contain at least one valid item")
		return
	}

	logrus.Info(fmt.Sprintf("Updating order (id: %d) with %d lines (touchTimestamp: %t)", id, len(lines), req.TouchTimestamp))
	updated, err := h.repo.Update(&order, lines, req.TouchTimestamp)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			utils.WriteJSONErrorResponse(w, http.StatusNotFound, "Order not found.")
			return
		}
		var itemErr *repository.ItemNotFoundError
		if errors.As(err, &itemErr) {
			utils.WriteJSONErrorResponse(w, http.StatusBadRequest, itemErr.Error())
			return
		}
		logMsg := fmt.Sprintf("Error updating order (id: %d): %s", id, err.Error())
		utils.WriteJSONErrorResponse(w, http.StatusInternalServerError, internalServerErrMsg, logMsg)
		return
	}
	logrus.Info(fmt.Sprintf("Updated order (id: %d) to total quantity %d", id, updated.TotalQuantity))
	utils.WriteJSONResponse(w, http.StatusOK, updated)
}

// DeleteOrder deletes an existing order and all of its lines based on the
// supplied http request, crediting the lines' quantities back to the catalog.
func (h *Order) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := httputils.GetPathVarAsUint(r, idVar)
	if err != nil {
		utils.WriteJSONErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	logrus.Info(fmt.Sprintf("Deleting order (id: %d)...", id))
	if err := h.repo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			utils.WriteJSONErrorResponse(w, http.StatusNotFound, "Order not found.")
			return
		}
		logMsg := fmt.Sprintf("Error deleting order (id: %d): %s", id, err.Error())
		utils.WriteJSONErrorResponse(w, http.StatusInternalServerError, internalServerErrMsg, logMsg)
		return
	}
	logrus.Info(fmt.Sprintf("Deleted order (id: %d)", id))
	utils.WriteJSONResponse(w, http.StatusOK, map[string]bool{"success": true})
}

// fetchOrder reads the order named by the route's id variable, writing the
// error response itself when the read fails.
func (h *Order) fetchOrder(w http.ResponseWriter, r *http.Request) (*models.Order, bool) {
	id, err := httputils.GetPathVarAsUint(r, idVar)
	if err != nil {
		utils.WriteJSONErrorResponse(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	order, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			utils.WriteJSONErrorResponse(w, http.StatusNotFound, "Order not found.")
			return nil, false
		}
		logMsg := fmt.Sprintf("Error selecting order (id: %d): %s", id, err.Error())
		utils.WriteJSONErrorResponse(w, http.StatusInternalServerError, internalServerErrMsg, logMsg)
		return nil, false
	}
	return order, true
}

func linesFromRequest(items []orderLineRequest) []models.OrderLine {
	lines := make([]models.OrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, models.OrderLine{ItemNumber: item.ItemNumber, Quantity: item.Quantity})
	}
	return lines
}
