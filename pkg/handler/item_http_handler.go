package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/teaguenet/shadebar/pkg/driver"
	"github.com/teaguenet/shadebar/pkg/models"
	"github.com/teaguenet/shadebar/pkg/repository"
	itemrepo "github.com/teaguenet/shadebar/pkg/repository/item"
	"github.com/teaguenet/shadebar/pkg/utils"
	httputils "github.com/teaguenet/shadebar/pkg/utils/http"

	"github.com/sirupsen/logrus"
)

// Item represents an http handler for performing operations on a repository of catalog items.
type Item struct {
	repo repository.Item
}

// NewItemHandler creates a new http handler for performing operations on a repository of catalog items.
func NewItemHandler(db *driver.DB) *Item {
	return &Item{
		repo: itemrepo.NewPostgresItemRepo(db.Gorm),
	}
}

// CreateItem creates a new catalog item based on the supplied HTTP request and writes a response over HTTP.
func (h *Item) CreateItem(w http.ResponseWriter, r *http.Request) {
	var item models.Item
	if err := utils.DecodeJSONBody(w, r, &item, utils.MAX_CREATE_REQUEST_SIZE_IN_BYTES); err != nil {
		writeDecodeError(w, err)
		return
	}

	if err := item.IsValid(); err != nil {
		utils.WriteJSONErrorResponse(w, http.StatusBadRequest, "Item "+validationFailedErrMsgPrefix+err.Error())
		return
	}

	logrus.Info(fmt.Sprintf("Creating new item: %+v", item))
	createdId, err := h.repo.Create(&item)
	if err != nil {
		logMsg := fmt.Sprintf("Error creating item: %s", err.Error())
		utils.WriteJSONErrorResponse(w, http.StatusInternalServerError, internalServerErrMsg, logMsg)
		return
	}
	logrus.Info(fmt.Sprintf("Created new item (id: %d): %+v", createdId, item))
	utils.WriteJSONResponse(w, http.StatusCreated, map[string]uint{"id": createdId})
}

// GetItems retrieves a page of catalog items, paginated with the "limit", "after_id" and "before_id" query parameters.
func (h *Item) GetItems(w http.ResponseWriter, r *http.Request) {
	seek, err := utils.GetPageSeekOptions(r, readPageMaxLimit)
	if err != nil {
		utils.WriteJSONErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.repo.Fetch(seek)
	if err != nil {
		logMsg := fmt.Sprintf("Error reading items: %s", err.Error())
		utils.WriteJSONErrorResponse(w, http.StatusInternalServerError, internalServerErrMsg, logMsg)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, items)
}

// GetItem retrieves the single catalog item named by the route's id variable.
func (h *Item) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := httputils.GetPathVarAsUint(r, idVar)
	if err != nil {
		utils.WriteJSONErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	exists, err := h.repo.Exists(id)
	if err != nil {
		logMsg := fmt.Sprintf("Error reading item (id: %d): %s", id, err.Error())
		utils.WriteJSONErrorResponse(w, http.StatusInternalServerError, internalServerErrMsg, logMsg)
		return
	}
	if !exists {
		utils.WriteJSONErrorResponse(w, http.StatusNotFound, "Item not found.")
		return
	}

	item, err := h.repo.GetByID(id)
	if err != nil {
		logMsg := fmt.Sprintf("Error reading item (id: %d): %s", id, err.Error())
		utils.WriteJSONErrorResponse(w, http.StatusInternalServerError, internalServerErrMsg, logMsg)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, item)
}

// UpdateItem updates an existing catalog item. The "fields" query parameter
// selects a partial update. Inventory changes made here are explicit catalog
// maintenance; order processing adjusts stock only through its own
// transactions.
func (h *Item) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := httputils.GetPathVarAsUint(r, idVar)
	if err != nil {
		utils.WriteJSONErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var item models.Item
	if err := utils.DecodeJSONBody(w, r, &item, utils.MAX_CREATE_REQUEST_SIZE_IN_BYTES); err != nil {
		writeDecodeError(w, err)
		return
	}
	item.ID = id

	var fields []string
	if r.URL.Query().Has(fieldsParam) {
		fields = strings.Split(r.URL.Query().Get(fieldsParam), ",")
		err = item.PartialUpdateIsValid(fields)
	} else {
		err = item.IsValid()
	}
	if err != nil {
		utils.WriteJSONErrorResponse(w, http.StatusBadRequest, "Item "+validationFailedErrMsgPrefix+err.Error())
		return
	}

	exists, err := h.repo.Exists(id)
	if err != nil {
		logMsg := fmt.Sprintf("Error reading item (id: %d): %s", id, err.Error())
		utils.WriteJSONErrorResponse(w, http.StatusInternalServerError, internalServerErrMsg, logMsg)
		return
	}
	if !exists {
		utils.WriteJSONErrorResponse(w, http.StatusNotFound, "Item not found.")
		return
	}

	logrus.Info(fmt.Sprintf("Updating item (id: %d) to %+v", id, item))
	updated, err := h.repo.Update(&item, fields)
	if err != nil {
		logMsg := fmt.Sprintf("Error updating item (id: %d): %s", id, err.Error())
		utils.WriteJSONErrorResponse(w, http.StatusInternalServerError, internalServerErrMsg, logMsg)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, updated)
}

// DeleteItem removes the catalog item named by the route's id variable.
// Order lines referencing the item are left in place; they render with empty
// display fields from then on.
func (h *Item) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := httputils.GetPathVarAsUint(r, idVar)
	if err != nil {
		utils.WriteJSONErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	logrus.Info(fmt.Sprintf("Deleting item (id: %d)...", id))
	if err := h.repo.Delete(id); err != nil {
		logMsg := fmt.Sprintf("Error deleting item (id: %d): %s", id, err.Error())
		utils.WriteJSONErrorResponse(w, http.StatusInternalServerError, internalServerErrMsg, logMsg)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, map[string]bool{"success": true})
}

// SuggestCategory returns the category inferred from the supplied item
// number's prefix code. Pre-fills the catalog form only: the stored category
// is whatever the maintainer last saved.
func (h *Item) SuggestCategory(w http.ResponseWriter, r *http.Request) {
	itemNumber, err := httputils.GetQueryParamAsString(r, itemNumberParam)
	if err != nil {
		utils.WriteJSONErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	category := models.SuggestCategory(itemNumber)
	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{"category": category})
}

// writeDecodeError maps a JSON body decoding failure onto an HTTP error response.
func writeDecodeError(w http.ResponseWriter, err error) {
	if malformed, ok := err.(*utils.MalformedRequestError); ok {
		utils.WriteJSONErrorResponse(w, malformed.Status, malformed.Message)
		return
	}
	utils.WriteJSONErrorResponse(w, http.StatusInternalServerError, internalServerErrMsg, "Error decoding request body: "+err.Error())
}
