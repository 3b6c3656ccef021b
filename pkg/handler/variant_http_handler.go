package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/teaguenet/shadebar/pkg/driver"
	"github.com/teaguenet/shadebar/pkg/models"
	"github.com/teaguenet/shadebar/pkg/repository"
	variantrepo "github.com/teaguenet/shadebar/pkg/repository/variant"
	"github.com/teaguenet/shadebar/pkg/utils"
	httputils "github.com/teaguenet/shadebar/pkg/utils/http"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Variant represents an http handler for performing operations on a repository of item variants.
type Variant struct {
	repo repository.Variant
}

// NewVariantHandler creates a new http handler for performing operations on a repository of item variants.
func NewVariantHandler(db *driver.DB) *Variant {
	return &Variant{
		repo: variantrepo.NewPostgresVariantRepo(db.Gorm),
	}
}

// CreateVariant creates a new variant based on the supplied HTTP request and writes a response over HTTP.
func (h *Variant) CreateVariant(w http.ResponseWriter, r *http.Request) {
	var variant models.Variant
	if err := utils.DecodeJSONBody(w, r, &variant, utils.MAX_CREATE_REQUEST_SIZE_IN_BYTES); err != nil {
		writeDecodeError(w, err)
		return
	}

	if err := variant.IsValid(); err != nil {
		utils.WriteJSONErrorResponse(w, http.StatusBadRequest, "Variant "+validationFailedErrMsgPrefix+err.Error())
		return
	}

	logrus.Info(fmt.Sprintf("Creating new variant: %+v", variant))
	createdId, err := h.repo.Create(&variant)
	if err != nil {
		logMsg := fmt.Sprintf("Error creating variant: %s", err.Error())
		utils.WriteJSONErrorResponse(w, http.StatusInternalServerError, internalServerErrMsg, logMsg)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, map[string]uint{"id": createdId})
}

// GetVariants retrieves a page of variants, paginated with the "limit", "after_id" and "before_id" query parameters.
func (h *Variant) GetVariants(w http.ResponseWriter, r *http.Request) {
	seek, err := utils.GetPageSeekOptions(r, readPageMaxLimit)
	if err != nil {
		utils.WriteJSONErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	variants, err := h.repo.Fetch(seek)
	if err != nil {
		logMsg := fmt.Sprintf("Error reading variants: %s", err.Error())
		utils.WriteJSONErrorResponse(w, http.StatusInternalServerError, internalServerErrMsg, logMsg)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, variants)
}

// GetVariant retrieves the single variant named by the route's id variable.
func (h *Variant) GetVariant(w http.ResponseWriter, r *http.Request) {
	id, err := httputils.GetPathVarAsUint(r, idVar)
	if err != nil {
		utils.WriteJSONErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	variant, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSONErrorResponse(w, http.StatusNotFound, "Variant not found.")
			return
		}
		logMsg := fmt.Sprintf("Error reading variant (id: %d): %s", id, err.Error())
		utils.WriteJSONErrorResponse(w, http.StatusInternalServerError, internalServerErrMsg, logMsg)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, variant)
}

// UpdateVariant updates an existing variant. The "fields" query parameter selects a partial update.
func (h *Variant) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	id, err := httputils.GetPathVarAsUint(r, idVar)
	if err != nil {
		utils.WriteJSONErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var variant models.Variant
	if err := utils.DecodeJSONBody(w, r, &variant, utils.MAX_CREATE_REQUEST_SIZE_IN_BYTES); err != nil {
		writeDecodeError(w, err)
		return
	}
	variant.ID = id

	var fields []string
	if r.URL.Query().Has(fieldsParam) {
		fields = strings.Split(r.URL.Query().Get(fieldsParam), ",")
	} else if err := variant.IsValid(); err != nil {
		utils.WriteJSONErrorResponse(w, http.StatusBadRequest, "Variant "+validationFailedErrMsgPrefix+err.Error())
		return
	}

	logrus.Info(fmt.Sprintf("Updating variant (id: %d) to %+v", id, variant))
	updated, err := h.repo.Update(&variant, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSONErrorResponse(w, http.StatusNotFound, "Variant not found.")
			return
		}
		logMsg := fmt.Sprintf("Error updating variant (id: %d): %s", id, err.Error())
		utils.WriteJSONErrorResponse(w, http.StatusInternalServerError, internalServerErrMsg, logMsg)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, updated)
}

// DeleteVariant removes the variant named by the route's id variable.
func (h *Variant) DeleteVariant(w http.ResponseWriter, r *http.Request) {
	id, err := httputils.GetPathVarAsUint(r, idVar)
	if err != nil {
		utils.WriteJSONErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	logrus.Info(fmt.Sprintf("Deleting variant (id: %d)...", id))
	if err := h.repo.Delete(id); err != nil {
		logMsg := fmt.Sprintf("Error deleting variant (id: %d): %s", id, err.Error())
		utils.WriteJSONErrorResponse(w, http.StatusInternalServerError, internalServerErrMsg, logMsg)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, map[string]bool{"success": true})
}
