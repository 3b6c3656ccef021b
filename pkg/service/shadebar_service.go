// Package service wires the shadebar application together: database
// connection, schema setup, HTTP router, and health check.
package service

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/teaguenet/shadebar/pkg/driver"
	pgdriver "github.com/teaguenet/shadebar/pkg/driver/postgres"
	sqlitedriver "github.com/teaguenet/shadebar/pkg/driver/sqlite"
	"github.com/teaguenet/shadebar/pkg/handler"
	"github.com/teaguenet/shadebar/pkg/models"
	"github.com/teaguenet/shadebar/pkg/utils"
	"github.com/teaguenet/shadebar/pkg/utils/cors"
	"github.com/teaguenet/shadebar/pkg/utils/log"

	"github.com/gorilla/mux"
)

// UI_URL is the origin the catalog and order entry UI is served from.
const UI_URL = "http://localhost:3000"

const (
	itemsAPIBaseRoute       = "/items"
	itemsByIdAPIRoute       = itemsAPIBaseRoute + "/{id:[0-9]+}"
	suggestCategoryAPIRoute = itemsAPIBaseRoute + "/suggest-category"
	variantsAPIBaseRoute    = "/variants"
	variantsByIdAPIRoute    = variantsAPIBaseRoute + "/{id:[0-9]+}"
	ordersAPIBaseRoute      = "/orders"
	ordersByIdAPIRoute      = ordersAPIBaseRoute + "/{id:[0-9]+}"
	pullSheetAPIRoute       = ordersByIdAPIRoute + "/pullsheet"
	healthAPIRoute          = "/health"
)

// ShadebarService holds all the pieces necessary to run the order entry and inventory service.
type ShadebarService struct {
	Router         *mux.Router
	ItemHandler    *handler.Item
	VariantHandler *handler.Variant
	OrderHandler   *handler.Order
	DB             *driver.DB
	Port           int
}

type ShadebarServiceConfig struct {
	DatabaseConnection *pgdriver.PostgresConnectionConfig
	// Path to a sqlite database file. When set, the service runs against
	// sqlite instead of postgres; meant for local development.
	SqlitePath string
	Port       int
}

// NewShadebarService creates a new instance of the order entry and inventory service.
// Returns nil on error.
func NewShadebarService(config *ShadebarServiceConfig) (*ShadebarService, error) {
	s := ShadebarService{}

	var db *driver.DB
	var err error
	if config.SqlitePath != "" {
		db, err = sqlitedriver.OpenConnection(config.SqlitePath)
	} else {
		db, err = pgdriver.OpenConnection(config.DatabaseConnection)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the shadebar database: %s", err.Error())
	}

	s.DB = db
	err = SetupServiceDB(s.DB, true)
	if err != nil {
		return nil, fmt.Errorf("failed to set up the shadebar database: %s", err.Error())
	}

	s.ItemHandler = handler.NewItemHandler(db)
	s.VariantHandler = handler.NewVariantHandler(db)
	s.OrderHandler = handler.NewOrderHandler(db)
	s.Router = s.NewRouter()
	s.Port = config.Port

	return &s, nil
}

func readOptions(apiName string) cors.Options {
	return cors.Options{AllowedURL: UI_URL, APIName: apiName, AllowedMethods: []string{http.MethodGet, http.MethodOptions}}
}
func writeOptions(apiName string, method string) cors.Options {
	return cors.Options{AllowedURL: UI_URL, APIName: apiName, AllowedMethods: []string{method, http.MethodOptions}}
}

// NewRouter creates and returns a new http router for the service.
func (s *ShadebarService) NewRouter() *mux.Router {
	r := mux.NewRouter()

	// Catalog CRUD + category suggestion. The suggestion route must be
	// registered before the id route so "suggest-category" is not parsed as
	// an item id; the id pattern is numeric for the same reason.
	r.HandleFunc(suggestCategoryAPIRoute, cors.SendPreflightHeaders(readOptions("Suggest Category"), s.ItemHandler.SuggestCategory)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc(itemsAPIBaseRoute, cors.SendPreflightHeaders(readOptions("Read Items"), s.ItemHandler.GetItems)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc(itemsAPIBaseRoute, cors.SendPreflightHeaders(writeOptions("Create Item", http.MethodPost), s.ItemHandler.CreateItem)).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc(itemsByIdAPIRoute, cors.SendPreflightHeaders(readOptions("Read Item"), s.ItemHandler.GetItem)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc(itemsByIdAPIRoute, cors.SendPreflightHeaders(writeOptions("Update Item", http.MethodPut), s.ItemHandler.UpdateItem)).Methods(http.MethodPut, http.MethodOptions)
	r.HandleFunc(itemsByIdAPIRoute, cors.SendPreflightHeaders(writeOptions("Delete Item", http.MethodDelete), s.ItemHandler.DeleteItem)).Methods(http.MethodDelete, http.MethodOptions)

	// Variant CRUD, opaque passthrough for the catalog browser.
	r.HandleFunc(variantsAPIBaseRoute, cors.SendPreflightHeaders(readOptions("Read Variants"), s.VariantHandler.GetVariants)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc(variantsAPIBaseRoute, cors.SendPreflightHeaders(writeOptions("Create Variant", http.MethodPost), s.VariantHandler.CreateVariant)).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc(variantsByIdAPIRoute, cors.SendPreflightHeaders(readOptions("Read Variant"), s.VariantHandler.GetVariant)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc(variantsByIdAPIRoute, cors.SendPreflightHeaders(writeOptions("Update Variant", http.MethodPut), s.VariantHandler.UpdateVariant)).Methods(http.MethodPut, http.MethodOptions)
	r.HandleFunc(variantsByIdAPIRoute, cors.SendPreflightHeaders(writeOptions("Delete Variant", http.MethodDelete), s.VariantHandler.DeleteVariant)).Methods(http.MethodDelete, http.MethodOptions)

	// Order entry, retrieval, and the pull sheet.
	r.HandleFunc(ordersAPIBaseRoute, cors.SendPreflightHeaders(readOptions("Read Orders"), s.OrderHandler.GetOrders)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc(ordersAPIBaseRoute, cors.SendPreflightHeaders(writeOptions("Create Order", http.MethodPost), s.OrderHandler.CreateOrder)).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc(ordersByIdAPIRoute, cors.SendPreflightHeaders(readOptions("Read Order"), s.OrderHandler.GetOrder)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc(ordersByIdAPIRoute, cors.SendPreflightHeaders(writeOptions("Update Order", http.MethodPut), s.OrderHandler.UpdateOrder)).Methods(http.MethodPut, http.MethodOptions)
	r.HandleFunc(ordersByIdAPIRoute, cors.SendPreflightHeaders(writeOptions("Delete Order", http.MethodDelete), s.OrderHandler.DeleteOrder)).Methods(http.MethodDelete, http.MethodOptions)
	r.HandleFunc(pullSheetAPIRoute, cors.SendPreflightHeaders(readOptions("Read Pull Sheet"), s.OrderHandler.GetPullSheet)).Methods(http.MethodGet, http.MethodOptions)

	r.HandleFunc(healthAPIRoute, cors.SendPreflightHeaders(readOptions("Health Check"), s.CheckHealth)).Methods(http.MethodGet, http.MethodOptions)

	return r
}

// SetupServiceDB checks that the database schema is ready for the service.
// If init is true, will create the tables if they do not already exist.
func SetupServiceDB(db *driver.DB, init bool) error {
	log.Info("Setting up the shadebar database...")
	for _, model := range []interface{}{&models.Item{}, &models.Variant{}, &models.Order{}, &models.OrderLine{}} {
		if err := pgdriver.SetupTables(db, model, init); err != nil {
			msg := "failed to set up a model table: " + err.Error()
			log.Error(msg)
			return errors.New(msg)
		}
	}
	log.Info("Successfully set up the database for the shadebar service")
	return nil
}

// CheckHealth checks the health of the service and writes a response in JSON to the user.
// Always returns HTTP Status OK, even if the health check fails.
func (s *ShadebarService) CheckHealth(w http.ResponseWriter, r *http.Request) {
	log.Info("Checking service health...")
	db, err := s.DB.Gorm.DB()
	if err != nil {
		log.Error("health check failed: error getting sql.DB from gorm DB: " + err.Error())
		utils.WriteJSONResponse(w, http.StatusOK, map[string]bool{"ok": false})
		return
	}
	if err = db.Ping(); err != nil {
		log.Error("health check failed: error pinging the database: " + err.Error())
		utils.WriteJSONResponse(w, http.StatusOK, map[string]bool{"ok": false})
		return
	}
	log.Info("health check passed")
	utils.WriteJSONResponse(w, http.StatusOK, map[string]bool{"ok": true})
}
