// Package handler provides implementations for handlers that will handle incoming requests to perform operations on repositories of various data types in the shadebar application.
package handler

const (
	validationFailedErrMsgPrefix = "Validation failed: "
	internalServerErrMsg         = "Internal server error. Please contact your system administrator."

	idVar = "id"

	fieldsParam     = "fields"
	itemNumberParam = "itemNumber"

	readPageMaxLimit = 250
)
