package utils

import (
	"errors"
	"os"
)

// GetEnv returns the value of the environment variable with the supplied
// name. All service configuration (the SHADEBAR_DB_* connection settings)
// comes in this way; a missing variable is an error so startup fails fast
// instead of connecting with empty credentials.
func GetEnv(name string) (string, error) {
	value, exists := os.LookupEnv(name)
	if !exists {
		return "", errors.New("Environment variable '" + name + "' is not set")
	}
	return value, nil
}
