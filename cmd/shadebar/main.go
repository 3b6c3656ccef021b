package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	pgdriver "github.com/teaguenet/shadebar/pkg/driver/postgres"
	"github.com/teaguenet/shadebar/pkg/service"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

const defaultPort = 5000

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	// zap backs the gorm SQL logger; logrus covers everything else.
	zaplogger, err := zap.NewProduction()
	if err != nil {
		logrus.Fatal("failed to create zap logger: " + err.Error())
	}
	zap.ReplaceGlobals(zaplogger)
	defer zaplogger.Sync() //nolint:errcheck

	config := service.ShadebarServiceConfig{Port: defaultPort}
	if path, ok := os.LookupEnv("SHADEBAR_SQLITE_PATH"); ok {
		// Local development mode: a file-backed sqlite database instead of postgres.
		config.SqlitePath = path
	} else {
		connection, err := pgdriver.NewPostgresConnectionConfigFromEnv()
		if err != nil {
			logrus.Fatal("failed to configure the database connection: " + err.Error())
		}
		config.DatabaseConnection = connection
	}

	if portEnv, ok := os.LookupEnv("SHADEBAR_PORT"); ok {
		port, err := strconv.Atoi(portEnv)
		if err != nil {
			logrus.Fatal("SHADEBAR_PORT is not a valid port number: " + portEnv)
		}
		config.Port = port
	}

	shadebarService, err := service.NewShadebarService(&config)
	if err != nil {
		logrus.Fatal("failed to create the shadebar service: " + err.Error())
	}
	logrus.Info("Server listening at port ", shadebarService.Port)
	logrus.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", shadebarService.Port), shadebarService.Router))
}
