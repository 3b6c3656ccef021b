package postgres

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/teaguenet/shadebar/pkg/driver"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"moul.io/zapgorm2"
)

// OpenConnection attempts to open a connection to a postgres database using gorm and returns a driver with a valid connection.
func OpenConnection(connectionConfig *PostgresConnectionConfig) (*driver.DB, error) {
	zaplogger := zapgorm2.New(zap.L())
	dbinfo := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		connectionConfig.Host, connectionConfig.Port, connectionConfig.Username, connectionConfig.Password, connectionConfig.Database,
	)
	logrus.Info(fmt.Sprintf("Opening connection to database %s at %s:%s", connectionConfig.Database, connectionConfig.Host, connectionConfig.Port))
	conn, err := gorm.Open(postgres.Open(dbinfo), &gorm.Config{Logger: zaplogger})
	if err != nil {
		logrus.Error("Error opening database connection: " + err.Error())
		return nil, err
	}
	logrus.Info("Successfully opened connection to the database.")
	db := driver.DB{Gorm: conn}
	return &db, nil
}

// SetupTables checks that the database for the given driver contains a table matching the schema gorm would create for that object.
// Optionally, it can initialize the matching table if it is missing from the database or structured incorrectly based on the current model.
func SetupTables(db *driver.DB, object interface{}, init bool) error {
	stmt := &gorm.Statement{DB: db.Gorm}
	err := stmt.Parse(object)
	if err != nil {
		msg := fmt.Sprintf("Failed to parse object %+v: %s", object, err.Error())
		logrus.Error(msg)
		return errors.New(msg)
	}
	tableName := stmt.Schema.Table
	if !db.Gorm.Migrator().HasTable(object) {
		logrus.Info("Table not found: " + tableName)
		if init {
			// If the table exists, but not for the parsed object, the schema
			// has changed, so drop the table. A production deployment would
			// run a migration here instead.
			err := db.Gorm.Migrator().DropTable(object)
			if err != nil {
				msg := fmt.Sprintf("Failed to drop table %s: %s", tableName, err.Error())
				logrus.Error(msg)
				return errors.New(msg)
			}
			err = db.Gorm.Migrator().CreateTable(object)
			if err != nil {
				msg := fmt.Sprintf("Failed to create table %s: %s", tableName, err.Error())
				logrus.Error(msg)
				return errors.New(msg)
			}
			logrus.Info("Created table: " + tableName)
		} else {
			msg := "Couldn't find table " + tableName
			logrus.Error(msg)
			return errors.New(msg)
		}
	}
	return nil
}
