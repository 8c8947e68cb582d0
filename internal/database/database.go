package database

import (
	"time"

	"openclass/lms-backend/config"
	"openclass/lms-backend/internal/model"

	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDatabase() {
	databaseConf := config.Conf.Database

	logLevel := databaseConf.LogLevel
	if logLevel == "" {
		logLevel = "info"
	}

	var err error
	DB, err = InitMySQL(&MySQLConfig{
		ServiceName:     "lms-backend",
		Username:        databaseConf.Username,
		Password:        databaseConf.Password,
		Host:            databaseConf.Host,
		Port:            databaseConf.Port,
		Database:        databaseConf.Database,
		LogLevel:        logLevel,
		MaxIdleConns:    databaseConf.MaxIdleConns,
		MaxOpenConns:    databaseConf.MaxOpenConns,
		ConnMaxLifetime: time.Duration(databaseConf.MaxLifetime) * time.Second,
	})
	if err != nil {
		panic(err)
	}

	if err := model.InitTable(DB); err != nil {
		panic(err)
	}
}

// GetDB returns the shared connection pool.
func GetDB() *gorm.DB {
	return DB
}
