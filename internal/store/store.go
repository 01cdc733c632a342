package store

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/mkarpushin/board/internal/config"
	"github.com/mkarpushin/board/internal/model"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	db     *gorm.DB
	dbOnce sync.Once
	dbErr  error
)

func initDB() {
	mysqlConf := config.GetGlobalConf().DBConfig

	dsn := fmt.Sprintf("%s:%s@(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		mysqlConf.User, mysqlConf.Password, mysqlConf.Host, mysqlConf.Port, mysqlConf.Dbname)

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, dbErr = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if dbErr != nil {
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		dbErr = err

		return
	}
	sqlDB.SetMaxIdleConns(mysqlConf.MaxIdleConn)
	sqlDB.SetMaxOpenConns(mysqlConf.MaxOpenConn)
	sqlDB.SetConnMaxLifetime(time.Duration(mysqlConf.MaxIdleTime * int64(time.Second)))

	dbErr = db.AutoMigrate(
		&model.User{},
		&model.Article{},
		&model.Answer{},
		&model.ArticleVote{},
		&model.AnswerVote{},
	)
}

// GetDB opens the database connection on first use and runs the
// schema migration. Subsequent calls return the same handle.
func GetDB() (*gorm.DB, error) {
	dbOnce.Do(initDB)

	return db, dbErr
}
