package db

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"devflow/internal/config"
)

const (
	defaultParams   = "parseTime=true&multiStatements=true"
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
)

// DSN builds the driver DSN. MYSQL_PARAMS is parsed by the driver, and the
// credentials are escaped by it as well.
func DSN(conf *config.Config) (string, error) {
	params := conf.DbParams
	if params == "" {
		params = defaultParams
	}

	addr := net.JoinHostPort(conf.DbHost, conf.DbPort)
	dsnConfig, err := mysql.ParseDSN(fmt.Sprintf("tcp(%s)/%s?%s", addr, conf.DbName, params))
	if err != nil {
		return "", fmt.Errorf("parse mysql params: %w", err)
	}
	dsnConfig.User = conf.DbUser
	dsnConfig.Passwd = conf.DbPassword

	return dsnConfig.FormatDSN(), nil
}

func ConnectDB(ctx context.Context, conf *config.Config) (*sqlx.DB, error) {
	dsn, err := DSN(conf)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.ConnectContext(ctx, "mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	return db, nil
}

// Pinger adapts *sqlx.DB to the health report.
type Pinger struct {
	DB *sqlx.DB
}

func (p Pinger) Ping(ctx context.Context) error {
	return p.DB.PingContext(ctx)
}
