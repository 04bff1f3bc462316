package db

import (
	"context"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"tasktracker/internal/config"
)

const pingTimeout = 5 * time.Second

// DSN builds the driver connection string. Extra MYSQL_PARAMS are merged
// over the defaults the repositories rely on.
func DSN(conf *config.Config) (string, error) {
	cfg := mysql.NewConfig()
	cfg.User = conf.DbUser
	cfg.Passwd = conf.DbPassword
	cfg.Net = "tcp"
	cfg.Addr = conf.DbHost + ":" + conf.DbPort
	cfg.DBName = conf.DbName
	cfg.ParseTime = true
	cfg.MultiStatements = true
	cfg.Loc = time.UTC

	if conf.DbParams != "" {
		parsed, err := mysql.ParseDSN("/?" + conf.DbParams)
		if err != nil {
			return "", fmt.Errorf("invalid MYSQL_PARAMS: %w", err)
		}
		cfg.ParseTime = cfg.ParseTime || parsed.ParseTime
		cfg.MultiStatements = cfg.MultiStatements || parsed.MultiStatements
		if parsed.Params != nil {
			cfg.Params = parsed.Params
		}
		if parsed.Collation != "" {
			cfg.Collation = parsed.Collation
		}
	}
	return cfg.FormatDSN(), nil
}

func ConnectDB(conf *config.Config) (*sqlx.DB, error) {
	dsn, err := DSN(conf)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(conf.DbMaxOpenConns)
	db.SetMaxIdleConns(min(conf.DbMaxIdleConns, conf.DbMaxOpenConns))
	db.SetConnMaxLifetime(conf.DbConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s@%s: %w", conf.DbName, conf.DbHost, err)
	}

	zap.L().Info("connected to mysql",
		zap.String("host", conf.DbHost),
		zap.String("database", conf.DbName),
		zap.Int("max_open_conns", conf.DbMaxOpenConns))
	return db, nil
}
