package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PoolConfig são os limites do pool de conexões dos pedidos.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultPool é o pool usado pelo serviço e pelo runner de migrações.
var DefaultPool = PoolConfig{
	MaxOpenConns:    25,
	MaxIdleConns:    10,
	ConnMaxLifetime: 5 * time.Minute,
	ConnMaxIdleTime: 2 * time.Minute,
}

// NewPostgresDB abre o pool no PostgreSQL e valida a conexão com um ping limitado por pingTimeout.
func NewPostgresDB(dataSourceName string, pingTimeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir a conexão com o DB: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("falha ao realizar o ping inicial no DB: %w", err)
	}

	db.SetMaxOpenConns(DefaultPool.MaxOpenConns)
	db.SetMaxIdleConns(DefaultPool.MaxIdleConns)
	db.SetConnMaxLifetime(DefaultPool.ConnMaxLifetime)
	db.SetConnMaxIdleTime(DefaultPool.ConnMaxIdleTime)

	return db, nil
}
