package utils

import (
	"testing"
	"time"
)

func TestPostgresPoolDefaults(t *testing.T) {
	got := PostgresPoolConfig{}.withDefaults()
	if got.MaxOpenConns <= 0 || got.MaxIdleConns <= 0 {
		t.Fatalf("expected positive pool sizes, got %+v", got)
	}
	if got.PingTimeout <= 0 {
		t.Fatalf("expected ping timeout default, got %v", got.PingTimeout)
	}
}

func TestPostgresPoolDefaultsPreserveExplicitValues(t *testing.T) {
	in := PostgresPoolConfig{MaxOpenConns: 3, ConnMaxLifetime: time.Minute}
	got := in.withDefaults()
	if got.MaxOpenConns != 3 || got.ConnMaxLifetime != time.Minute {
		t.Fatalf("explicit values overwritten: %+v", got)
	}
}

func TestRedisDefaults(t *testing.T) {
	got := RedisConfig{Addr: "localhost:6379"}.withDefaults()
	if got.PoolSize <= 0 || got.DialTimeout <= 0 || got.PingTimeout <= 0 {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestSQLiteDefaults(t *testing.T) {
	got := SQLiteConfig{Path: "x.db"}.withDefaults()
	if got.PingTimeout <= 0 {
		t.Fatalf("expected ping timeout default, got %v", got.PingTimeout)
	}
}
