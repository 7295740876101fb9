package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
)

func TestRedisCacheSetGet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(db, "betapulse")
	ctx := context.Background()

	want := payload{Name: "eth", Score: 1.52}
	data, _ := json.Marshal(want)

	mock.ExpectSet("betapulse:snapshot:ETHUSDT", data, time.Hour).SetVal("OK")
	if err := c.Set(ctx, "snapshot:ETHUSDT", want, time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}

	mock.ExpectGet("betapulse:snapshot:ETHUSDT").SetVal(string(data))
	var got payload
	if err := c.Get(ctx, "snapshot:ETHUSDT", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisCacheMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(db, "betapulse")

	mock.ExpectGet("betapulse:absent").RedisNil()

	var got payload
	if err := c.Get(context.Background(), "absent", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestRedisCacheDeleteUsesUnlink(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(db, "betapulse")

	mock.ExpectUnlink("betapulse:a", "betapulse:b").SetVal(2)
	if err := c.Delete(context.Background(), "a", "b"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisCacheMGetPartial(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(db, "betapulse")

	a, _ := json.Marshal(payload{Name: "a"})
	mock.ExpectMGet("betapulse:a", "betapulse:b").SetVal([]interface{}{string(a), nil})

	got, err := c.MGet(context.Background(), "a", "b")
	if err != nil {
		t.Fatalf("mget: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if _, ok := got["b"]; ok {
		t.Error("nil result should be omitted")
	}
}
