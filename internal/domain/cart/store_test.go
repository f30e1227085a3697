// internal/domain/cart/store_test.go
package cart

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestDecodeLines_MalformedPayloadReadsAsEmpty(t *testing.T) {
	payloads := map[string]string{
		"truncated json": `[{"product_id":1,"qty":`,
		"wrong shape":    `{"product_id":1}`,
		"plain text":     `not json at all`,
		"empty payload":  ``,
	}

	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			if lines := decodeLines([]byte(payload)); lines != nil {
				t.Fatalf("decodeLines(%q) = %v, want empty", payload, lines)
			}
		})
	}
}

func TestDecodeLines_RoundTrip(t *testing.T) {
	colorID := uint(7)
	saved := []Line{
		{ProductID: 1, ColorID: &colorID, Name: "Cable XLR 3m", PriceCents: 10000, Quantity: 2},
		{ProductID: 2, Name: "Filtre USB", PriceCents: 7900, Quantity: 1},
	}

	data, err := json.Marshal(saved)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	lines := decodeLines(data)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].ProductID != 1 || lines[0].Quantity != 2 || *lines[0].ColorID != 7 {
		t.Fatalf("first line lost fields: %+v", lines[0])
	}
	if lines[1].ColorID != nil {
		t.Fatalf("second line gained a color: %+v", lines[1])
	}
}

func TestRedisStoreLoad_TransportErrorReadsAsEmpty(t *testing.T) {
	// a client with nowhere to connect: every Get fails
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	store := NewRedisStore(client, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if lines := store.Load(ctx, "s1"); lines != nil {
		t.Fatalf("unreachable store must read as empty cart, got %v", lines)
	}
}
