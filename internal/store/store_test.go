package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/neurotype/internal/model"
)

func exerciseBackend(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := b.Get(ctx, "user_missing"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := b.Set(ctx, "user_alice", `{"username":"alice"}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := b.Set(ctx, "user_bob", `{"username":"bob"}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := b.Set(ctx, "currentUser", "alice"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := b.Get(ctx, "user_alice")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if v != `{"username":"alice"}` {
		t.Fatalf("unexpected value %q", v)
	}

	if err := b.Set(ctx, "currentUser", "bob"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, _, _ := b.Get(ctx, "currentUser"); v != "bob" {
		t.Fatalf("expected overwritten value bob, got %q", v)
	}

	keys, err := b.Keys(ctx, "user_")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "user_alice" || keys[1] != "user_bob" {
		t.Fatalf("unexpected keys: %v", keys)
	}

	if err := b.Remove(ctx, "user_alice"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := b.Remove(ctx, "user_alice"); err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if _, ok, _ := b.Get(ctx, "user_alice"); ok {
		t.Fatalf("expected key to be removed")
	}
}

func TestSQLiteStore(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "nested", "neurotype.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	exerciseBackend(t, st)
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neurotype.db")
	ctx := context.Background()

	st, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := st.Set(ctx, "currentUser", "alice1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	st, err = Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	v, ok, err := st.Get(ctx, "currentUser")
	if err != nil || !ok || v != "alice1" {
		t.Fatalf("expected persisted marker, got %q ok=%v err=%v", v, ok, err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseBackend(t, NewMemory())
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("NEUROTYPE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("NEUROTYPE_TEST_REDIS_ADDR not set")
	}
	r, err := OpenRedis(context.Background(), RedisOptions{Addr: addr, Prefix: "neurotype-test:" + t.Name() + ":"})
	if err != nil {
		t.Fatalf("open redis: %v", err)
	}
	t.Cleanup(func() {
		ctx := context.Background()
		keys, _ := r.Keys(ctx, "")
		for _, k := range keys {
			_ = r.Remove(ctx, k)
		}
		_ = r.Close()
	})
	exerciseBackend(t, r)
}

func TestOpenBackend(t *testing.T) {
	ctx := context.Background()
	b, err := OpenBackend(ctx, model.Config{StoreBackend: "memory"})
	if err != nil {
		t.Fatalf("open memory backend: %v", err)
	}
	if _, ok := b.(*Memory); !ok {
		t.Fatalf("expected *Memory, got %T", b)
	}

	b, err = OpenBackend(ctx, model.Config{StorePath: filepath.Join(t.TempDir(), "kv.db")})
	if err != nil {
		t.Fatalf("open default backend: %v", err)
	}
	t.Cleanup(func() {
		_ = b.Close()
	})
	if _, ok := b.(*Store); !ok {
		t.Fatalf("expected *Store for default backend, got %T", b)
	}

	if _, err := OpenBackend(ctx, model.Config{StoreBackend: "etcd"}); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
