package httpserver

import (
	"net/http"
	"testing"

	"shopswift/internal/domain"
)

func cartOf(t *testing.T, env *testEnv, token string) domain.CartSnapshot {
	t.Helper()
	rec := env.do(http.MethodGet, "/cart", token, "")
	expectStatus(t, rec, http.StatusOK)
	var snap domain.CartSnapshot
	decode(t, rec, &snap)
	return snap
}

func TestCart_RequiresSession(t *testing.T) {
	env := newTestEnv(t)
	expectError(t, env.do(http.MethodGet, "/cart", "", ""), http.StatusUnauthorized, "Missing session token")
	expectError(t, env.do(http.MethodGet, "/cart", "garbage", ""), http.StatusUnauthorized, "Invalid session token")
}

func TestCart_Flow(t *testing.T) {
	env := newTestEnv(t)
	token := env.newSession(t)

	expectStatus(t, env.do(http.MethodPost, "/cart/items", token, `{"productId":"1","quantity":2}`), http.StatusOK)
	expectStatus(t, env.do(http.MethodPost, "/cart/items", token, `{"productId":"1"}`), http.StatusOK)
	expectStatus(t, env.do(http.MethodPost, "/cart/items", token, `{"productId":"3","quantity":1}`), http.StatusOK)

	snap := cartOf(t, env, token)
	if len(snap.Items) != 2 || snap.Count != 4 || snap.Items[0].Quantity != 3 {
		t.Fatalf("unexpected cart: %+v", snap)
	}
	if snap.Total.String() != "419.96" {
		t.Fatalf("expected total 419.96, got %s", snap.Total)
	}

	expectStatus(t, env.do(http.MethodPost, "/cart/items/1/step", token, `{"delta":-10}`), http.StatusOK)
	if got := cartOf(t, env, token).Items[0].Quantity; got != 1 {
		t.Fatalf("expected stepper to clamp at 1, got %d", got)
	}

	expectStatus(t, env.do(http.MethodPatch, "/cart/items/1", token, `{"quantity":0}`), http.StatusOK)
	snap = cartOf(t, env, token)
	if len(snap.Items) != 1 || snap.Items[0].Product.ID != "3" {
		t.Fatalf("expected quantity 0 to remove the line: %+v", snap)
	}

	expectStatus(t, env.do(http.MethodDelete, "/cart/items/unknown", token, ""), http.StatusNoContent)
	expectStatus(t, env.do(http.MethodDelete, "/cart/items/3", token, ""), http.StatusNoContent)
	if cartOf(t, env, token).Count != 0 {
		t.Fatalf("expected empty cart")
	}

	expectStatus(t, env.do(http.MethodPost, "/cart/items", token, `{"productId":"2"}`), http.StatusOK)
	expectStatus(t, env.do(http.MethodDelete, "/cart", token, ""), http.StatusNoContent)
	if cartOf(t, env, token).Count != 0 {
		t.Fatalf("expected cleared cart")
	}
}

func TestCart_AddRejections(t *testing.T) {
	env := newTestEnv(t)
	token := env.newSession(t)

	expectError(t, env.do(http.MethodPost, "/cart/items", token, `{"productId":"nope"}`), http.StatusNotFound, "Product not found")
	expectError(t, env.do(http.MethodPost, "/cart/items", token, `{"productId":"5"}`), http.StatusConflict, "Product is out of stock")
	expectError(t, env.do(http.MethodPost, "/cart/items", token, `{}`), http.StatusBadRequest, "Invalid request body")
	expectError(t, env.do(http.MethodPatch, "/cart/items/1", token, `{}`), http.StatusBadRequest, "")
	expectError(t, env.do(http.MethodPost, "/cart/items/1/step", token, `{"delta":"x"}`), http.StatusBadRequest, "")
}

func TestCart_IsolatedPerSession(t *testing.T) {
	env := newTestEnv(t)
	a := env.newSession(t)
	b := env.newSession(t)

	expectStatus(t, env.do(http.MethodPost, "/cart/items", a, `{"productId":"1"}`), http.StatusOK)
	if cartOf(t, env, b).Count != 0 {
		t.Fatalf("carts leaked between sessions")
	}
}
