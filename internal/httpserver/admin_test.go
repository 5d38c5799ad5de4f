package httpserver

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shopswift/internal/catalog"
	"shopswift/internal/domain"
	"shopswift/internal/enhancer"
	"shopswift/internal/store/auth"
)

func TestAdmin_Forbidden(t *testing.T) {
	env := newTestEnv(t)
	anon := env.newSession(t)
	user := env.login(t, auth.UserEmail, auth.UserPassword)

	for _, token := range []string{anon, user} {
		expectError(t, env.do(http.MethodGet, "/admin/stats", token, ""), http.StatusForbidden, "Admin access required")
		expectError(t, env.do(http.MethodDelete, "/admin/products/1", token, ""), http.StatusForbidden, "")
	}
	if _, err := env.catalog.Get("1"); err != nil {
		t.Fatalf("product must not be removed by non-admin")
	}
}

func TestAdmin_StatsAndToggle(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, auth.AdminEmail, auth.AdminPassword)

	var stats catalog.Stats
	decode(t, env.do(http.MethodGet, "/admin/stats", token, ""), &stats)
	if stats != (catalog.Stats{Total: 8, InStock: 7, OutOfStock: 1}) {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	rec := env.do(http.MethodPost, "/admin/products/5/toggle-stock", token, "")
	expectStatus(t, rec, http.StatusOK)
	var p domain.Product
	decode(t, rec, &p)
	if !p.InStock {
		t.Fatalf("expected product 5 back in stock")
	}
	expectError(t, env.do(http.MethodPost, "/admin/products/zzz/toggle-stock", token, ""), http.StatusNotFound, "Product not found")
}

func TestAdmin_AddAndRemoveProduct(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, auth.AdminEmail, auth.AdminPassword)

	for _, price := range []string{`24.5`, `"24.50"`} {
		body := `{"name":"Lamp","description":"Warm","price":` + price + `,"category":"Home & Garden","imageUrl":"https://example.com/l.jpg"}`
		rec := env.do(http.MethodPost, "/admin/products", token, body)
		expectStatus(t, rec, http.StatusCreated)
		var p domain.Product
		decode(t, rec, &p)
		if p.ID == "" || !p.InStock || p.Price.String() != "24.5" {
			t.Fatalf("unexpected product: %+v", p)
		}
		if first := env.catalog.List(catalog.Filter{})[0]; first.ID != p.ID {
			t.Fatalf("new product should be first, got %s", first.ID)
		}
	}

	resp := expectError(t,
		env.do(http.MethodPost, "/admin/products", token, `{"name":"","price":0,"imageUrl":"nope"}`),
		http.StatusBadRequest, "Invalid product")
	if resp.Errors["name"] == "" || resp.Errors["price"] != "Price must be positive" || resp.Errors["imageUrl"] != "Must be a valid URL" {
		t.Fatalf("unexpected field errors: %+v", resp.Errors)
	}

	expectStatus(t, env.do(http.MethodDelete, "/admin/products/2", token, ""), http.StatusNoContent)
	expectError(t, env.do(http.MethodDelete, "/admin/products/2", token, ""), http.StatusNotFound, "Product not found")
	expectStatus(t, env.do(http.MethodGet, "/products/2", "", ""), http.StatusNotFound)
}

func TestAdmin_EnhanceDescription(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, auth.AdminEmail, auth.AdminPassword)

	rec := env.do(http.MethodPost, "/admin/products/enhance", token, `{"description":"plain","name":"Lamp","category":"Home & Garden"}`)
	expectStatus(t, rec, http.StatusOK)
	var res enhancer.Result
	decode(t, rec, &res)
	if res.EnhancedDescription != "Shiny copy" || res.Feedback != "Better" {
		t.Fatalf("unexpected result: %+v", res)
	}

	expectError(t, env.do(http.MethodPost, "/admin/products/enhance", token, `{"description":"  "}`),
		http.StatusBadRequest, "Please provide a description to enhance")

	env.enhancer.result = nil
	env.enhancer.err = errors.Join(enhancer.ErrEnhancementFailed, errors.New("upstream 500"))
	expectError(t, env.do(http.MethodPost, "/admin/products/enhance", token, `{"description":"plain"}`),
		http.StatusBadGateway, "Failed to enhance description.")

	if got := env.catalog.Stats().Total; got != 8 {
		t.Fatalf("enhancement must not change the catalog, total=%d", got)
	}
}

func TestAdmin_ImportProducts(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, auth.AdminEmail, auth.AdminPassword)

	importCSV := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/admin/products/import", strings.NewReader(body))
		req.Header.Set("Content-Type", "text/csv")
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		return rec
	}

	rec := importCSV("name,description,price,category,imageUrl,inStock\n" +
		"Kettle,Boils fast,45,Home & Garden,https://example.com/k.jpg,false\n" +
		"Cap,Shade,15,Accessories,https://example.com/c.jpg,\n")
	expectStatus(t, rec, http.StatusOK)
	var resp struct {
		Imported int           `json:"imported"`
		Stats    catalog.Stats `json:"stats"`
	}
	decode(t, rec, &resp)
	if resp.Imported != 2 || resp.Stats != (catalog.Stats{Total: 10, InStock: 8, OutOfStock: 2}) {
		t.Fatalf("unexpected import response: %+v", resp)
	}
	all := env.catalog.List(catalog.Filter{})
	if all[8].Name != "Kettle" || all[9].Name != "Cap" {
		t.Fatalf("import must keep file order, got %q then %q", all[8].Name, all[9].Name)
	}

	bad := expectError(t, importCSV("name,description,price,category,imageUrl\nKettle,,45,Home,https://example.com/k.jpg\n"),
		http.StatusBadRequest, "")
	if !strings.HasPrefix(bad.Message, "row 1") || bad.Errors["description"] == "" {
		t.Fatalf("unexpected import error: %+v", bad)
	}
	if env.catalog.Stats().Total != 10 {
		t.Fatalf("failed import must not change the catalog")
	}
}
