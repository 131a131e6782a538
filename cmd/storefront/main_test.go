package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	teeJSON   = `{"_id":"p1","name":"Tee","slug":"tee","description":"Plain cotton tee","price":1299,"category":"c1"}`
	capJSON   = `{"_id":"p2","name":"Cap","slug":"cap","description":"Blue cap","price":45.5,"category":"c2"}`
	socksJSON = `{"_id":"p3","name":"Socks","slug":"socks","description":"Wool socks","price":99,"category":"c1"}`
)

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	reply := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		}
	}

	mux.HandleFunc("/api/v1/category/get-category", reply(`{"success":true,"category":[{"_id":"c1","name":"Shirts","slug":"shirts"},{"_id":"c2","name":"Hats","slug":"hats"}]}`))
	mux.HandleFunc("/api/v1/craousel", reply(`[]`))
	mux.HandleFunc("/api/v1/product/product-count", reply(`{"success":true,"total":3}`))
	mux.HandleFunc("/api/v1/product/product-list/1", reply(`{"success":true,"products":[`+teeJSON+`,`+capJSON+`]}`))
	mux.HandleFunc("/api/v1/product/product-list/2", reply(`{"success":true,"products":[`+socksJSON+`]}`))
	mux.HandleFunc("/api/v1/product/product-filters", reply(`{"success":true,"products":[`+socksJSON+`]}`))
	mux.HandleFunc("/api/v1/product/get-product/tee", reply(`{"success":true,"product":`+teeJSON+`}`))
	mux.HandleFunc("/api/v1/product/product-image/p1", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type cli struct {
	api  string
	cart string
}

func newCLI(t *testing.T) cli {
	t.Setenv("APP_ENV", "test")
	return cli{
		api:  newCatalogServer(t).URL,
		cart: filepath.Join(t.TempDir(), "cart.db"),
	}
}

func (c cli) run(args ...string) (string, string, error) {
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--api", c.api, "--cart", c.cart}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestBrowse(t *testing.T) {
	c := newCLI(t)

	t.Run("First page offers load more", func(t *testing.T) {
		out, _, err := c.run("browse")
		require.NoError(t, err)

		assert.Contains(t, out, "Tee")
		assert.Contains(t, out, "₹1,299")
		assert.Contains(t, out, "Plain cotton tee...")
		assert.Contains(t, out, "/product/tee")
		assert.NotContains(t, out, "Socks")
		assert.Contains(t, out, "[ Load More ]")
		assert.Contains(t, out, "/images/banner.png")
		assert.Contains(t, out, "[ ] Shirts (c1)")
	})

	t.Run("All pages", func(t *testing.T) {
		out, _, err := c.run("browse", "--pages", "5")
		require.NoError(t, err)

		assert.Contains(t, out, "Socks")
		assert.NotContains(t, out, "Load More")
		assert.Contains(t, out, "paginated · Loaded")
	})

	t.Run("Invalid pages", func(t *testing.T) {
		_, _, err := c.run("browse", "--pages", "0")
		assert.Error(t, err)
	})
}

func TestFilter(t *testing.T) {
	c := newCLI(t)

	out, _, err := c.run("filter", "--category", "c1", "--price", "₹80 to 99")
	require.NoError(t, err)

	assert.Contains(t, out, "Socks")
	assert.NotContains(t, out, "Tee")
	assert.Contains(t, out, "[x] Shirts (c1)")
	assert.Contains(t, out, "[x] ₹80 to 99 (4)")
	assert.Contains(t, out, "filtered · Loaded")

	_, _, err = c.run("filter", "--price", "cheap")
	assert.Error(t, err)
}

func TestAddAndCart(t *testing.T) {
	c := newCLI(t)

	out, _, err := c.run("cart")
	require.NoError(t, err)
	assert.Contains(t, out, "Your cart is empty")

	for i := 0; i < 2; i++ {
		_, notes, err := c.run("add", "tee")
		require.NoError(t, err)
		assert.Contains(t, notes, "Item Added to cart")
	}

	out, _, err = c.run("cart")
	require.NoError(t, err)
	assert.Contains(t, out, "Total (2 items): ₹2,598")

	_, _, err = c.run("add", "missing")
	assert.Error(t, err)
}

func TestImage(t *testing.T) {
	c := newCLI(t)
	path := filepath.Join(t.TempDir(), "tee.png")

	out, _, err := c.run("image", "p1", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "4 bytes")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)
}

func TestCategoriesAndPrices(t *testing.T) {
	c := newCLI(t)

	out, _, err := c.run("categories")
	require.NoError(t, err)
	assert.Contains(t, out, "Shirts")
	assert.Contains(t, out, "Hats")

	out, _, err = c.run("prices")
	require.NoError(t, err)
	assert.Contains(t, out, "₹100 or more")
	assert.Contains(t, out, "₹0 to 19")
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".png", extensionFor("image/png"))
	assert.Equal(t, ".jpg", extensionFor("image/jpeg"))
	assert.Equal(t, ".img", extensionFor("application/x-unknown"))
}
