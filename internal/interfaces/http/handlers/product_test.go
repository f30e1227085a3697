// internal/interfaces/http/handlers/product_test.go
package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/your-org/audiosynthese-backend/internal/config"
)

func productRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewProductHandler(nil, &config.Config{})

	r := gin.New()
	r.GET("/products", handler.ListProducts)
	r.GET("/products/:id", handler.GetProduct)
	return r
}

func TestListProducts_UnknownCategoryIsBadRequest(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products?category=turntables", nil)
	productRouter().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetProduct_InvalidIDIsBadRequest(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products/not-a-number", nil)
	productRouter().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
