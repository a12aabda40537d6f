package vendure

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/model"
	"storefront/internal/shop"
)

// testClient starts a stub shop API and returns a client pointed at it.
// handler receives the decoded GraphQL request and writes the response.
func testClient(t *testing.T, handler func(w http.ResponseWriter, r *http.Request, req Request)) *Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("reading request body: %v", err)
			return
		}
		var req Request
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("decoding request: %v", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		handler(w, r, req)
	}))
	t.Cleanup(srv.Close)

	c, err := NewWithHTTPClient(Config{
		Endpoint:     srv.URL,
		ChannelToken: "channel-1",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)), srv.Client())
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func writeData(w http.ResponseWriter, data string) {
	w.Write([]byte(`{"data":` + data + `}`))
}

func TestSendSetsHeaders(t *testing.T) {
	var gotAuth, gotChannel string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request, req Request) {
		gotAuth = r.Header.Get("Authorization")
		gotChannel = r.Header.Get("vendure-token")
		writeData(w, `{}`)
	})

	ctx := shop.WithAuth(context.Background(), shop.Auth{Token: "tok-123"})
	if _, err := c.Send(ctx, Request{Query: "query { ping }"}); err != nil {
		t.Fatalf("Send error: %v", err)
	}

	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
	if gotChannel != "channel-1" {
		t.Errorf("vendure-token = %q, want channel-1", gotChannel)
	}
}

func TestSendOmitsBearerWithoutToken(t *testing.T) {
	var gotAuth string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request, req Request) {
		gotAuth = r.Header.Get("Authorization")
		writeData(w, `{}`)
	})

	if _, err := c.Send(context.Background(), Request{Query: "query { ping }"}); err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}

func TestSendCapturesRotatedToken(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request, req Request) {
		w.Header().Set("vendure-auth-token", "fresh-token")
		writeData(w, `{}`)
	})

	var captured string
	ctx := shop.WithAuth(context.Background(), shop.Auth{
		Token:     "old-token",
		TokenSink: func(token string) { captured = token },
	})
	if _, err := c.Send(ctx, Request{Query: "query { ping }"}); err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if captured != "fresh-token" {
		t.Errorf("captured token = %q, want fresh-token", captured)
	}
}

func TestSendGraphQLErrors(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		sentinel error
	}{
		{"forbidden", "FORBIDDEN", model.ErrUnauthorized},
		{"bad input", "BAD_USER_INPUT", model.ErrInvalidRequest},
		{"internal", "INTERNAL_SERVER_ERROR", model.ErrUpstreamError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testClient(t, func(w http.ResponseWriter, r *http.Request, req Request) {
				w.Write([]byte(`{"errors":[{"message":"boom","extensions":{"code":"` + tt.code + `"}}]}`))
			})

			_, err := c.Send(context.Background(), Request{Query: "query { ping }"})
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("error = %v, want sentinel %v", err, tt.sentinel)
			}
		})
	}
}

func TestSendHTTPError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request, req Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Send(context.Background(), Request{Query: "query { ping }"})
	if !errors.Is(err, model.ErrUpstreamError) {
		t.Errorf("error = %v, want upstream sentinel", err)
	}
}

func TestActiveOrderNull(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request, req Request) {
		writeData(w, `{"activeOrder":null}`)
	})

	order, err := c.ActiveOrder(context.Background())
	if err != nil {
		t.Fatalf("ActiveOrder error: %v", err)
	}
	if order != nil {
		t.Errorf("order = %+v, want nil", order)
	}
}

func TestAddItemToOrderSuccess(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request, req Request) {
		if req.Variables["productVariantId"] != "42" {
			t.Errorf("productVariantId = %v, want 42", req.Variables["productVariantId"])
		}
		writeData(w, `{"addItemToOrder":{"__typename":"Order","id":"1","code":"ABC","state":"AddingItems","totalQuantity":3}}`)
	})

	order, err := c.AddItemToOrder(context.Background(), "42", 3)
	if err != nil {
		t.Fatalf("AddItemToOrder error: %v", err)
	}
	if order.TotalQuantity != 3 {
		t.Errorf("TotalQuantity = %d, want 3", order.TotalQuantity)
	}
}

func TestAddItemToOrderInsufficientStock(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request, req Request) {
		writeData(w, `{"addItemToOrder":{"__typename":"InsufficientStockError","errorCode":"INSUFFICIENT_STOCK_ERROR","message":"Only 2 in stock","quantityAvailable":2}}`)
	})

	_, err := c.AddItemToOrder(context.Background(), "42", 5)
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("error = %T, want *model.DomainError", err)
	}
	if domainErr.Typename != model.TypeInsufficientStock {
		t.Errorf("Typename = %s", domainErr.Typename)
	}
	if domainErr.QuantityAvailable != 2 {
		t.Errorf("QuantityAvailable = %d, want 2", domainErr.QuantityAvailable)
	}
}

func TestAuthenticateInvalidCredentials(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request, req Request) {
		writeData(w, `{"authenticate":{"__typename":"InvalidCredentialsError","errorCode":"INVALID_CREDENTIALS_ERROR","message":"The provided credentials are invalid"}}`)
	})

	_, err := c.Authenticate(context.Background(), "jo@example.com", "wrong")
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("error = %T, want *model.DomainError", err)
	}
	if domainErr.Typename != model.TypeInvalidCreds {
		t.Errorf("Typename = %s", domainErr.Typename)
	}
}

func TestAuthenticateSuccess(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request, req Request) {
		writeData(w, `{"authenticate":{"__typename":"CurrentUser","id":"7","identifier":"jo@example.com"}}`)
	})

	user, err := c.Authenticate(context.Background(), "jo@example.com", "secret")
	if err != nil {
		t.Fatalf("Authenticate error: %v", err)
	}
	if user.ID != "7" || user.Identifier != "jo@example.com" {
		t.Errorf("user = %+v", user)
	}
}

func TestSearchProductsPriceUnion(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request, req Request) {
		writeData(w, `{"search":{"totalItems":2,"items":[
			{"productId":"1","productName":"Single","slug":"single","currencyCode":"USD","priceWithTax":{"value":1000}},
			{"productId":"2","productName":"Range","slug":"range","currencyCode":"USD","priceWithTax":{"min":500,"max":1500}}
		],"facetValues":[{"count":3,"facetValue":{"id":"9","name":"Blue","code":"blue"}}]}}`)
	})

	resp, err := c.SearchProducts(context.Background(), shop.SearchInput{Term: "shirt"})
	if err != nil {
		t.Fatalf("SearchProducts error: %v", err)
	}
	if resp.TotalItems != 2 {
		t.Errorf("TotalItems = %d, want 2", resp.TotalItems)
	}
	if resp.Items[0].PriceWithTaxMin != 1000 || resp.Items[0].PriceWithTaxMax != 1000 {
		t.Errorf("single price = %d..%d, want 1000..1000",
			resp.Items[0].PriceWithTaxMin, resp.Items[0].PriceWithTaxMax)
	}
	if resp.Items[1].PriceWithTaxMin != 500 || resp.Items[1].PriceWithTaxMax != 1500 {
		t.Errorf("range price = %d..%d, want 500..1500",
			resp.Items[1].PriceWithTaxMin, resp.Items[1].PriceWithTaxMax)
	}
	if len(resp.FacetValues) != 1 || resp.FacetValues[0].Count != 3 {
		t.Errorf("FacetValues = %+v", resp.FacetValues)
	}
}

func TestActiveCustomerNullIsSignedOut(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request, req Request) {
		writeData(w, `{"activeCustomer":null}`)
	})

	customer, err := c.ActiveCustomer(context.Background())
	if err != nil {
		t.Fatalf("ActiveCustomer error: %v", err)
	}
	if customer != nil {
		t.Errorf("customer = %+v, want nil", customer)
	}
}

func TestCacheControl(t *testing.T) {
	tests := []struct {
		mode CacheMode
		want string
	}{
		{CacheForce, "public, max-age=60"},
		{CacheNone, "no-store"},
		{CacheDefault, ""},
	}
	for _, tt := range tests {
		if got := CacheControl(tt.mode); got != tt.want {
			t.Errorf("CacheControl(%d) = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestProductNotFound(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request, req Request) {
		writeData(w, `{"product":null}`)
	})

	_, err := c.Product(context.Background(), "missing")
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("error = %v, want not-found sentinel", err)
	}
}
