package storeapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, 5*time.Second), server
}

func TestEnvelopeSuccess(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/ProductCategory/GetAll" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"ok","result":[{"id":1,"name":"watch"},{"id":2,"name":"earbud"}],"errorList":[]}`))
	})
	defer server.Close()

	categories, err := client.ListCategories(context.Background(), "tok-123")
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(categories) != 2 || categories[1].Name != "earbud" {
		t.Fatalf("unexpected categories %+v", categories)
	}
}

func TestEnvelopeErrorListIsError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"message":"","result":null,"errorList":["sku already exists"]}`))
	})
	defer server.Close()

	_, err := client.SearchProducts(context.Background(), "tok", ProductFilter{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if len(apiErr.ErrorList) != 1 || apiErr.ErrorList[0] != "sku already exists" {
		t.Fatalf("unexpected errorList %v", apiErr.ErrorList)
	}
}

func TestEnvelopeSuccessFalseIsError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"not found","result":null,"errorList":[]}`))
	})
	defer server.Close()

	_, err := client.GetShipment(context.Background(), "tok", 9)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "not found" {
		t.Fatalf("Message = %q", apiErr.Message)
	}
}

func TestNon2xxIsError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"success":false,"message":"upstream down","errorList":[]}`))
	})
	defer server.Close()

	_, err := client.ListProducts(context.Background(), "tok")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("StatusCode = %d", apiErr.StatusCode)
	}
	if apiErr.Message != "upstream down" {
		t.Fatalf("Message = %q", apiErr.Message)
	}
}

func TestOrdersResourceShape(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"count":2,"orders":[
			{"_id":"o1","totalAmount":99.5,"paymentMethod":"cod","status":0},
			{"_id":"o2","totalAmount":10,"paymentMethod":"card","status":"Shipped"}
		]}`))
	})
	defer server.Close()

	orders, err := client.ListOrders(context.Background(), "tok")
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("len(orders) = %d", len(orders))
	}
	if orders[0].ID != "o1" || orders[0].Status.String() != "Pending" {
		t.Errorf("order 0 = %+v", orders[0])
	}
	// Legacy string statuses still decode.
	if orders[1].Status.String() != "Shipped" {
		t.Errorf("order 1 status = %v", orders[1].Status)
	}
}

func TestUpdateOrderStatusSendsNumeric(t *testing.T) {
	var body string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		body = string(buf)
		w.Write([]byte(`{"success":true,"order":{"_id":"o1","status":2}}`))
	})
	defer server.Close()

	order, err := client.UpdateOrderStatus(context.Background(), "tok", "o1", 2)
	if err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}
	if body != `{"status":2}` {
		t.Errorf("request body = %s", body)
	}
	if order.Status.String() != "Shipped" {
		t.Errorf("status = %v", order.Status)
	}
}
