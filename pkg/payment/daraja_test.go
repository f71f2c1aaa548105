package payment

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testDaraja(t *testing.T, handler http.Handler) *DarajaProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewDarajaProvider(srv.URL, "key", "secret", "174379", "passkey", 2*time.Second)
}

func TestDarajaPassword(t *testing.T) {
	p := NewDarajaProvider("", "key", "secret", "174379", "passkey", 0)
	p.now = func() time.Time {
		return time.Date(2024, 6, 1, 13, 45, 5, 0, time.UTC)
	}
	password, timestamp := p.Password()
	if timestamp != "20240601134505" {
		t.Errorf("wrong timestamp: %s", timestamp)
	}
	want := base64.StdEncoding.EncodeToString([]byte("174379" + "passkey" + "20240601134505"))
	if password != want {
		t.Errorf("wrong password: %s", password)
	}
}

func TestDarajaInitiateSTKPush(t *testing.T) {
	var gotAuth string
	var gotPayload map[string]interface{}
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v1/generate", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "key" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-123", "expires_in": "3599"})
	})
	mux.HandleFunc("/mpesa/stkpush/v1/processrequest", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotPayload)
		json.NewEncoder(w).Encode(STKPushResponse{
			MerchantRequestID: "29115-34620561-1",
			CheckoutRequestID: "ws_CO_test_1",
			ResponseCode:      "0",
			CustomerMessage:   "Success. Request accepted for processing",
		})
	})
	p := testDaraja(t, mux)

	resp, err := p.InitiateSTKPush(context.Background(), STKPushRequest{
		Amount:           1500,
		PhoneNumber:      "254712345678",
		AccountReference: "HH-1-abcd1234",
		Description:      "Deposit Payment",
		CallbackURL:      "https://example.com/api/v1/webhooks/mpesa",
	})
	if err != nil {
		t.Fatalf("InitiateSTKPush: %v", err)
	}
	if resp.CheckoutRequestID != "ws_CO_test_1" {
		t.Errorf("wrong CheckoutRequestID: %s", resp.CheckoutRequestID)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("wrong Authorization header: %s", gotAuth)
	}
	if gotPayload["TransactionType"] != "CustomerPayBillOnline" {
		t.Errorf("wrong TransactionType: %v", gotPayload["TransactionType"])
	}
	if gotPayload["PartyB"] != "174379" {
		t.Errorf("wrong PartyB: %v", gotPayload["PartyB"])
	}
	if gotPayload["Amount"] != float64(1500) {
		t.Errorf("wrong Amount: %v", gotPayload["Amount"])
	}
}

func TestDarajaInitiateRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v1/generate", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok", "expires_in": "3599"})
	})
	mux.HandleFunc("/mpesa/stkpush/v1/processrequest", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"ResponseCode":        "1",
			"ResponseDescription": "Invalid shortcode",
		})
	})
	p := testDaraja(t, mux)

	_, err := p.InitiateSTKPush(context.Background(), STKPushRequest{Amount: 100, PhoneNumber: "254700000000"})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestDarajaTokenFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v1/generate", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	p := testDaraja(t, mux)

	_, err := p.InitiateSTKPush(context.Background(), STKPushRequest{Amount: 100, PhoneNumber: "254700000000"})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

// A hung gateway surfaces as ErrUnavailable via the client timeout.
func TestDarajaTimeout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v1/generate", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok", "expires_in": "3599"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	p := NewDarajaProvider(srv.URL, "key", "secret", "174379", "passkey", 50*time.Millisecond)

	_, err := p.InitiateSTKPush(context.Background(), STKPushRequest{Amount: 100, PhoneNumber: "254700000000"})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}
