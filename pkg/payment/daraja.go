package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// DarajaProvider implements M-Pesa STK push against the Safaricom Daraja API.
// All credentials are injected; nothing is read from ambient state.
type DarajaProvider struct {
	BaseURL           string
	ConsumerKey       string
	ConsumerSecret    string
	BusinessShortcode string
	Passkey           string
	client            *http.Client
	now               func() time.Time
}

func NewDarajaProvider(baseURL, consumerKey, consumerSecret, shortcode, passkey string, timeout time.Duration) *DarajaProvider {
	if baseURL == "" {
		baseURL = "https://sandbox.safaricom.co.ke"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &DarajaProvider{
		BaseURL:           baseURL,
		ConsumerKey:       consumerKey,
		ConsumerSecret:    consumerSecret,
		BusinessShortcode: shortcode,
		Passkey:           passkey,
		client:            &http.Client{Timeout: timeout},
		now:               time.Now,
	}
}

type darajaTokenResp struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

// getToken fetches a fresh OAuth token per transaction.
func (p *DarajaProvider) getToken(ctx context.Context) (string, error) {
	url := p.BaseURL + "/oauth/v1/generate?grant_type=client_credentials"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(p.ConsumerKey, p.ConsumerSecret)
	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: token: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: token: %d %s", ErrUnavailable, resp.StatusCode, string(body))
	}
	var out darajaTokenResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: token decode: %v", ErrUnavailable, err)
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrUnavailable)
	}
	return out.AccessToken, nil
}

// Password returns the time-based STK password and its timestamp:
// base64(shortcode + passkey + timestamp), timestamp formatted YYYYMMDDHHMMSS.
func (p *DarajaProvider) Password() (password, timestamp string) {
	timestamp = p.now().Format("20060102150405")
	raw := p.BusinessShortcode + p.Passkey + timestamp
	return base64.StdEncoding.EncodeToString([]byte(raw)), timestamp
}

func (p *DarajaProvider) InitiateSTKPush(ctx context.Context, req STKPushRequest) (*STKPushResponse, error) {
	token, err := p.getToken(ctx)
	if err != nil {
		return nil, err
	}
	password, timestamp := p.Password()
	payload := map[string]interface{}{
		"BusinessShortCode": p.BusinessShortcode,
		"Password":          password,
		"Timestamp":         timestamp,
		"TransactionType":   "CustomerPayBillOnline",
		"Amount":            req.Amount,
		"PartyA":            req.PhoneNumber,
		"PartyB":            p.BusinessShortcode,
		"PhoneNumber":       req.PhoneNumber,
		"CallBackURL":       req.CallbackURL,
		"AccountReference":  req.AccountReference,
		"TransactionDesc":   req.Description,
	}
	body, _ := json.Marshal(payload)
	apiReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/mpesa/stkpush/v1/processrequest", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	apiReq.Header.Set("Content-Type", "application/json")
	apiReq.Header.Set("Authorization", "Bearer "+token)
	log.Printf("[MPESA] STK push ref=%s amount=%d phone=%s", req.AccountReference, req.Amount, req.PhoneNumber)
	resp, err := p.client.Do(apiReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: stkpush: %d %s", ErrUnavailable, resp.StatusCode, string(respBody))
	}
	var out STKPushResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("%w: stkpush decode: %v", ErrUnavailable, err)
	}
	if out.ResponseCode != "0" {
		return nil, fmt.Errorf("%w: stkpush rejected: %s %s", ErrUnavailable, out.ResponseCode, out.ResponseDescription)
	}
	return &out, nil
}
