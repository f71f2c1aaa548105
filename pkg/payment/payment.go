package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrUnavailable covers network failures, timeouts and non-2xx responses
// during initiation. The synchronous response is never authoritative for the
// payment outcome; the async callback is.
var ErrUnavailable = errors.New("payment gateway unavailable")

// ErrMalformedCallback means the webhook body is missing required structure.
var ErrMalformedCallback = errors.New("malformed gateway callback")

type STKPushRequest struct {
	Amount           int64  // whole currency units, as the gateway expects
	PhoneNumber      string // e.g. 254712345678
	AccountReference string
	Description      string
	CallbackURL      string
}

type STKPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

type Provider interface {
	InitiateSTKPush(ctx context.Context, req STKPushRequest) (*STKPushResponse, error)
}

// callbackEnvelope mirrors the gateway's webhook body:
// {"Body":{"stkCallback":{...,"CallbackMetadata":{"Item":[{"Name","Value"}]}}}}
type callbackEnvelope struct {
	Body struct {
		StkCallback *stkCallback `json:"stkCallback"`
	} `json:"Body"`
}

type stkCallback struct {
	MerchantRequestID string `json:"MerchantRequestID"`
	CheckoutRequestID string `json:"CheckoutRequestID"`
	ResultCode        *int   `json:"ResultCode"`
	ResultDesc        string `json:"ResultDesc"`
	CallbackMetadata  struct {
		Item []metadataItem `json:"Item"`
	} `json:"CallbackMetadata"`
}

type metadataItem struct {
	Name  string      `json:"Name"`
	Value interface{} `json:"Value"`
}

// CallbackResult is the normalized outcome of one STK push attempt.
type CallbackResult struct {
	CheckoutRequestID string
	ResultCode        int
	ResultDesc        string
	AmountCents       int64
	Receipt           string
	PhoneNumber       string
}

// Success reports whether the gateway confirmed the payment.
func (r *CallbackResult) Success() bool {
	return r.ResultCode == 0
}

// ParseCallback normalizes a raw webhook body. Metadata item order is not
// guaranteed by the gateway, so items are matched by name. Amount and
// PhoneNumber arrive as JSON numbers, the receipt as a string.
func ParseCallback(raw []byte) (*CallbackResult, error) {
	var env callbackEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCallback, err)
	}
	cb := env.Body.StkCallback
	if cb == nil {
		return nil, fmt.Errorf("%w: missing Body.stkCallback", ErrMalformedCallback)
	}
	if cb.CheckoutRequestID == "" {
		return nil, fmt.Errorf("%w: missing CheckoutRequestID", ErrMalformedCallback)
	}
	if cb.ResultCode == nil {
		return nil, fmt.Errorf("%w: missing ResultCode", ErrMalformedCallback)
	}
	out := &CallbackResult{
		CheckoutRequestID: cb.CheckoutRequestID,
		ResultCode:        *cb.ResultCode,
		ResultDesc:        cb.ResultDesc,
	}
	for _, item := range cb.CallbackMetadata.Item {
		switch item.Name {
		case "Amount":
			out.AmountCents = int64(asFloat(item.Value) * 100)
		case "MpesaReceiptNumber":
			if s, ok := item.Value.(string); ok {
				out.Receipt = s
			}
		case "PhoneNumber":
			out.PhoneNumber = asString(item.Value)
		}
	}
	return out, nil
}

func asFloat(v interface{}) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case string:
		f, _ := strconv.ParseFloat(x, 64)
		return f
	default:
		return 0
	}
}

func asString(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return ""
	}
}
