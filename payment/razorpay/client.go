// Package razorpay is the payment provider client used by the
// enrollment gateway. Only order creation talks to the provider;
// signature verification stays local to the gateway.
package razorpay

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"lms/apperrors"
	"lms/services/payment"
)

var errOrderCreation = apperrors.New(apperrors.KindExternal, "PaymentProviderError", "Payment provider rejected the order!")

type Client struct {
	http    *resty.Client
	baseURL string
}

func NewClient(baseURL, apiKey, apiSecret string) *Client {
	http := resty.New().
		SetBasicAuth(apiKey, apiSecret).
		SetTimeout(10 * time.Second)

	return &Client{http: http, baseURL: baseURL}
}

// CreateOrder asks the provider for an order. The order lives provider
// side only; an abandoned checkout leaves nothing locally.
func (c *Client) CreateOrder(amount int64, currency, receipt string) (*payment.Order, error) {
	var order payment.Order

	resp, err := c.http.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"amount":   amount,
			"currency": currency,
			"receipt":  receipt,
		}).
		SetResult(&order).
		Post(c.baseURL + "/orders")
	if err != nil {
		return nil, apperrors.Wrap(errOrderCreation, err)
	}
	if resp.IsError() {
		return nil, apperrors.Wrap(errOrderCreation,
			fmt.Errorf("status %d: %s", resp.StatusCode(), resp.String()))
	}

	return &order, nil
}
