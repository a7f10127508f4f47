package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go"
)

// 決済ゲートウェイの照会クライアント。
// コールバックは署名検証のうえ、最終ステータスはゲートウェイ側へ問い合わせて確定する。
type Client struct {
	baseURL string
	secret  string
	http    *http.Client
}

func NewClient(baseURL string, secret string) *Client {
	return &Client{
		baseURL: baseURL,
		secret:  secret,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// 署名はbase64(HMAC_SHA256(transaction_code + "|" + status))。
func (c *Client) VerifySignature(transactionCode string, status string, signature string) bool {
	if signature == "" || c.secret == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(c.secret))
	_, _ = mac.Write([]byte(transactionCode + "|" + status))
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

type transactionResponse struct {
	TransactionCode string `json:"transaction_code"`
	Status          string `json:"status"`
}

// ゲートウェイの取引ステータスを取得。一時的な失敗は少しリトライする。
func (c *Client) FetchStatus(ctx context.Context, transactionCode string) (string, error) {
	var status string

	err := retry.Do(
		func() error {
			u := fmt.Sprintf("%s/transactions/%s", c.baseURL, url.PathEscape(transactionCode))
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
			if err != nil {
				return err
			}

			res, err := c.http.Do(req)
			if err != nil {
				return err
			}
			defer res.Body.Close()

			if res.StatusCode != http.StatusOK {
				return fmt.Errorf("gateway status %d", res.StatusCode)
			}

			var body transactionResponse
			if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
				return err
			}

			status = body.Status
			return nil
		},
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
	)

	if err != nil {
		return "", err
	}
	return status, nil
}
