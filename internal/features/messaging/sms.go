package messaging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-casework/internal/config"
)

// SMSGateway posts to an external HTTP SMS provider. The provider
// contract is a JSON body with "to" and "message" plus an API key header.
type SMSGateway struct {
	url    string
	apiKey string
	client *http.Client
}

func NewSMSGateway(cfg *config.Config) *SMSGateway {
	return &SMSGateway{
		url:    cfg.SMSGatewayURL,
		apiKey: cfg.SMSGatewayKey,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *SMSGateway) Send(to, message string) error {
	if g.url == "" {
		return fmt.Errorf("sms gateway not configured")
	}

	payload, err := json.Marshal(map[string]string{
		"to":      to,
		"message": message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}
