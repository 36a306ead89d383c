package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const pushoverAPIURL = "https://api.pushover.net/1/messages.json"

// Pushover posts alerts to the Pushover messages API.
type Pushover struct {
	UserKey  string
	AppToken string
	APIURL   string // overridable for tests
	Client   *http.Client
}

// NewPushover returns a client, or nil when either credential is empty.
func NewPushover(userKey, appToken string) *Pushover {
	if userKey == "" || appToken == "" {
		return nil
	}
	return &Pushover{
		UserKey:  userKey,
		AppToken: appToken,
		APIURL:   pushoverAPIURL,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *Pushover) Send(ctx context.Context, title, message string) error {
	if p == nil || p.UserKey == "" || p.AppToken == "" {
		return fmt.Errorf("pushover disabled")
	}

	form := url.Values{
		"token":   {p.AppToken},
		"user":    {p.UserKey},
		"title":   {title},
		"message": {message},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.APIURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("pushover: HTTP %d - %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
