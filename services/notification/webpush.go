package notification

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"tasknest/models"

	webpush "github.com/SherClockHolmes/webpush-go"
)

// ErrEndpointGone marks a delivery attempt the push service rejected with
// "gone" semantics: the endpoint will never work again and the subscription
// should be removed.
var ErrEndpointGone = errors.New("push endpoint is permanently gone")

// ErrNotConfigured marks a sweep aborted because the VAPID signing
// configuration is incomplete.
var ErrNotConfigured = errors.New("VAPID keys are not configured")

// VAPIDPushSender delivers Web Push messages signed with the application's
// VAPID key pair.
type VAPIDPushSender struct {
	Subject    string
	PublicKey  string
	PrivateKey string
	TTL        int
}

// Validate reports whether the VAPID configuration is complete.
func (s *VAPIDPushSender) Validate() error {
	if s.Subject == "" || s.PublicKey == "" || s.PrivateKey == "" {
		return ErrNotConfigured
	}
	return nil
}

// Send delivers one payload to one subscription. Keys are passed to the push
// service exactly as the browser handed them over (base64url strings).
func (s *VAPIDPushSender) Send(ctx context.Context, sub models.PushSubscription, payload []byte) error {
	target := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}
	opts := &webpush.Options{
		Subscriber:      s.Subject,
		VAPIDPublicKey:  sanitizeVAPIDKey(s.PublicKey),
		VAPIDPrivateKey: s.PrivateKey,
		TTL:             s.TTL,
	}

	resp, err := webpush.SendNotificationWithContext(ctx, payload, target, opts)
	if err != nil {
		return fmt.Errorf("push send failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusGone, resp.StatusCode == http.StatusNotFound:
		return ErrEndpointGone
	case resp.StatusCode >= 400:
		return fmt.Errorf("push service returned status %d", resp.StatusCode)
	}
	return nil
}

// sanitizeVAPIDKey converts a public key that may have been stored in
// standard base64 into the unpadded base64url form the push protocol expects.
func sanitizeVAPIDKey(key string) string {
	key = strings.ReplaceAll(key, "=", "")
	key = strings.ReplaceAll(key, "+", "-")
	return strings.ReplaceAll(key, "/", "_")
}
