package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	config "github.com/fathallah7/health-clinic/configs"
	"github.com/google/uuid"
)

const stripeAPIBase = "https://api.stripe.com/v1"

// signatureTolerance bounds how old a webhook timestamp may be before
// the event is treated as a replay.
const signatureTolerance = 5 * time.Minute

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrSignatureExpired = errors.New("webhook signature timestamp outside tolerance")
)

type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// WebhookEvent is the subset of a Stripe event the clinic cares about.
type WebhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string `json:"id"`
			Metadata struct {
				AppointmentID string `json:"appointment_id"`
			} `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// CreateCheckoutSession opens a Stripe Checkout session for an
// appointment fee. The appointment id rides along in the session
// metadata so the webhook can find its way back.
func CreateCheckoutSession(appointmentID uuid.UUID, amount float64, currency string) (*CheckoutSession, error) {
	secretKey := config.Config("STRIPE_SECRET_KEY")
	if secretKey == "" {
		return nil, errors.New("STRIPE_SECRET_KEY is not configured")
	}

	unitAmount := int64(math.Round(amount * 100))

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", config.Config("STRIPE_SUCCESS_URL"))
	form.Set("cancel_url", config.Config("STRIPE_CANCEL_URL"))
	form.Set("line_items[0][price_data][currency]", currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(unitAmount, 10))
	form.Set("line_items[0][price_data][product_data][name]", "Clinic Appointment")
	form.Set("line_items[0][quantity]", "1")
	form.Set("metadata[appointment_id]", appointmentID.String())

	req, err := http.NewRequest("POST", fmt.Sprintf("%s/checkout/sessions", stripeAPIBase), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", secretKey))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to create checkout session: %s", string(respBody))
	}

	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, err
	}
	return &session, nil
}

// VerifyWebhookSignature checks a Stripe-Signature header
// ("t=<unix>,v1=<hex hmac>") against the shared webhook secret. The
// signed payload is "<t>.<body>" and the scheme is HMAC-SHA256.
func VerifyWebhookSignature(payload []byte, header string, secret string, now time.Time) error {
	var timestamp int64
	var candidates []string

	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			ts, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return ErrInvalidSignature
			}
			timestamp = ts
		case "v1":
			candidates = append(candidates, kv[1])
		}
	}

	if timestamp == 0 || len(candidates) == 0 {
		return ErrInvalidSignature
	}

	age := now.Sub(time.Unix(timestamp, 0))
	if age > signatureTolerance || age < -signatureTolerance {
		return ErrSignatureExpired
	}

	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	expected := mac.Sum(nil)

	for _, candidate := range candidates {
		decoded, err := hex.DecodeString(candidate)
		if err != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			return nil
		}
	}
	return ErrInvalidSignature
}

// SignWebhookPayload produces a Stripe-Signature header value for a
// payload. Used by tests and local tooling.
func SignWebhookPayload(payload []byte, secret string, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", at.Unix())
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}
