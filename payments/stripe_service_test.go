package payments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyWebhookSignatureAcceptsValid(t *testing.T) {
	payload := []byte(`{"type":"checkout.session.completed"}`)
	secret := "whsec_test"
	now := time.Now()

	header := SignWebhookPayload(payload, secret, now)
	require.NoError(t, VerifyWebhookSignature(payload, header, secret, now))
}

func TestVerifyWebhookSignatureRejectsWrongSecret(t *testing.T) {
	payload := []byte(`{"type":"checkout.session.completed"}`)
	now := time.Now()

	header := SignWebhookPayload(payload, "whsec_other", now)
	err := VerifyWebhookSignature(payload, header, "whsec_test", now)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyWebhookSignatureRejectsTamperedPayload(t *testing.T) {
	secret := "whsec_test"
	now := time.Now()

	header := SignWebhookPayload([]byte(`{"amount":10}`), secret, now)
	err := VerifyWebhookSignature([]byte(`{"amount":9999}`), header, secret, now)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyWebhookSignatureRejectsStaleTimestamp(t *testing.T) {
	payload := []byte(`{}`)
	secret := "whsec_test"
	signedAt := time.Now().Add(-time.Hour)

	header := SignWebhookPayload(payload, secret, signedAt)
	err := VerifyWebhookSignature(payload, header, secret, time.Now())
	assert.ErrorIs(t, err, ErrSignatureExpired)
}

func TestVerifyWebhookSignatureRejectsMalformedHeader(t *testing.T) {
	payload := []byte(`{}`)

	for _, header := range []string{"", "t=abc,v1=00", "v1=00", "t=123"} {
		err := VerifyWebhookSignature(payload, header, "whsec_test", time.Now())
		assert.Error(t, err, "header %q should be rejected", header)
	}
}
