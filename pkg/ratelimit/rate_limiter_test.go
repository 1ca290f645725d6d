package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/brianstm/kevii-gym-booking-app/internal/shared/config"
)

func limiterConfig(enabled bool) *config.RateLimitConfig {
	return &config.RateLimitConfig{
		Enabled:         enabled,
		WindowDuration:  time.Minute,
		DefaultRequests: 60,
		AuthRequests:    10,
		BookingRequests: 20,
		HealthRequests:  120,
		WhitelistedIPs:  []string{"10.0.0.1"},
	}
}

func TestParseLimitResult_DeniesOverLimit(t *testing.T) {
	// Script reply for a client already at count 25 against a limit of 20:
	// go-redis returns Lua integers as int64.
	reply := []interface{}{int64(0), int64(25), int64(-5)}

	result, err := parseLimitResult(reply, 20, 1700000000)
	if err != nil {
		t.Fatalf("parseLimitResult failed: %v", err)
	}
	if result.Allowed {
		t.Error("over-limit client must be denied")
	}
	if result.Remaining != -5 {
		t.Errorf("remaining = %d, want -5", result.Remaining)
	}
	if result.Limit != 20 {
		t.Errorf("limit = %d, want 20", result.Limit)
	}
}

func TestParseLimitResult_DeniesAtExactLimit(t *testing.T) {
	// A denied request at exactly the limit and the last allowed request in a
	// window both carry remaining 0; only the flag distinguishes them.
	denied, err := parseLimitResult([]interface{}{int64(0), int64(20), int64(0)}, 20, 0)
	if err != nil {
		t.Fatalf("parseLimitResult failed: %v", err)
	}
	if denied.Allowed {
		t.Error("request at the limit must be denied")
	}

	lastAllowed, err := parseLimitResult([]interface{}{int64(1), int64(20), int64(0)}, 20, 0)
	if err != nil {
		t.Fatalf("parseLimitResult failed: %v", err)
	}
	if !lastAllowed.Allowed {
		t.Error("last request inside the window must be allowed")
	}
}

func TestParseLimitResult_AllowsUnderLimit(t *testing.T) {
	result, err := parseLimitResult([]interface{}{int64(1), int64(3), int64(17)}, 20, 0)
	if err != nil {
		t.Fatalf("parseLimitResult failed: %v", err)
	}
	if !result.Allowed {
		t.Error("client under the limit must be allowed")
	}
	if result.Remaining != 17 {
		t.Errorf("remaining = %d, want 17", result.Remaining)
	}
}

func TestParseLimitResult_MalformedReply(t *testing.T) {
	if _, err := parseLimitResult("not-a-slice", 20, 0); err == nil {
		t.Error("expected error for non-slice reply")
	}
	if _, err := parseLimitResult([]interface{}{int64(1)}, 20, 0); err == nil {
		t.Error("expected error for short reply")
	}
	if _, err := parseLimitResult([]interface{}{true, int64(1), int64(1)}, 20, 0); err == nil {
		t.Error("expected error for non-integer flag")
	}
}

func TestIsAllowed_DisabledAndWhitelisted(t *testing.T) {
	disabled := NewRateLimiter(nil, limiterConfig(false))
	result, err := disabled.IsAllowed(context.Background(), "192.0.2.1", RateLimitTypeBooking)
	if err != nil {
		t.Fatalf("IsAllowed failed: %v", err)
	}
	if !result.Allowed || result.Remaining != 20 {
		t.Errorf("disabled limiter should allow with full remaining, got %+v", result)
	}

	// Whitelisted IPs bypass Redis entirely, so a nil client is safe here.
	enabled := NewRateLimiter(nil, limiterConfig(true))
	result, err = enabled.IsAllowed(context.Background(), "10.0.0.1", RateLimitTypeAuth)
	if err != nil {
		t.Fatalf("IsAllowed failed: %v", err)
	}
	if !result.Allowed || result.Limit != 10 {
		t.Errorf("whitelisted IP should be allowed at the auth limit, got %+v", result)
	}
}

func TestGetLimit(t *testing.T) {
	limiter := NewRateLimiter(nil, limiterConfig(true))

	cases := []struct {
		limitType RateLimitType
		want      int
	}{
		{RateLimitTypeDefault, 60},
		{RateLimitTypeAuth, 10},
		{RateLimitTypeBooking, 20},
		{RateLimitTypeHealth, 120},
		{RateLimitType("unknown"), 60},
	}
	for _, tc := range cases {
		if got := limiter.getLimit(tc.limitType); got != tc.want {
			t.Errorf("getLimit(%s) = %d, want %d", tc.limitType, got, tc.want)
		}
	}
}
