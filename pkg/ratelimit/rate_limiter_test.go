package ratelimit

import "testing"

func TestResultFromReply(t *testing.T) {
	t.Run("over limit is disallowed", func(t *testing.T) {
		// go-redis returns Lua numbers as int64, not float64.
		result, err := resultFromReply([]interface{}{int64(25), int64(-5)}, 20, 1000)
		if err != nil {
			t.Fatalf("resultFromReply returned error: %v", err)
		}
		if result.Allowed {
			t.Error("expected request over the limit to be disallowed")
		}
		if result.Remaining != 0 {
			t.Errorf("Remaining = %d, want 0", result.Remaining)
		}
		if result.Limit != 20 {
			t.Errorf("Limit = %d, want 20", result.Limit)
		}
	})

	t.Run("under limit is allowed", func(t *testing.T) {
		result, err := resultFromReply([]interface{}{int64(3), int64(17)}, 20, 1000)
		if err != nil {
			t.Fatalf("resultFromReply returned error: %v", err)
		}
		if !result.Allowed {
			t.Error("expected request under the limit to be allowed")
		}
		if result.Remaining != 17 {
			t.Errorf("Remaining = %d, want 17", result.Remaining)
		}
		if result.ResetTime != 1000 {
			t.Errorf("ResetTime = %d, want 1000", result.ResetTime)
		}
	})

	t.Run("at limit is allowed", func(t *testing.T) {
		result, err := resultFromReply([]interface{}{int64(20), int64(0)}, 20, 1000)
		if err != nil {
			t.Fatalf("resultFromReply returned error: %v", err)
		}
		if !result.Allowed {
			t.Error("expected request at the limit to be allowed")
		}
	})

	t.Run("malformed replies error out", func(t *testing.T) {
		malformed := []interface{}{
			"not a slice",
			[]interface{}{int64(1)},
			[]interface{}{"1", "19"},
			[]interface{}{int64(1), "19"},
		}
		for _, reply := range malformed {
			if _, err := resultFromReply(reply, 20, 1000); err == nil {
				t.Errorf("resultFromReply(%v) returned no error", reply)
			}
		}
	})
}
