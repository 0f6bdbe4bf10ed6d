package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker(timeout time.Duration, threshold uint32) *CircuitBreaker {
	return NewCircuitBreaker("test", Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     timeout,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
	})
}

// TestCircuitBreaker_ClosedState 关闭状态下请求正常通过
func TestCircuitBreaker_ClosedState(t *testing.T) {
	cb := newTestBreaker(30*time.Second, 5)

	for i := 0; i < 10; i++ {
		if err := cb.Execute(func() error { return nil }); err != nil {
			t.Fatalf("期望成功，实际失败: %v", err)
		}
	}

	if cb.State() != StateClosed {
		t.Errorf("期望状态为CLOSED，实际%s", cb.State())
	}
	if counts := cb.Counts(); counts.TotalSuccesses != 10 {
		t.Errorf("期望成功10次，实际%d次", counts.TotalSuccesses)
	}
}

// TestCircuitBreaker_OpenState 连续失败触发熔断后快速失败
func TestCircuitBreaker_OpenState(t *testing.T) {
	cb := newTestBreaker(30*time.Second, 5)

	for i := 0; i < 5; i++ {
		_ = cb.Execute(func() error {
			return errors.New("smtp connection refused")
		})
	}

	if cb.State() != StateOpen {
		t.Errorf("期望状态为OPEN，实际%s", cb.State())
	}

	// 熔断期间请求不应到达被保护的函数
	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	if err != ErrOpenState {
		t.Errorf("期望返回ErrOpenState，实际%v", err)
	}
	if called {
		t.Error("熔断器打开时不应该调用实际函数")
	}
}

// TestCircuitBreaker_HalfOpenRecovery 超时后半开探测，成功则恢复
func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb := newTestBreaker(100*time.Millisecond, 3)

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errors.New("fail") })
	}
	if cb.State() != StateOpen {
		t.Fatalf("期望状态为OPEN，实际%s", cb.State())
	}

	time.Sleep(150 * time.Millisecond)

	called := false
	if err := cb.Execute(func() error {
		called = true
		return nil
	}); err != nil {
		t.Errorf("半开状态探测请求期望成功，实际%v", err)
	}
	if !called {
		t.Error("半开状态应该放行探测请求")
	}
	if cb.State() != StateClosed {
		t.Errorf("探测成功后期望状态转为CLOSED，实际%s", cb.State())
	}
}

// TestCircuitBreaker_HalfOpenToOpen 半开探测失败立即转回熔断
func TestCircuitBreaker_HalfOpenToOpen(t *testing.T) {
	cb := newTestBreaker(100*time.Millisecond, 3)

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errors.New("fail") })
	}
	time.Sleep(150 * time.Millisecond)

	_ = cb.Execute(func() error { return errors.New("still fail") })

	if cb.State() != StateOpen {
		t.Errorf("期望状态转回OPEN，实际%s", cb.State())
	}
}

// TestCircuitBreaker_StateChangeCallback 状态变化回调按序触发
func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	cb := newTestBreaker(100*time.Millisecond, 3)

	stateChanges := make([]string, 0)
	cb.SetStateChangeCallback(func(name string, from State, to State) {
		stateChanges = append(stateChanges, from.String()+"->"+to.String())
	})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errors.New("fail") })
	}
	time.Sleep(150 * time.Millisecond)
	_ = cb.Execute(func() error { return nil })

	expected := []string{
		"CLOSED->OPEN",
		"OPEN->HALF_OPEN",
		"HALF_OPEN->CLOSED",
	}
	if len(stateChanges) != len(expected) {
		t.Fatalf("期望%d次状态变化，实际%d次: %v", len(expected), len(stateChanges), stateChanges)
	}
	for i, want := range expected {
		if stateChanges[i] != want {
			t.Errorf("第%d次状态变化期望%s，实际%s", i, want, stateChanges[i])
		}
	}
}

// TestCircuitBreaker_FailureRate 基于失败率的熔断策略
func TestCircuitBreaker_FailureRate(t *testing.T) {
	cb := NewCircuitBreaker("test", Config{
		MaxRequests: 3,
		Interval:    time.Hour, // 长窗口避免计数被重置
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts Counts) bool {
			return counts.Requests >= 10 && counts.FailureRate() > 0.5
		},
	})

	// 4次成功 + 6次失败，失败率60%
	for i := 0; i < 10; i++ {
		index := i
		_ = cb.Execute(func() error {
			if index < 4 {
				return nil
			}
			return errors.New("fail")
		})
	}

	if cb.State() != StateOpen {
		t.Errorf("期望失败率超阈值后状态为OPEN，实际%s", cb.State())
	}
}
