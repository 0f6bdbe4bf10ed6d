package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// TestPool_ExecutesTasks 提交的任务都会被执行
func TestPool_ExecutesTasks(t *testing.T) {
	pool := New("test", 3, 10)
	pool.Start()

	var executed int32
	for i := 0; i < 10; i++ {
		err := pool.Submit(func(ctx context.Context) error {
			atomic.AddInt32(&executed, 1)
			return nil
		})
		if err != nil {
			t.Fatalf("提交失败: %v", err)
		}
	}

	pool.Stop()

	if n := atomic.LoadInt32(&executed); n != 10 {
		t.Errorf("期望执行10个任务，实际%d个", n)
	}
}

// TestPool_QueueFull 队列满时Submit直接拒绝，不阻塞调用方
func TestPool_QueueFull(t *testing.T) {
	pool := New("test", 1, 2)
	pool.Start()
	defer pool.Stop()

	// 阻塞唯一的worker，让后续任务堆积在队列
	block := make(chan struct{})
	_ = pool.Submit(func(ctx context.Context) error {
		<-block
		return nil
	})

	// 等worker取走第一个任务
	deadline := time.After(time.Second)
	for pool.QueueDepth() != 0 {
		select {
		case <-deadline:
			t.Fatal("等待worker取走任务超时")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	// 填满队列
	for i := 0; i < 2; i++ {
		if err := pool.Submit(func(ctx context.Context) error { return nil }); err != nil {
			t.Fatalf("队列未满时提交失败: %v", err)
		}
	}

	if err := pool.Submit(func(ctx context.Context) error { return nil }); err != ErrQueueFull {
		t.Errorf("期望返回ErrQueueFull，实际%v", err)
	}
	if depth := pool.QueueDepth(); depth != 2 {
		t.Errorf("期望队列深度2，实际%d", depth)
	}

	close(block)
}

// TestPool_SubmitAfterStop 池关闭后拒绝新任务
func TestPool_SubmitAfterStop(t *testing.T) {
	pool := New("test", 2, 5)
	pool.Start()
	pool.Stop()

	err := pool.Submit(func(ctx context.Context) error { return nil })
	if err != ErrPoolClosed {
		t.Errorf("期望返回ErrPoolClosed，实际%v", err)
	}
}

// TestPool_StopDrainsQueue 关闭时处理完队列中已有任务再退出
func TestPool_StopDrainsQueue(t *testing.T) {
	pool := New("test", 1, 10)
	pool.Start()

	var executed int32
	for i := 0; i < 5; i++ {
		_ = pool.Submit(func(ctx context.Context) error {
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&executed, 1)
			return nil
		})
	}

	pool.Stop() // 等待队列排空

	if n := atomic.LoadInt32(&executed); n != 5 {
		t.Errorf("期望关闭前执行完5个任务，实际%d个", n)
	}
}

// TestPool_TaskErrorDoesNotKillWorker 单个任务失败不影响后续任务
func TestPool_TaskErrorDoesNotKillWorker(t *testing.T) {
	pool := New("test", 1, 10)
	pool.Start()

	_ = pool.Submit(func(ctx context.Context) error {
		return errors.New("send failed")
	})

	var executed int32
	_ = pool.Submit(func(ctx context.Context) error {
		atomic.AddInt32(&executed, 1)
		return nil
	})

	pool.Stop()

	if atomic.LoadInt32(&executed) != 1 {
		t.Error("任务失败后worker应继续处理后续任务")
	}
}
