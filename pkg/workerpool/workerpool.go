// Package workerpool 提供固定大小的有界任务池
//
// 设计说明：
// 1. 固定worker数量 + 有界队列，队列满时Submit直接拒绝（不阻塞调用方）
// 2. 用于邮件异步发送：HTTP请求不等待SMTP，入队即返回
// 3. 除"队列满则拒绝"外不提供顺序或送达保证
package workerpool

import (
	"context"
	"errors"
	"log"
	"sync"
)

// Task 一个工作单元
type Task func(ctx context.Context) error

// ErrQueueFull 队列已满，任务被拒绝
var ErrQueueFull = errors.New("worker pool queue is full")

// ErrPoolClosed 池已关闭
var ErrPoolClosed = errors.New("worker pool is closed")

// Pool 固定大小的worker池
type Pool struct {
	name        string
	workerCount int
	taskQueue   chan Task
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc

	mu     sync.Mutex // 保护closed与关闭期间的Submit
	closed bool
}

// New 创建worker池
//
// 参数：
//
//	name: 池名称（用于日志）
//	workerCount: worker数量
//	queueSize: 队列容量（满后拒绝新任务）
func New(name string, workerCount, queueSize int) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		name:        name,
		workerCount: workerCount,
		taskQueue:   make(chan Task, queueSize),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start 启动所有worker
func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	log.Printf("[%s] 已启动%d个worker, 队列容量%d", p.name, p.workerCount, cap(p.taskQueue))
}

// Submit 提交任务（非阻塞）
// 队列满返回ErrQueueFull，池已关闭返回ErrPoolClosed
func (p *Pool) Submit(task Task) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.taskQueue <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// QueueDepth 当前排队任务数（监控指标用）
func (p *Pool) QueueDepth() int {
	return len(p.taskQueue)
}

// Stop 停止池：不再接收新任务，处理完队列中已有任务后退出
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.taskQueue)
	}
	p.mu.Unlock()

	p.wg.Wait()
	p.cancel()
	log.Printf("[%s] 所有worker已退出", p.name)
}

// worker 循环消费任务直到队列关闭
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for task := range p.taskQueue {
		if err := task(p.ctx); err != nil {
			log.Printf("[%s] worker-%d 任务执行失败: %v", p.name, id, err)
		}
	}
}
