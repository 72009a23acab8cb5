// Package simulator 模拟一次到权威服务器的请求往返：
// 返回前复制快照，并在注入的时钟上等待固定延迟。
package simulator

import (
	"time"

	"github.com/coder/quartz"
)

// Cloner 快照需实现深拷贝，切断与引擎内存状态的别名
type Cloner[T any] interface {
	Clone() T
}

type Simulator struct {
	clock quartz.Clock
	delay time.Duration
}

func New(clock quartz.Clock, delay time.Duration) *Simulator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Simulator{clock: clock, delay: delay}
}

// Instant 无延迟，测试与离线模拟使用
func Instant() *Simulator {
	return New(quartz.NewReal(), 0)
}

func (s *Simulator) Delay() time.Duration {
	return s.delay
}

// Respond 等待 delay 后返回 v 的副本；不支持取消，调用一定会完成
func Respond[T Cloner[T]](s *Simulator, v T) T {
	out := v.Clone()
	if s == nil || s.delay <= 0 {
		return out
	}
	timer := s.clock.NewTimer(s.delay, "simulator", "respond")
	<-timer.C
	return out
}
