package eventbus

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/opdss/eventbus/contracts/event"
)

// 进程级默认总线，用法与 zap 的全局 logger 一致
var (
	defaultMu  sync.RWMutex
	defaultBus = NewBus(zap.L(), Config{Name: "default"})
)

// Default 返回进程级默认总线
func Default() *Bus {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultBus
}

// ReplaceDefault 替换默认总线并返回恢复函数，
// 测试中可用恢复函数还原之前的总线
func ReplaceDefault(b *Bus) func() {
	defaultMu.Lock()
	prev := defaultBus
	defaultBus = b
	defaultMu.Unlock()
	return func() { ReplaceDefault(prev) }
}

// Subscribe 在默认总线上订阅主题
func Subscribe(topic event.Topic, s event.Subscriber) {
	Default().Subscribe(topic, s)
}

// SubscribeWithContext 在默认总线上订阅主题，订阅者接收 context
func SubscribeWithContext(topic event.Topic, s event.SubscriberWithContext) {
	Default().SubscribeWithContext(topic, s)
}

// UnSubscribe 在默认总线上注销订阅者
func UnSubscribe(topic event.Topic, s event.Subscriber) {
	Default().UnSubscribe(topic, s)
}

// UnSubscribeWithContext 在默认总线上注销带 context 的订阅者
func UnSubscribeWithContext(topic event.Topic, s event.SubscriberWithContext) {
	Default().UnSubscribeWithContext(topic, s)
}

// Publish 在默认总线上分发事件
func Publish(evt event.Event) {
	Default().Publish(evt)
}

// PublishWithContext 在默认总线上携带 ctx 分发事件
func PublishWithContext(ctx context.Context, evt event.Event) {
	Default().PublishWithContext(ctx, evt)
}

// Reset 清空默认总线的全部订阅，通常用于测试之间的隔离
func Reset() {
	Default().Reset()
}
