// Package eventbus 提供进程内的同步事件总线：订阅者按注册顺序在
// 发布方 goroutine 上依次收到事件，支持事件类型继承与取消分发。
package eventbus

import (
	"context"
	"reflect"
	"runtime/debug"
	"sync"

	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/opdss/eventbus/contracts/event"
	"github.com/opdss/eventbus/contracts/iterator"
	sliceiter "github.com/opdss/eventbus/iterator"
)

var ErrBus = errs.Class("eventbus")

// Config 事件总线配置
type Config struct {
	Name           string `help:"总线名称，会附加到日志字段" default:""`
	DisableInherit bool   `help:"是否禁止向父级主题的订阅者分发" default:"false"`
}

// Option 创建总线时的可选项
type Option func(b *Bus)

// WithPanicHandler 设置订阅者 panic 时的回调，可用来收集分发期间的错误
func WithPanicHandler(fn func(event.Event, error)) Option {
	return func(b *Bus) {
		b.panicHandler = fn
	}
}

// entry 订阅表中的一项，sub 与 ctxSub 二者只有一个非空
type entry struct {
	sub    event.Subscriber
	ctxSub event.SubscriberWithContext
}

func (e entry) invoke(ctx context.Context, evt event.Event) {
	if e.sub != nil {
		e.sub.Handle(evt)
		return
	}
	e.ctxSub.Handle(ctx, evt)
}

// subscriber 以 Subscriber 形式返回登记的回调
func (e entry) subscriber() event.Subscriber {
	if e.sub != nil {
		return e.sub
	}
	ctxSub := e.ctxSub
	return event.SubscribeFunc(func(evt event.Event) {
		ctxSub.Handle(context.Background(), evt)
	})
}

var (
	_ event.EventBus            = (*Bus)(nil)
	_ event.EventBusWithContext = (*Bus)(nil)
)

// Bus 同步事件总线。同一主题的订阅者按注册顺序依次被调用，
// 单个订阅者 panic 不会中断本次分发。
type Bus struct {
	log          *zap.Logger
	conf         Config
	panicHandler func(event.Event, error)

	mu      sync.RWMutex
	entries map[event.Topic][]entry
}

func NewBus(log *zap.Logger, conf Config, opts ...Option) *Bus {
	if log == nil {
		log = zap.NewNop()
	}
	if conf.Name != "" {
		log = log.With(zap.String("bus", conf.Name))
	}
	b := &Bus{
		log:     log,
		conf:    conf,
		entries: make(map[event.Topic][]entry),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe 为主题追加一个订阅者。重复注册同一订阅者会被调用多次，
// 顺序以注册顺序为准。
func (b *Bus) Subscribe(topic event.Topic, s event.Subscriber) {
	if s == nil {
		b.log.Warn("subscribe nil subscriber", zap.String("topic", string(topic)))
		return
	}
	b.add(topic, entry{sub: s})
}

// SubscribeWithContext 注册一个接收 context 的订阅者，
// 与 Subscribe 注册的订阅者共用同一份顺序表。
func (b *Bus) SubscribeWithContext(topic event.Topic, s event.SubscriberWithContext) {
	if s == nil {
		b.log.Warn("subscribe nil subscriber", zap.String("topic", string(topic)))
		return
	}
	b.add(topic, entry{ctxSub: s})
}

func (b *Bus) add(topic event.Topic, e entry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	old := b.entries[topic]
	// 订阅表只整体替换，进行中的分发持有的快照不受影响
	list := make([]entry, len(old)+1)
	copy(list, old)
	list[len(old)] = e
	b.entries[topic] = list
	b.log.Debug("subscriber registered",
		zap.String("topic", string(topic)),
		zap.Int("subscribers", len(list)))
}

// UnSubscribe 移除主题下第一个与 s 相同的订阅者，未找到时不做任何事。
// 函数订阅者按函数指针比较，其余可比较类型按相等比较，
// 注销时需要持有注册时的原值。
func (b *Bus) UnSubscribe(topic event.Topic, s event.Subscriber) {
	if s == nil {
		return
	}
	b.remove(topic, func(e entry) bool {
		return e.sub != nil && sameCallable(e.sub, s)
	})
}

// UnSubscribeWithContext 移除 SubscribeWithContext 注册的订阅者
func (b *Bus) UnSubscribeWithContext(topic event.Topic, s event.SubscriberWithContext) {
	if s == nil {
		return
	}
	b.remove(topic, func(e entry) bool {
		return e.ctxSub != nil && sameCallable(e.ctxSub, s)
	})
}

func (b *Bus) remove(topic event.Topic, match func(entry) bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	old := b.entries[topic]
	for i := range old {
		if !match(old[i]) {
			continue
		}
		list := make([]entry, 0, len(old)-1)
		list = append(list, old[:i]...)
		list = append(list, old[i+1:]...)
		if len(list) == 0 {
			delete(b.entries, topic)
		} else {
			b.entries[topic] = list
		}
		b.log.Debug("subscriber removed",
			zap.String("topic", string(topic)),
			zap.Int("subscribers", len(list)))
		return
	}
	b.log.Debug("unsubscribe of unknown subscriber",
		zap.String("topic", string(topic)))
}

// sameCallable 判断两个已登记的回调是否相同：函数按函数指针比较，
// 其它可比较类型按相等比较，不可比较类型永不相同
func sameCallable(a, b any) bool {
	av := reflect.ValueOf(a)
	bv := reflect.ValueOf(b)
	if av.Type() != bv.Type() {
		return false
	}
	if av.Kind() == reflect.Func {
		return av.Pointer() == bv.Pointer()
	}
	if av.Type().Comparable() {
		return a == b
	}
	return false
}

// Publish 在调用方 goroutine 上同步分发事件，返回时所有订阅者均已执行完毕
func (b *Bus) Publish(evt event.Event) {
	b.PublishWithContext(context.Background(), evt)
}

// PublishWithContext 同步分发事件。ctx 只透传给带 context 的订阅者，
// 不会因 ctx 结束而中止分发。
//
// 分发开始时先对订阅表做快照，分发期间的订阅变更只影响之后的分发。
// 事件若实现 Hierarchical，父级主题的订阅者在自身主题之后、由近及远
// 依次收到事件；若实现 Cancelable 且被某个订阅者取消，其后的订阅者
// （含父级主题的）全部跳过。
func (b *Bus) PublishWithContext(ctx context.Context, evt event.Event) {
	if evt == nil {
		b.log.Warn("publish nil event")
		return
	}
	if r, ok := evt.(interface{ ResetCancel() }); ok {
		r.ResetCancel()
	}

	topics := b.chain(evt)
	snapshots := make([][]entry, len(topics))
	b.mu.RLock()
	for i, t := range topics {
		snapshots[i] = b.entries[t]
	}
	b.mu.RUnlock()

	b.log.Debug("publishing event", zap.String("topic", string(evt.Topic())))

	cancelable, _ := evt.(event.Cancelable)
	for i, t := range topics {
		for _, e := range snapshots[i] {
			if cancelable != nil && cancelable.Canceled() {
				b.log.Debug("event canceled, remaining subscribers skipped",
					zap.String("topic", string(evt.Topic())),
					zap.String("chain", string(t)))
				return
			}
			b.dispatch(ctx, t, evt, e)
		}
	}
}

// chain 返回分发主题序列：自身主题在前，父级主题由近及远
func (b *Bus) chain(evt event.Event) []event.Topic {
	topics := []event.Topic{evt.Topic()}
	if b.conf.DisableInherit {
		return topics
	}
	if h, ok := evt.(event.Hierarchical); ok {
		topics = append(topics, h.Ancestors()...)
	}
	return topics
}

// dispatch 调用单个订阅者并隔离其 panic
func (b *Bus) dispatch(ctx context.Context, topic event.Topic, evt event.Event, e entry) {
	defer func() {
		if r := recover(); r != nil {
			err := ErrBus.New("subscriber panic on %q: %v", topic, r)
			b.log.Error("subscriber panicked",
				zap.String("topic", string(topic)),
				zap.String("event", string(evt.Topic())),
				zap.Error(err),
				zap.String("stack", string(debug.Stack())))
			if b.panicHandler != nil {
				b.panicHandler(evt, err)
			}
		}
	}()
	e.invoke(ctx, evt)
}

// Topics 当前存在订阅者的全部主题，按字典序排列
func (b *Bus) Topics() []event.Topic {
	b.mu.RLock()
	topics := maps.Keys(b.entries)
	b.mu.RUnlock()
	slices.Sort(topics)
	return topics
}

// Len 主题下当前登记的订阅者数量
func (b *Bus) Len(topic event.Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries[topic])
}

// Subscribers 主题订阅者的快照迭代器，
// 带 context 的订阅者以包装后的 Subscriber 形式返回
func (b *Bus) Subscribers(topic event.Topic) iterator.Iterator[event.Subscriber] {
	b.mu.RLock()
	list := b.entries[topic]
	b.mu.RUnlock()
	subs := make([]event.Subscriber, 0, len(list))
	for _, e := range list {
		subs = append(subs, e.subscriber())
	}
	return sliceiter.NewSliceIterator(subs)
}

// Reset 清空全部订阅，通常用于测试之间的隔离
func (b *Bus) Reset() {
	b.mu.Lock()
	b.entries = make(map[event.Topic][]entry)
	b.mu.Unlock()
	b.log.Debug("bus reset")
}
