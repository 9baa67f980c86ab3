package eventbus

import (
	"go.uber.org/zap"

	"github.com/opdss/eventbus/contracts/event"
)

// typedSubscriber 按具体事件类型过滤的订阅者包装。
// 指针类型保证每次 On 返回的句柄都可独立注销。
type typedSubscriber[E event.Event] struct {
	bus *Bus
	fn  func(E)
}

func (s *typedSubscriber[E]) Handle(evt event.Event) {
	typed, ok := evt.(E)
	if !ok {
		// 父级主题会收到其它具体类型的事件，跳过即可
		s.bus.log.Debug("typed subscriber skipped event",
			zap.String("topic", string(evt.Topic())))
		return
	}
	s.fn(typed)
}

// On 在 b 上订阅 typ 的主题，只有具体类型为 E 的事件才会触发 fn。
// 返回的 Subscriber 是注销时使用的句柄。
func On[E event.Event](b *Bus, typ *Type, fn func(E)) event.Subscriber {
	if fn == nil {
		b.log.Warn("subscribe nil handler", zap.String("topic", string(typ.Topic())))
		return nil
	}
	s := &typedSubscriber[E]{bus: b, fn: fn}
	b.Subscribe(typ.Topic(), s)
	return s
}
