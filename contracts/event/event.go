package event

type Topic string

type Event interface {
	Topic() Topic
	Payload() any
}

// Cancelable 可取消的事件。事件被取消后本次分发立即结束，
// 剩余订阅者不再收到该事件。
type Cancelable interface {
	// Cancel 取消本次分发
	Cancel()
	// Canceled 是否已被取消
	Canceled() bool
}

// Hierarchical 具有父级类型的事件。除自身主题外，
// 各父级主题的订阅者同样会收到该事件。
type Hierarchical interface {
	// Ancestors 父级主题列表，由近及远
	Ancestors() []Topic
}
