package eventbus

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/opdss/eventbus/contracts/event"
)

// Type 事件类型声明。Derive 派生的子类型构成单继承链，
// 子类型的事件会依次分发给各级父类型的订阅者。
type Type struct {
	topic  event.Topic
	parent *Type
}

// NewType 声明一个根事件类型，topic 为空会 panic
func NewType(topic event.Topic) *Type {
	if topic == "" {
		panic(ErrBus.New("empty topic"))
	}
	return &Type{topic: topic}
}

// Derive 声明 t 的子类型，topic 在继承链上重复会 panic
func (t *Type) Derive(topic event.Topic) *Type {
	if topic == "" {
		panic(ErrBus.New("empty topic"))
	}
	for p := t; p != nil; p = p.parent {
		if p.topic == topic {
			panic(ErrBus.New("topic %q already on lineage", topic))
		}
	}
	return &Type{topic: topic, parent: t}
}

func (t *Type) Topic() event.Topic {
	return t.topic
}

// Parent 父类型，根类型返回 nil
func (t *Type) Parent() *Type {
	return t.parent
}

// Lineage 自身及各级父类型的主题，由近及远
func (t *Type) Lineage() []event.Topic {
	var topics []event.Topic
	for p := t; p != nil; p = p.parent {
		topics = append(topics, p.topic)
	}
	return topics
}

// Subscribe 在默认总线上订阅该类型
func (t *Type) Subscribe(s event.Subscriber) {
	Default().Subscribe(t.topic, s)
}

// UnSubscribe 在默认总线上注销该类型的订阅者
func (t *Type) UnSubscribe(s event.Subscriber) {
	Default().UnSubscribe(t.topic, s)
}

// Handler 在默认总线上订阅该类型并原样返回 s，
// 便于在包级变量定义处完成注册
func (t *Type) Handler(s event.Subscriber) event.Subscriber {
	t.Subscribe(s)
	return s
}

var (
	_ event.Event        = (*Instance[any])(nil)
	_ event.Cancelable   = (*Instance[any])(nil)
	_ event.Hierarchical = (*Instance[any])(nil)
	_ fmt.Stringer       = (*Instance[any])(nil)
)

// Instance 某个事件类型的一次发生，携带类型化负载。
// 实例自身不做并发保护，同一实例不要在多个 goroutine 上同时分发。
type Instance[T any] struct {
	typ      *Type
	id       uuid.UUID
	payload  T
	canceled bool
}

// New 创建 typ 的事件实例并分配新的实例 ID
func New[T any](typ *Type, payload T) *Instance[T] {
	return NewWithID(typ, uuid.New(), payload)
}

// NewWithID 以调用方给定的实例 ID 创建事件实例，typ 为 nil 会 panic
func NewWithID[T any](typ *Type, id uuid.UUID, payload T) *Instance[T] {
	if typ == nil {
		panic(ErrBus.New("nil event type"))
	}
	return &Instance[T]{typ: typ, id: id, payload: payload}
}

// Type 实例所属的事件类型
func (e *Instance[T]) Type() *Type {
	return e.typ
}

func (e *Instance[T]) Topic() event.Topic {
	return e.typ.topic
}

func (e *Instance[T]) Payload() any {
	return e.payload
}

// Value 负载的具体类型值
func (e *Instance[T]) Value() T {
	return e.payload
}

// ID 实例标识，同一实例多次分发保持不变
func (e *Instance[T]) ID() uuid.UUID {
	return e.id
}

// Ancestors 父级类型主题，由近及远
func (e *Instance[T]) Ancestors() []event.Topic {
	if e.typ.parent == nil {
		return nil
	}
	return e.typ.parent.Lineage()
}

// Cancel 取消本次分发，其后的订阅者不再收到该事件
func (e *Instance[T]) Cancel() {
	e.canceled = true
}

func (e *Instance[T]) Canceled() bool {
	return e.canceled
}

// ResetCancel 清除取消标记。总线在每次分发开始时调用，
// 因此被取消过的实例可以再次分发。
func (e *Instance[T]) ResetCancel() {
	e.canceled = false
}

// Fire 在默认总线上分发该实例
func (e *Instance[T]) Fire() {
	Default().Publish(e)
}

// FireWithContext 在默认总线上携带 ctx 分发该实例
func (e *Instance[T]) FireWithContext(ctx context.Context) {
	Default().PublishWithContext(ctx, e)
}

func (e *Instance[T]) String() string {
	return fmt.Sprintf("%s %s", e.typ.topic, e.id)
}
