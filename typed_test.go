package eventbus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOnTypedHandler(t *testing.T) {
	b := newTestBus(t)
	order := NewType("order")
	paid := order.Derive("order.paid")

	var amounts []int
	h := On(b, paid, func(evt *Instance[int]) {
		amounts = append(amounts, evt.Value())
	})
	require.Equal(t, 1, b.Len(paid.Topic()))

	b.Publish(New(paid, 42))
	require.Equal(t, []int{42}, amounts)

	b.UnSubscribe(paid.Topic(), h)
	b.Publish(New(paid, 7))
	require.Equal(t, []int{42}, amounts)
}

func TestOnSkipsOtherConcreteTypes(t *testing.T) {
	b := newTestBus(t)
	msg := NewType("msg")
	text := msg.Derive("msg.text")

	var texts []string
	On(b, msg, func(evt *Instance[string]) {
		texts = append(texts, evt.Value())
	})

	// 父级主题会同时收到不同负载类型的实例，类型不符的被跳过
	b.Publish(New(text, "hi"))
	b.Publish(New(text, 99))
	require.Equal(t, []string{"hi"}, texts)
}

func TestOnHandlesIndependent(t *testing.T) {
	b := newTestBus(t)
	typ := NewType("tick")

	var got []string
	h1 := On(b, typ, func(*Instance[int]) { got = append(got, "h1") })
	h2 := On(b, typ, func(*Instance[int]) { got = append(got, "h2") })
	require.NotSame(t, h1, h2)

	b.UnSubscribe(typ.Topic(), h2)
	b.Publish(New(typ, 1))
	require.Equal(t, []string{"h1"}, got)
}

func TestOnNilHandler(t *testing.T) {
	b := newTestBus(t)
	typ := NewType("noop")

	require.Nil(t, On[*Instance[int]](b, typ, nil))
	require.Equal(t, 0, b.Len(typ.Topic()))
}
