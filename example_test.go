package eventbus_test

import (
	"fmt"

	"github.com/opdss/eventbus"
	"github.com/opdss/eventbus/contracts/event"
)

func Example() {
	bus := eventbus.NewBus(nil, eventbus.Config{})
	deploy := eventbus.NewType("deploy")

	bus.Subscribe(deploy.Topic(), event.SubscribeFunc(func(evt event.Event) {
		fmt.Println("notify:", evt.Payload())
	}))
	bus.Subscribe(deploy.Topic(), event.SubscribeFunc(func(evt event.Event) {
		fmt.Println("audit:", evt.Payload())
	}))

	bus.Publish(eventbus.New(deploy, "v1.2.3"))
	// Output:
	// notify: v1.2.3
	// audit: v1.2.3
}

func ExampleType_Derive() {
	bus := eventbus.NewBus(nil, eventbus.Config{})
	vcs := eventbus.NewType("vcs")
	push := vcs.Derive("vcs.push")

	bus.Subscribe(push.Topic(), event.SubscribeFunc(func(event.Event) {
		fmt.Println("trigger build")
	}))
	bus.Subscribe(vcs.Topic(), event.SubscribeFunc(func(evt event.Event) {
		fmt.Println("mirror", evt.Topic())
	}))

	bus.Publish(eventbus.New(push, "main"))
	// Output:
	// trigger build
	// mirror vcs.push
}

func ExampleOn() {
	bus := eventbus.NewBus(nil, eventbus.Config{})
	paid := eventbus.NewType("order.paid")

	eventbus.On(bus, paid, func(evt *eventbus.Instance[int]) {
		fmt.Println("amount:", evt.Value())
	})

	bus.Publish(eventbus.New(paid, 199))
	// Output:
	// amount: 199
}

func ExampleInstance_Cancel() {
	bus := eventbus.NewBus(nil, eventbus.Config{})
	login := eventbus.NewType("login")

	bus.Subscribe(login.Topic(), event.SubscribeFunc(func(evt event.Event) {
		fmt.Println("blocked")
		evt.(event.Cancelable).Cancel()
	}))
	bus.Subscribe(login.Topic(), event.SubscribeFunc(func(event.Event) {
		fmt.Println("never reached")
	}))

	bus.Publish(eventbus.New(login, "root"))
	// Output:
	// blocked
}

// 包级变量定义处完成注册，等价于在声明时挂接处理函数
var auditWrite = eventbus.NewType("audit.write")

var _ = auditWrite.Handler(event.SubscribeFunc(func(evt event.Event) {
	fmt.Println("audit:", evt.Payload())
}))

func ExampleType_Handler() {
	eventbus.New(auditWrite, "acl changed").Fire()
	// Output:
	// audit: acl changed
}
