// Package event is the application event dispatcher, a small facade over
// asaskevich/EventBus. Topics are dotted names; payloads are whatever the
// publisher and its subscribers agree on.
//
//	event.Listen(event.ProductCreated, func(p models.Product) { ... })
//	event.Fire(event.ProductCreated, p)
package event

import (
	"github.com/asaskevich/EventBus"
)

// Topics published by the inventory services.
const (
	ProductCreated   = "product.created"
	ProductsImported = "products.imported"
	StockLow         = "stock.low"
)

var bus = EventBus.New()

// Listen registers fn for the given topic. fn's signature must match the
// arguments the topic is fired with.
func Listen(topic string, fn interface{}) error {
	return bus.Subscribe(topic, fn)
}

// Fire dispatches topic synchronously to all subscribers.
func Fire(topic string, args ...interface{}) {
	bus.Publish(topic, args...)
}

// FireAsync dispatches topic in a transactional goroutine per subscriber and
// returns immediately.
func FireAsync(topic string, args ...interface{}) {
	go bus.Publish(topic, args...)
}

// Forget removes a previously registered handler.
func Forget(topic string, fn interface{}) error {
	return bus.Unsubscribe(topic, fn)
}
