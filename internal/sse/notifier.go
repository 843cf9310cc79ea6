package sse

import (
	"time"

	"github.com/voltshop/inventory-api/internal/models"
)

// HubNotifier forwards catalog changes to the SSE Hub. It satisfies the
// engine's StockNotifier interface.
type HubNotifier struct {
	hub *Hub
}

// NewHubNotifier creates a notifier backed by the given Hub.
func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyProductRegistered(product *models.Product) {
	if n.hub.ClientCount() == 0 {
		return
	}
	quantity := product.Quantity
	n.hub.Broadcast(&StockEvent{
		Event:     EventProductRegistered,
		Model:     product.Model,
		Category:  string(product.Category),
		Quantity:  &quantity,
		Timestamp: time.Now(),
	})
}

func (n *HubNotifier) NotifyStockChanged(model string, quantity int) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(&StockEvent{
		Event:     EventStockChanged,
		Model:     model,
		Quantity:  &quantity,
		Timestamp: time.Now(),
	})
}

func (n *HubNotifier) NotifyProductDeleted(model string) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(&StockEvent{
		Event:     EventProductDeleted,
		Model:     model,
		Timestamp: time.Now(),
	})
}

func (n *HubNotifier) NotifyCatalogCleared() {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(&StockEvent{
		Event:     EventCatalogCleared,
		Timestamp: time.Now(),
	})
}
