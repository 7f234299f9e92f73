package ws

import (
	"log"

	"sustainability_dashboard/internal/dashboard"
)

// Bridge implements dashboard.Notifier and broadcasts reloads to the hub.
type Bridge struct {
	hub *Hub
}

func NewBridge(hub *Hub) *Bridge {
	return &Bridge{hub: hub}
}

func (b *Bridge) OnDataLoaded(datasets []dashboard.DatasetInfo) {
	msg, err := dataLoadedMessage(datasets)
	if err != nil {
		log.Printf("Error marshaling data:loaded: %v", err)
		return
	}
	b.hub.Broadcast(msg)
}
