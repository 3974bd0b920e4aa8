package messaging

import (
	"encoding/json"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition never met")
}

func TestBroadcasterDeliversToSubscribers(t *testing.T) {
	b := NewShareBroadcaster(nil)
	stop := make(chan struct{})
	go b.Run(stop)
	t.Cleanup(func() { close(stop) })

	client := &Client{InstanceID: "inst-1", Send: make(chan []byte, 1)}
	b.Register(client)
	waitFor(t, func() bool { return b.SubscriberCount("inst-1") == 1 })

	b.Publish(ShareUpdate{InstanceID: "inst-1", ShareURL: "https://x/preview/t/p", UpdatedAt: time.Now().UTC()})

	select {
	case msg := <-client.Send:
		var update ShareUpdate
		if err := json.Unmarshal(msg, &update); err != nil {
			t.Fatal(err)
		}
		if update.ShareURL != "https://x/preview/t/p" {
			t.Errorf("share url: got %q", update.ShareURL)
		}
	case <-time.After(time.Second):
		t.Fatal("update never delivered")
	}

	b.Unregister(client)
	waitFor(t, func() bool { return b.SubscriberCount("inst-1") == 0 })
}

func TestBroadcasterIgnoresOtherInstances(t *testing.T) {
	b := NewShareBroadcaster(nil)
	stop := make(chan struct{})
	go b.Run(stop)
	t.Cleanup(func() { close(stop) })

	client := &Client{InstanceID: "inst-1", Send: make(chan []byte, 1)}
	b.Register(client)
	waitFor(t, func() bool { return b.SubscriberCount("inst-1") == 1 })

	b.Publish(ShareUpdate{InstanceID: "inst-2", ShareURL: "https://x/preview/t/other"})

	select {
	case <-client.Send:
		t.Fatal("update for another instance must not reach this client")
	case <-time.After(50 * time.Millisecond):
	}
	if b.SubscriberCount("inst-2") != 0 {
		t.Error("inst-2 should have no subscribers")
	}
}
