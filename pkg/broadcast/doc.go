// Package broadcast provides type-safe in-process fan-out of messages.
//
//	feed := broadcast.NewMemoryBroadcaster[Event](16, broadcast.Block)
//	defer feed.Close()
//
//	sub := feed.Subscribe(ctx)
//	go func() {
//		for msg := range sub.Receive() {
//			handle(msg.Data)
//		}
//	}()
//
//	_ = feed.Broadcast(ctx, broadcast.Message[Event]{Data: ev})
//
// Subscribers are removed when their context is canceled or the broadcaster
// is closed; their channel is closed at that point. With the Block policy a
// full subscriber buffer makes Broadcast wait; with Drop the message is
// skipped and the slow subscriber removed.
package broadcast
