// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestChannelFIFO(t *testing.T) {
	tx, rx := NewChannel()
	for i := range 100 {
		if err := tx.Send(RecreateCommand{Size: Size{Width: i}}); err != nil {
			t.Fatalf("Send(%d) = %v", i, err)
		}
	}
	if rx.Len() != 100 {
		t.Fatalf("Len() = %d, want 100", rx.Len())
	}
	for i := range 100 {
		cmd, err := rx.Recv(context.Background())
		if err != nil {
			t.Fatalf("Recv() = %v", err)
		}
		if got := cmd.(RecreateCommand).Size.Width; got != i {
			t.Fatalf("command %d has width %d", i, got)
		}
	}
	if _, ok := rx.TryRecv(); ok {
		t.Error("TryRecv() on empty queue = true")
	}
}

func TestChannelSharedSenders(t *testing.T) {
	tx, rx := NewChannel()
	clone := *tx

	_ = tx.Send(FillRectCommand{})
	_ = clone.Send(ClearRectCommand{})

	got := cmdTypes(drain(rx))
	if len(got) != 2 || got[0] != CmdFillRect || got[1] != CmdClearRect {
		t.Errorf("received %v, want [FillRect ClearRect]", got)
	}
}

func TestChannelSendAfterClose(t *testing.T) {
	tx, rx := NewChannel()
	_ = tx.Send(FillRectCommand{})
	rx.Close()
	rx.Close()

	if err := tx.Send(FillRectCommand{}); !errors.Is(err, ErrRendererGone) {
		t.Errorf("Send() after Close = %v, want ErrRendererGone", err)
	}
	if _, err := rx.Recv(context.Background()); !errors.Is(err, ErrRendererGone) {
		t.Errorf("Recv() after Close = %v, want ErrRendererGone", err)
	}
	select {
	case <-tx.Done():
	default:
		t.Error("Done() not closed after receiver Close")
	}
}

func TestChannelRecvWaits(t *testing.T) {
	tx, rx := NewChannel()

	got := make(chan Command, 1)
	go func() {
		cmd, err := rx.Recv(context.Background())
		if err == nil {
			got <- cmd
		}
	}()

	time.Sleep(5 * time.Millisecond)
	_ = tx.Send(CloseCommand{})

	select {
	case cmd := <-got:
		if cmd.Type() != CmdClose {
			t.Errorf("Recv() = %s, want Close", cmd.Type())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Recv() did not wake up")
	}
}

func TestChannelRecvCancel(t *testing.T) {
	_, rx := NewChannel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := rx.Recv(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Recv() = %v, want context.Canceled", err)
	}
}

func TestChannelConcurrentProducerConsumer(t *testing.T) {
	tx, rx := NewChannel()
	const n = 5000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range n {
			_ = tx.Send(RecreateCommand{Size: Size{Width: i}})
		}
	}()

	for i := range n {
		cmd, err := rx.Recv(context.Background())
		if err != nil {
			t.Fatalf("Recv() = %v", err)
		}
		if got := cmd.(RecreateCommand).Size.Width; got != i {
			t.Fatalf("out of order: got %d, want %d", got, i)
		}
	}
	wg.Wait()
}

func TestChannelTrailingConsumerKeepsQueueSmall(t *testing.T) {
	tx, rx := NewChannel()
	if err := tx.Send(RecreateCommand{Size: Size{Width: 0}}); err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 10000; i++ {
		if err := tx.Send(RecreateCommand{Size: Size{Width: i}}); err != nil {
			t.Fatal(err)
		}
		cmd, ok := rx.TryRecv()
		if !ok {
			t.Fatalf("TryRecv() empty at %d", i)
		}
		if got := cmd.(RecreateCommand).Size.Width; got != i-1 {
			t.Fatalf("received %d, want %d", got, i-1)
		}
	}

	if n := rx.Len(); n != 1 {
		t.Errorf("Len() = %d, want 1", n)
	}
	rx.q.mu.Lock()
	n := len(rx.q.items)
	rx.q.mu.Unlock()
	if n > 2*compactMin {
		t.Errorf("backing slice holds %d entries for one queued command", n)
	}
}
