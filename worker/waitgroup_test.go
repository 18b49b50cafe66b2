// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package worker

import (
	"testing"
	"time"
)

func testWaitGroupBasics(t *testing.T, mode Mode) {
	wg := NewWaitGroup(mode)
	wg.Add(3)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Wait returned before all Done calls")
	case <-time.After(20 * time.Millisecond):
	}

	wg.Done()
	wg.Done()
	wg.Done()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after the counter reached zero")
	}
}

func TestWaitGroupBlockingMode(t *testing.T) { testWaitGroupBasics(t, Blocking) }
func TestWaitGroupSpinMode(t *testing.T)     { testWaitGroupBasics(t, Spin) }

func TestWaitGroupZeroInitiallyReturnsImmediately(t *testing.T) {
	wg := NewWaitGroup(Blocking)
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait on a fresh WaitGroup should return immediately")
	}
}
