package security

import (
	"context"
	"fmt"
	"sync"
)

type FakeEventPublisher struct {
	Published   []Event
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeEventPublisher() *FakeEventPublisher {
	return &FakeEventPublisher{}
}

func (p *FakeEventPublisher) Publish(ctx context.Context, event Event) error {
	if p.ReturnError {
		return fmt.Errorf("could not publish event %v", event)
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Published = append(p.Published, event)
	return nil
}

func (p *FakeEventPublisher) PublishedCount() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return len(p.Published)
}

func (p *FakeEventPublisher) LastPublished() Event {
	p.lock.Lock()
	defer p.lock.Unlock()
	l := len(p.Published)
	if l == 0 {
		panic("no events published")
	}
	return p.Published[l-1]
}
