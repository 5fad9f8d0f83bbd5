package localeconfig

import (
	"context"
	"sync"
)

// settingsFeed fans change events out to subscribers. Each subscriber holds at
// most one pending event; a newer event replaces an unread one so a slow
// watcher always converges on the latest settings.
type settingsFeed struct {
	mu   sync.Mutex
	subs map[*feedSub]struct{}
}

type feedSub struct {
	ch chan ChangeEvent
}

func newSettingsFeed() *settingsFeed {
	return &settingsFeed{subs: make(map[*feedSub]struct{})}
}

func (f *settingsFeed) subscribe(ctx context.Context) <-chan ChangeEvent {
	if ctx == nil {
		ctx = context.Background()
	}
	sub := &feedSub{ch: make(chan ChangeEvent, 1)}
	if ctx.Err() != nil {
		close(sub.ch)
		return sub.ch
	}

	f.mu.Lock()
	f.subs[sub] = struct{}{}
	f.mu.Unlock()

	go func() {
		<-ctx.Done()
		f.mu.Lock()
		delete(f.subs, sub)
		close(sub.ch)
		f.mu.Unlock()
	}()
	return sub.ch
}

// publish runs under the feed lock so it never races the close in subscribe.
func (f *settingsFeed) publish(evt ChangeEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for sub := range f.subs {
		for {
			select {
			case sub.ch <- evt:
			default:
				select {
				case <-sub.ch:
				default:
				}
				continue
			}
			break
		}
	}
}

func (f *settingsFeed) subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}
