package resource

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"golang.org/x/net/context"
)

//Watcher tracks a single storage asset and reports content changes
type Watcher struct {
	sourceURL      string
	checkFrequency time.Duration
	source         storage.Object
	mutex          sync.Mutex
	nextCheck      time.Time
}

func (w *Watcher) isCheckDue(now time.Time) bool {
	if w.nextCheck.IsZero() || now.After(w.nextCheck) {
		w.nextCheck = now.Add(w.checkFrequency)
		return true
	}
	return false
}

//Watch checks the asset in the background and calls onChange with updated content,
//or calls the error handler on failure
func (w *Watcher) Watch(ctx context.Context, fs afs.Service, onChange func(data []byte), onError func(err error)) {
	go w.watch(ctx, fs, onChange, onError)
}

func (w *Watcher) watch(ctx context.Context, fs afs.Service, onChange func(data []byte), onError func(err error)) {
	for {
		if ctx.Err() != nil {
			return
		}
		if err := w.Notify(ctx, fs, onChange); err != nil {
			onError(err)
		}
		time.Sleep(w.checkFrequency)
	}
}

//Notify calls onChange if the asset has been modified since the last check
func (w *Watcher) Notify(ctx context.Context, fs afs.Service, onChange func(data []byte)) error {
	if w.sourceURL == "" {
		return nil
	}
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if !w.isCheckDue(time.Now()) {
		return nil
	}
	object, err := fs.Object(ctx, w.sourceURL)
	if err != nil {
		return errors.Wrapf(err, "failed to check asset %v", w.sourceURL)
	}
	if w.source == nil {
		w.source = object
		return nil
	}
	if object.ModTime().Equal(w.source.ModTime()) {
		return nil
	}
	data, err := fs.DownloadWithURL(ctx, w.sourceURL)
	if err != nil {
		return errors.Wrapf(err, "failed to load asset %v", w.sourceURL)
	}
	w.source = object
	onChange(data)
	return nil
}

//New creates an asset watcher
func New(sourceURL string, checkFrequency time.Duration) *Watcher {
	if checkFrequency == 0 {
		checkFrequency = time.Minute
	}
	return &Watcher{
		sourceURL:      sourceURL,
		checkFrequency: checkFrequency,
	}
}
