package review

import (
	"context"
	"io"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/opsdesk/core"
)

var ErrUnknownQueue = errors.New("unknown queue")

// Key returns the store key of the named queue's document.
func Key(name string) string {
	return "queue:" + name
}

type Service struct {
	store    core.DocumentStore
	validate *validator.Validate
	queues   map[string]Schema
}

func NewService(store core.DocumentStore, validate *validator.Validate, queues ...Queue) *Service {
	svc := &Service{
		store:    store,
		validate: validate,
		queues:   make(map[string]Schema, len(queues)),
	}
	for _, q := range queues {
		svc.queues[q.Name] = q.Schema
	}
	return svc
}

// Names returns the registered queue names, sorted.
func (svc *Service) Names() []string {
	names := make([]string, 0, len(svc.queues))
	for name := range svc.queues {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (svc *Service) schema(name string) (Schema, error) {
	schema, ok := svc.queues[name]
	if !ok {
		return nil, ErrUnknownQueue
	}
	return schema, nil
}

func (svc *Service) load(ctx context.Context, name string) (State, error) {
	if _, err := svc.schema(name); err != nil {
		return State{}, err
	}
	var state State
	if _, err := svc.store.Load(ctx, Key(name), &state); err != nil {
		return State{}, errors.Wrap(err, "loading queue")
	}
	// an absent document is a queue awaiting data
	state.normalize()
	return state, nil
}

func (svc *Service) save(ctx context.Context, name string, state State) error {
	return errors.Wrap(svc.store.Save(ctx, Key(name), state), "saving queue")
}

// Get returns the whole queue document.
func (svc *Service) Get(ctx context.Context, name string) (State, error) {
	return svc.load(ctx, name)
}

func (svc *Service) Current(ctx context.Context, name string) (Progress, error) {
	state, err := svc.load(ctx, name)
	if err != nil {
		return Progress{}, err
	}
	return progressOf(state), nil
}

// Decide applies the decision to the current item and saves the whole queue.
func (svc *Service) Decide(ctx context.Context, name string, d Decision) (Progress, error) {
	d.Status = core.CleanString(d.Status)
	if err := svc.validate.Struct(d); err != nil {
		return Progress{}, err
	}

	state, err := svc.load(ctx, name)
	if err != nil {
		return Progress{}, err
	}
	state, err = ApplyDecision(state, d.Status, d.Fields)
	if err != nil {
		return Progress{}, err
	}
	if err = svc.save(ctx, name, state); err != nil {
		return Progress{}, err
	}
	return progressOf(state), nil
}

// Reset rewinds the named queue to its first item and saves it.
func (svc *Service) Reset(ctx context.Context, name string) (Progress, error) {
	state, err := svc.load(ctx, name)
	if err != nil {
		return Progress{}, err
	}
	state = Reset(state)
	if err = svc.save(ctx, name, state); err != nil {
		return Progress{}, err
	}
	return progressOf(state), nil
}

// Upload replaces the named queue with freshly ingested rows.
func (svc *Service) Upload(ctx context.Context, name string, rows []map[string]interface{}) (Progress, error) {
	schema, err := svc.schema(name)
	if err != nil {
		return Progress{}, err
	}
	state := Ingest(rows, schema)
	if err = svc.save(ctx, name, state); err != nil {
		return Progress{}, err
	}
	return progressOf(state), nil
}

// UploadCSV decodes a CSV upload (header row first) and replaces the named queue with it.
func (svc *Service) UploadCSV(ctx context.Context, name string, r io.Reader) (Progress, error) {
	schema, err := svc.schema(name)
	if err != nil {
		return Progress{}, err
	}
	rows, err := DecodeCSV(r, schema)
	if err != nil {
		return Progress{}, err
	}
	return svc.Upload(ctx, name, rows)
}

func progressOf(state State) Progress {
	item, _ := CurrentItem(state)
	return Progress{
		Item:   item,
		Cursor: state.Cursor,
		Total:  len(state.Items),
		Done:   state.Done(),
	}
}
