package display

import (
	"fmt"
	"sync"
)

// OpKind is the kind of a recorded region operation.
type OpKind string

const (
	OpShow    OpKind = "show"
	OpHide    OpKind = "hide"
	OpContent OpKind = "content"
)

// Op is one recorded region operation.
type Op struct {
	Region  string
	Kind    OpKind
	Content string
}

func (o Op) String() string {
	if o.Kind == OpContent {
		return fmt.Sprintf("%s.%s(%q)", o.Region, o.Kind, o.Content)
	}
	return o.Region + "." + string(o.Kind)
}

// Log collects operations from a set of recording regions in call order.
type Log struct {
	mu  sync.Mutex
	ops []Op
}

func (l *Log) add(op Op) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ops = append(l.ops, op)
}

// Ops returns a copy of the recorded operations.
func (l *Log) Ops() []Op {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Op, len(l.ops))
	copy(out, l.ops)
	return out
}

// Count returns how many times kind was applied to region.
func (l *Log) Count(region string, kind OpKind) int {
	n := 0
	for _, op := range l.Ops() {
		if op.Region == region && op.Kind == kind {
			n++
		}
	}
	return n
}

// Reset drops all recorded operations.
func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ops = nil
}

// Recorder is an in-memory Region that logs every operation.
type Recorder struct {
	name string
	log  *Log

	mu      sync.Mutex
	visible bool
	content string
}

// NewRecorder creates a recording region writing to log.
func NewRecorder(name string, log *Log) *Recorder {
	return &Recorder{name: name, log: log}
}

func (r *Recorder) Show() {
	r.mu.Lock()
	r.visible = true
	r.mu.Unlock()
	r.log.add(Op{Region: r.name, Kind: OpShow})
}

func (r *Recorder) Hide() {
	r.mu.Lock()
	r.visible = false
	r.mu.Unlock()
	r.log.add(Op{Region: r.name, Kind: OpHide})
}

func (r *Recorder) SetContent(content string) {
	r.mu.Lock()
	r.content = content
	r.mu.Unlock()
	r.log.add(Op{Region: r.name, Kind: OpContent, Content: content})
}

func (r *Recorder) Visible() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.visible
}

// Content returns the last content set.
func (r *Recorder) Content() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.content
}

// NewRecorders returns four recording regions sharing one log.
func NewRecorders() (Regions, *Log) {
	log := &Log{}
	return Regions{
		Loading: NewRecorder(LoadingName, log),
		Result:  NewRecorder(ResultName, log),
		Error:   NewRecorder(ErrorName, log),
		Chart:   NewRecorder(ChartName, log),
	}, log
}
