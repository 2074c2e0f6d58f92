package resource

import (
	"strings"
	"sync"
)

//Errors aggregates errors collected across independent operations
type Errors struct {
	mux    sync.Mutex
	Errors []error
}

func (e *Errors) Error() string {
	e.mux.Lock()
	defer e.mux.Unlock()
	if len(e.Errors) == 0 {
		return ""
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	builder := strings.Builder{}
	for i, err := range e.Errors {
		if i > 0 {
			builder.WriteByte(',')
		}
		builder.WriteString(err.Error())
	}
	return builder.String()
}

func (e *Errors) HasError() bool {
	e.mux.Lock()
	defer e.mux.Unlock()
	return len(e.Errors) > 0
}

func (e *Errors) Append(err error) {
	if err == nil {
		return
	}
	e.mux.Lock()
	defer e.mux.Unlock()
	e.Errors = append(e.Errors, err)
}
