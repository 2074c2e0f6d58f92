package stat

import (
	"time"

	"github.com/viant/gmetric"
	"github.com/viant/gmetric/counter"
)

const (
	ErrorKey        = "error"
	Pending         = "pending"
	Relayed         = "relayed"
	Unmatched       = "unmatched"
	UpstreamError   = "upstreamError"
	Timeout         = "timeout"
	Retry           = "retry"
	ProxyMetricName = "proxy"
)

//Values represents operation outcome values collected between begin and end
type Values struct {
	values []interface{}
}

func (v *Values) Append(item interface{}) {
	v.values = append(v.values, item)
}

func (v *Values) Values() []interface{} {
	return v.values
}

func NewValues() *Values {
	return &Values{}
}

//ProxyBegin starts proxy operation metrics collection
func ProxyBegin(operation *gmetric.Operation) (*counter.Operation, counter.OnDone, *Values) {
	startTime := time.Now()
	onDone := operation.Begin(startTime)
	values := NewValues()
	operation.IncrementValue(Pending)
	recentCounter := operation.Recent[operation.Index(startTime)]
	recentCounter.IncrementValue(Pending)
	return recentCounter, onDone, values
}

//ProxyEnd finishes proxy operation metrics collection
func ProxyEnd(operation *gmetric.Operation, recentCounter *counter.Operation, onDone counter.OnDone, values *Values) {
	operation.DecrementValue(Pending)
	recentCounter.DecrementValue(Pending)
	onDone(time.Now(), values.Values()...)
}

type proxy struct{}

func (p proxy) Keys() []string {
	return []string{
		ErrorKey,
		Pending,
		Relayed,
		Unmatched,
		UpstreamError,
		Timeout,
		Retry,
	}
}

func (p proxy) Map(value interface{}) int {
	if value == nil {
		return -1
	}
	if _, ok := value.(error); ok {
		return 0
	}
	switch value {
	case ErrorKey:
		return 0
	case Pending:
		return 1
	case Relayed:
		return 2
	case Unmatched:
		return 3
	case UpstreamError:
		return 4
	case Timeout:
		return 5
	case Retry:
		return 6
	}
	return -1
}

//NewProxy returns a proxy operation counter provider
func NewProxy() counter.Provider {
	return &proxy{}
}
