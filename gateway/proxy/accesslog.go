package proxy

import (
	"time"

	"github.com/viant/afs"
	tconfig "github.com/viant/tapper/config"
	"github.com/viant/tapper/log"
	"github.com/viant/tapper/msg"
	"github.com/viant/toolbox"
)

//accessLogger logs one message per proxied request
type accessLogger struct {
	logger   *log.Logger
	provider *msg.Provider
}

func (a *accessLogger) Log(requestID, resource string, status int, elapsed time.Duration) error {
	message := a.provider.NewMessage()
	defer message.Free()
	message.PutString("RequestID", requestID)
	message.PutString("Resource", resource)
	message.PutString("Status", toolbox.AsString(status))
	message.PutString("TimeTakenMs", toolbox.AsString(int(elapsed.Milliseconds())))
	return a.logger.Log(message)
}

func (a *accessLogger) Close() error {
	return a.logger.Close()
}

func newAccessLogger(cfg *tconfig.Stream, fs afs.Service) (*accessLogger, error) {
	logger, err := log.New(cfg, "", fs)
	if err != nil {
		return nil, err
	}
	return &accessLogger{
		logger:   logger,
		provider: msg.NewProvider(2048, 32),
	}, nil
}
