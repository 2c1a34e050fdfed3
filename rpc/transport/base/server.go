package base

import (
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/unum-cloud/ukv-go/lib/log"
	"github.com/unum-cloud/ukv-go/rpc/common"
	"github.com/unum-cloud/ukv-go/rpc/transport"
)

var serverLog = log.New("transport/server")

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IServerConnector defines the interface for transport-specific server
// operations.
type IServerConnector interface {
	Listen(config common.ServerConfig) (net.Listener, error)
	GetName() string
	UpgradeConnection(conn net.Conn, config common.ServerConfig) error
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

const defaultMaxWorkersPerConn = 32

type serverTransport struct {
	connector         IServerConnector
	handler           transport.ServerHandleFunc
	config            common.ServerConfig
	listener          net.Listener
	bufferPool        *sync.Pool
	bufferSize        int
	maxWorkersPerConn int
}

// NewBaseServerTransport creates a new base server transport with a
// per-connection worker pool.
func NewBaseServerTransport(connector IServerConnector, bufferSize int) transport.IRPCServerTransport {
	return &serverTransport{
		connector:         connector,
		bufferSize:        bufferSize,
		maxWorkersPerConn: defaultMaxWorkersPerConn,
		bufferPool: &sync.Pool{
			New: func() interface{} { return make([]byte, bufferSize) },
		},
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCServerTransport)
// --------------------------------------------------------------------------

func (t *serverTransport) RegisterHandler(handler transport.ServerHandleFunc) {
	t.handler = handler
}

func (t *serverTransport) Listen(config common.ServerConfig) error {
	t.config = config

	listener, err := t.connector.Listen(config)
	if err != nil {
		return fmt.Errorf("failed to create listener: %v", err)
	}
	t.listener = listener

	serverLog.Infof("starting %s server on %s with %d workers per connection",
		t.connector.GetName(), config.Transport.Endpoint, t.maxWorkersPerConn)

	for {
		conn, err := listener.Accept()
		if err != nil {
			serverLog.Errorf("accept error: %v", err)
			continue
		}
		if err := t.connector.UpgradeConnection(conn, config); err != nil {
			serverLog.Warningf("failed to upgrade connection: %v", err)
		}
		go t.handleConnection(conn)
	}
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

func (t *serverTransport) handleConnection(conn net.Conn) {
	defer conn.Close()

	timeout := time.Duration(t.config.TimeoutSecond) * time.Second
	workerSemaphore := make(chan struct{}, t.maxWorkersPerConn)
	var wg sync.WaitGroup
	var connMutex sync.Mutex

	handleResponse := func(requestID uint64, data []byte) {
		defer func() {
			<-workerSemaphore
			wg.Done()
		}()

		start := time.Now()
		resp := t.handler(data)
		serverLog.Debugf("processed request %d in %s", requestID, time.Since(start))

		connMutex.Lock()
		defer connMutex.Unlock()

		if timeout > 0 {
			if err := conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
				serverLog.Errorf("failed to set write deadline: %v", err)
				return
			}
		}

		if err := writeFrame(conn, requestID, resp); err != nil {
			serverLog.Errorf("failed to write response: %v", err)
		}
	}

	handleRequest := func() error {
		if timeout > 0 {
			if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
				return fmt.Errorf("failed to set read deadline: %v", err)
			}
		}

		buf := t.bufferPool.Get().([]byte)
		requestID, data, err := readFrame(conn, buf)
		if err != nil {
			t.bufferPool.Put(buf)
			return err
		}

		workerSemaphore <- struct{}{}
		wg.Add(1)

		go func() {
			defer t.bufferPool.Put(buf)
			handleResponse(requestID, data)
		}()

		return nil
	}

	for {
		err := handleRequest()
		if err == io.EOF {
			serverLog.Infof("connection closed by client")
			break
		}
		if err != nil {
			serverLog.Errorf("error handling request: %v", err)
			break
		}
	}

	wg.Wait()
}
