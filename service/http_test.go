package service

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	// for debug
	log.SetFlags(log.Llongfile | log.Ltime | log.Lmicroseconds)
}

func TestHTTP(t *testing.T) {

	h, p := tempAddress(t)
	address := net.JoinHostPort(h, p)

	core, logs := observer.New(zapcore.InfoLevel)

	svc := NewHTTP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), time.Second)
	svc.SetLogger(zap.New(core))

	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		require.Equal(t, http.ErrServerClosed, svc.ListenAndServeAddr(address))
	}()

	waitReady(t, svc)

	res, err := http.Get("http://" + address)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, res.Body.Close())

	require.Equal(t, address, svc.GetAddr())
	require.NoError(t, svc.Close())
	wg.Wait()

	require.False(t, svc.Ready())

	_, err = net.DialTimeout("tcp", address, time.Second)
	require.Error(t, err)

	require.Equal(t,
		[]string{"started", "stopping", "stopped"},
		messages(logs))
}

func TestHTTPAnyPort(t *testing.T) {

	svc := NewHTTP(http.NotFoundHandler(), time.Second)

	chErr := make(chan error, 1)
	go func() {
		chErr <- svc.ListenAndServeAddr("127.0.0.1:0")
	}()

	waitReady(t, svc)

	_, port, err := net.SplitHostPort(svc.GetAddr())
	require.NoError(t, err)
	require.NotEqual(t, "0", port)

	require.NoError(t, svc.Close())
	require.Equal(t, http.ErrServerClosed, <-chErr)
}

func TestHTTPListenError(t *testing.T) {

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	svc := NewHTTP(http.NotFoundHandler(), time.Second)

	err = svc.ListenAndServeAddr(l.Addr().String())
	require.Error(t, err)
	require.Contains(t, err.Error(), "new http listener")
	require.False(t, svc.Ready())
}

func TestHTTPServe(t *testing.T) {

	var hookCalls int32

	svc := NewHTTP(http.NotFoundHandler(), time.Second)
	svc.SetAddr("127.0.0.1:0")
	svc.OnClose(func() {
		atomic.AddInt32(&hookCalls, 1)
	})

	ctx, cancel := context.WithCancel(context.Background())

	chErr := make(chan error, 1)
	go func() {
		chErr <- svc.Serve(ctx)
	}()

	waitReady(t, svc)
	cancel()

	select {
	case err := <-chErr:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("service did not stop")
	}

	require.Equal(t, int32(1), atomic.LoadInt32(&hookCalls))
}

func waitReady(t *testing.T, svc *HTTP) {
	t.Helper()

	require.Eventually(t, svc.Ready, 5*time.Second, time.Millisecond,
		fmt.Sprintf("service %s is not ready", svc.GetAddr()))
}

func messages(logs *observer.ObservedLogs) []string {

	retval := make([]string, 0, logs.Len())
	for _, entry := range logs.All() {
		retval = append(retval, entry.Message)
	}

	return retval
}

func tempAddress(t *testing.T) (host, port string) {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	host, port, err = net.SplitHostPort(l.Addr().String())
	require.NoError(t, err)
	return
}
