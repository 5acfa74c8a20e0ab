package evm

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

type rpcRequest struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
}

// fakeRPCServer answers eth_blockNumber and eth_chainId. Every other method, and every method
// listed in failing, gets a JSON-RPC error.
type fakeRPCServer struct {
	*httptest.Server

	chainID uint64
	failing map[string]bool
	calls   atomic.Int32
}

// newFakeRPCServer returns a started fake server. It is closed when the test is done.
func newFakeRPCServer(t *testing.T, chainID uint64, failing ...string) *fakeRPCServer {
	t.Helper()

	f := &fakeRPCServer{chainID: chainID, failing: map[string]bool{}}
	for _, m := range failing {
		f.failing[m] = true
	}

	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)

		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		var result string
		switch {
		case f.failing[req.Method]:
		case req.Method == "eth_blockNumber":
			result = `"0x10"`
		case req.Method == "eth_chainId":
			result = fmt.Sprintf(`"0x%x"`, f.chainID)
		}
		if result == "" {
			_, _ = fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"error":{"code":-32000,"message":"internal error"}}`, req.ID)
			return
		}
		_, _ = fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":%s}`, req.ID, result)
	}))
	t.Cleanup(f.Close)

	return f
}

// closedServerURL returns the URL of a server that no longer accepts connections.
func closedServerURL(t *testing.T) string {
	t.Helper()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	return url
}
