// Package lacuna talks JSON-RPC 2.0 to a Lacuna Expanse game server.
package lacuna

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultServer is the public game server
const DefaultServer = "https://us1.lacunaexpanse.com"

// DefaultCallsPerMinute matches the server's RPC limit
const DefaultCallsPerMinute = 60

// Options configures a Client
type Options struct {
	Server         string
	APIKey         string
	CallsPerMinute int // <= 0 disables pacing
	HTTPClient     *http.Client
}

// Client is a JSON-RPC client bound to one server and, after Login, one session.
// It is meant for sequential use.
type Client struct {
	server     string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
	sessionID  string
}

// NewClient creates a client. Calls are paced to opts.CallsPerMinute.
func NewClient(opts Options, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	server := opts.Server
	if server == "" {
		server = DefaultServer
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}

	limit := rate.Inf
	if opts.CallsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(opts.CallsPerMinute))
	}

	return &Client{
		server:     strings.TrimRight(server, "/"),
		apiKey:     opts.APIKey,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger,
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	ID     json.RawMessage `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

// Call invokes method on the given module (e.g. "empire", "body", "spaceport")
// and decodes the result into result, which may be nil.
func (c *Client) Call(ctx context.Context, module, method string, params []any, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req := rpcRequest{
		JSONRPC: "2.0",
		ID:      uuid.NewString(),
		Method:  method,
		Params:  params,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s request: %w", module, method, err)
	}

	url := c.server + "/" + strings.TrimLeft(module, "/")
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.Debug("rpc call",
		zap.String("module", module),
		zap.String("method", method),
		zap.String("id", req.ID))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s/%s: %w", module, method, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s/%s: failed to read response: %w", module, method, err)
	}

	// The server reports RPC errors with a non-200 status and a JSON body,
	// so try to decode before looking at the status.
	var rpcResp rpcResponse
	if err := json.Unmarshal(data, &rpcResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%s/%s: unexpected status %s", module, method, resp.Status)
		}
		return fmt.Errorf("%s/%s: failed to parse response: %w", module, method, err)
	}

	if rpcResp.Error != nil {
		return rpcResp.Error
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s/%s: unexpected status %s", module, method, resp.Status)
	}

	if result == nil || len(rpcResp.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(rpcResp.Result, result); err != nil {
		return fmt.Errorf("%s/%s: failed to parse result: %w", module, method, err)
	}

	return nil
}
