// wsprobe performs a WebSocket opening handshake against a server and
// reports the result. It exits non-zero when the handshake fails.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"strings"
	"time"

	"wsgate/pkg/http"
	"wsgate/pkg/websocket"
)

// maxResponseSize bounds the handshake response head.
const maxResponseSize = 8192

func main() {
	var (
		addr    = flag.String("addr", "127.0.0.1:4485", "server address")
		target  = flag.String("target", "/", "request target")
		protos  = flag.String("protocols", "", "comma-separated subprotocols to offer")
		timeout = flag.Duration("timeout", 5*time.Second, "dial and read timeout")
		verbose = flag.Bool("v", false, "print the response headers")
	)
	flag.Parse()

	var subprotocols []string
	for _, p := range strings.Split(*protos, ",") {
		if p = strings.TrimSpace(p); p != "" {
			subprotocols = append(subprotocols, p)
		}
	}

	res, err := probe(*addr, *target, subprotocols, *timeout)
	if err != nil {
		log.Printf("Handshake with %s failed: %v", *addr, err)
		os.Exit(1)
	}

	fmt.Printf("Handshake with %s succeeded: %d %s\n", *addr, res.StatusCode, http.StatusText(res.StatusCode))
	if res.Subprotocol != "" {
		fmt.Printf("Subprotocol: %s\n", res.Subprotocol)
	}
	if *verbose {
		for name, value := range res.Header {
			fmt.Printf("  %s: %s\n", name, value)
		}
	}
}

func probe(addr, target string, subprotocols []string, timeout time.Duration) (*websocket.HandshakeResult, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(timeout))

	key, err := websocket.GenerateKey()
	if err != nil {
		return nil, err
	}
	host, _, _ := net.SplitHostPort(addr)
	if _, err := conn.Write(websocket.NewUpgradeRequest(target, host, key, subprotocols...)); err != nil {
		return nil, fmt.Errorf("write request: %w", err)
	}

	buf := make([]byte, 0, 1024)
	chunk := make([]byte, 1024)
	for len(buf) < maxResponseSize {
		n, err := conn.Read(chunk)
		buf = append(buf, chunk[:n]...)
		if n > 0 {
			res, perr := websocket.ReadHandshakeResponse(buf, key)
			if !errors.Is(perr, http.Incomplete) {
				return res, perr
			}
		}
		if err != nil {
			return nil, fmt.Errorf("read response after %d bytes: %w", len(buf), err)
		}
	}
	return nil, fmt.Errorf("response head exceeds %d bytes", maxResponseSize)
}
