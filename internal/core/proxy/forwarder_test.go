package proxy

import (
	"bufio"
	"context"
	"encoding/base64"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startUpstream runs a minimal CONNECT-only proxy that requires basic auth.
func startUpstream(t *testing.T, user, pass string) (string, *atomic.Int32) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	want := "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
	var tunnels atomic.Int32

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				br := bufio.NewReader(conn)
				req, err := http.ReadRequest(br)
				if err != nil {
					return
				}
				if req.Method != http.MethodConnect || req.Header.Get("Proxy-Authorization") != want {
					_, _ = io.WriteString(conn, "HTTP/1.1 407 Proxy Authentication Required\r\n\r\n")
					return
				}

				target, err := net.Dial("tcp", req.Host)
				if err != nil {
					_, _ = io.WriteString(conn, "HTTP/1.1 502 Bad Gateway\r\n\r\n")
					return
				}
				defer target.Close()

				tunnels.Add(1)
				_, _ = io.WriteString(conn, "HTTP/1.1 200 Connection established\r\n\r\n")
				go func() { _, _ = io.Copy(target, br) }()
				_, _ = io.Copy(conn, target)
			}(conn)
		}
	}()

	return ln.Addr().String(), &tunnels
}

func clientVia(t *testing.T, proxyAddr string) *http.Client {
	t.Helper()
	u, err := url.Parse(proxyAddr)
	require.NoError(t, err)
	return &http.Client{
		Transport: &http.Transport{Proxy: http.ProxyURL(u)},
		Timeout:   5 * time.Second,
	}
}

func TestNewForwardingProxy_InvalidURL(t *testing.T) {
	_, err := NewForwardingProxy("://bad")
	assert.Error(t, err)

	_, err = NewForwardingProxy("just-a-path")
	assert.Error(t, err)
}

func TestForwardingProxy_Allowed(t *testing.T) {
	fp, err := NewForwardingProxy("http://u:p@proxy.local:3128", "images.unsplash.com", " IMG.clerk.com ")
	require.NoError(t, err)

	assert.True(t, fp.Allowed("images.unsplash.com"))
	assert.True(t, fp.Allowed("images.unsplash.com:443"))
	assert.True(t, fp.Allowed("cdn.images.unsplash.com"))
	assert.True(t, fp.Allowed("img.clerk.com"))
	assert.False(t, fp.Allowed("evil-images.unsplash.com.attacker.test"))
	assert.False(t, fp.Allowed("unsplash.com"))

	open, err := NewForwardingProxy("http://proxy.local:3128")
	require.NoError(t, err)
	assert.True(t, open.Allowed("anything.test"))
}

func TestForwardingProxy_ForwardsThroughUpstream(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "hero")
	}))
	defer target.Close()

	upstream, tunnels := startUpstream(t, "user", "secret")

	fp, err := NewForwardingProxy("http://user:secret@"+upstream, "127.0.0.1")
	require.NoError(t, err)

	addr, err := fp.Start(context.Background())
	require.NoError(t, err)
	defer fp.Stop()
	assert.True(t, fp.IsRunning())

	again, err := fp.Start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, addr, again)

	resp, err := clientVia(t, addr).Get(target.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "hero", string(body))
	assert.GreaterOrEqual(t, tunnels.Load(), int32(1))
}

func TestForwardingProxy_RefusesOtherHosts(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "should not be reached")
	}))
	defer target.Close()

	upstream, tunnels := startUpstream(t, "user", "secret")

	fp, err := NewForwardingProxy("http://user:secret@"+upstream, "images.unsplash.com")
	require.NoError(t, err)

	addr, err := fp.Start(context.Background())
	require.NoError(t, err)
	defer fp.Stop()

	resp, err := clientVia(t, addr).Get(target.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, int32(0), tunnels.Load())
}

func TestForwardingProxy_StopsWithContext(t *testing.T) {
	upstream, _ := startUpstream(t, "user", "secret")

	fp, err := NewForwardingProxy("http://user:secret@" + upstream)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	_, err = fp.Start(ctx)
	require.NoError(t, err)

	cancel()
	require.Eventually(t, func() bool { return !fp.IsRunning() }, time.Second, 10*time.Millisecond)
	assert.NoError(t, fp.Stop())
}

func TestForwardingProxy_StopBeforeContextEnds(t *testing.T) {
	upstream, _ := startUpstream(t, "user", "secret")

	fp, err := NewForwardingProxy("http://user:secret@" + upstream)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err = fp.Start(ctx)
	require.NoError(t, err)
	stopped := fp.stopped

	require.NoError(t, fp.Stop())
	assert.False(t, fp.IsRunning())

	select {
	case <-stopped:
	default:
		t.Fatal("watcher was not released")
	}

	// A second Stop and the context ending afterwards are both no-ops.
	assert.NoError(t, fp.Stop())
	cancel()

	// The proxy can be started again with a fresh watcher.
	_, err = fp.Start(context.Background())
	require.NoError(t, err)
	assert.True(t, fp.IsRunning())
	assert.NotEqual(t, stopped, fp.stopped)
	require.NoError(t, fp.Stop())
}
