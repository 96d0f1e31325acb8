package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/Zereker/rosapi"
)

// device emulates a small subset of a RouterOS API endpoint.
type device struct {
	identity string
	username string
	password string

	sync.RWMutex
	addresses []string
}

func (d *device) ServeSentence(ctx context.Context, sentence []string) ([][]string, error) {
	attrs := attributes(sentence[1:])

	switch sentence[0] {
	case "/login":
		if attrs["name"] != d.username || attrs["password"] != d.password {
			return [][]string{
				{rosapi.ReplyTrap, "=message=invalid user name or password (6)"},
				{rosapi.ReplyDone},
			}, nil
		}
		return [][]string{{rosapi.ReplyDone}}, nil

	case "/system/identity/print":
		return [][]string{
			{rosapi.ReplyData, "=name=" + d.identity},
			{rosapi.ReplyDone},
		}, nil

	case "/ip/address/add":
		d.Lock()
		d.addresses = append(d.addresses, attrs["address"])
		d.Unlock()
		return [][]string{{rosapi.ReplyDone, "=ret=*" + attrs["address"]}}, nil

	case "/ip/address/print":
		d.RLock()
		defer d.RUnlock()
		replies := make([][]string, 0, len(d.addresses)+1)
		for _, addr := range d.addresses {
			replies = append(replies, []string{rosapi.ReplyData, "=address=" + addr})
		}
		return append(replies, []string{rosapi.ReplyDone}), nil

	case "/quit":
		return [][]string{{rosapi.ReplyFatal, "session terminated on request"}}, nil
	}

	return [][]string{
		{rosapi.ReplyTrap, "=category=0", "=message=no such command"},
		{rosapi.ReplyDone},
	}, nil
}

// attributes collects =key=value words.
func attributes(words []string) map[string]string {
	attrs := make(map[string]string, len(words))
	for _, word := range words {
		if !strings.HasPrefix(word, "=") {
			continue
		}
		key, value, _ := strings.Cut(word[1:], "=")
		attrs[key] = value
	}
	return attrs
}

func main() {
	addr, err := net.ResolveTCPAddr("tcp", "127.0.0.1:"+rosapi.DefaultPort)
	if err != nil {
		panic(err)
	}

	server, err := rosapi.NewServer(addr, rosapi.ServerConnOption(rosapi.EncodingOption(rosapi.UTF8)))
	if err != nil {
		slog.Error("failed to create server", "error", err)
		return
	}

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		slog.Info("shutting down device...")
		cancel()
	}()

	handler := &device{identity: "MikroTik", username: "admin", password: ""}
	if err := server.Serve(ctx, handler); err != nil && ctx.Err() == nil {
		slog.Error("server error", "error", err)
	}
}
