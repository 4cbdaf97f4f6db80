package smtp

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gym-manager/internal/config"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// plainServer отвечает как SMTP-сервер без расширения STARTTLS.
func plainServer(t *testing.T) (host, port string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		r := bufio.NewReader(conn)
		_, _ = io.WriteString(conn, "220 localhost ESMTP\r\n")
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			switch cmd := strings.ToUpper(strings.TrimSpace(line)); {
			case strings.HasPrefix(cmd, "EHLO"):
				_, _ = io.WriteString(conn, "250-localhost\r\n250 8BITMIME\r\n")
			case strings.HasPrefix(cmd, "QUIT"):
				_, _ = io.WriteString(conn, "221 bye\r\n")
				return
			default:
				_, _ = io.WriteString(conn, "250 ok\r\n")
			}
		}
	}()

	host, port, err = net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	return host, port
}

func TestTransport_Connect(t *testing.T) {
	t.Run("сервер недоступен", func(t *testing.T) {
		tr := NewTransport(config.SMTP{SMTPHost: "127.0.0.1", SMTPPort: "1"}, newNoopLogger())
		client, err := tr.Connect()
		assert.Nil(t, client)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "smtp.Connect: dial")
	})

	t.Run("нет STARTTLS", func(t *testing.T) {
		host, port := plainServer(t)
		tr := NewTransport(config.SMTP{SMTPHost: host, SMTPPort: port}, newNoopLogger())
		client, err := tr.Connect()
		assert.Nil(t, client)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoStartTLS))
	})
}

func TestTransport_GetSMTPUser(t *testing.T) {
	tr := NewTransport(config.SMTP{SMTPUser: "gym@example.com"}, newNoopLogger())
	assert.Equal(t, "gym@example.com", tr.GetSMTPUser())
}
