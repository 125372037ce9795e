package homepage

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Devon-White/sitemap-harvester/internal/fetcher"
	"github.com/Devon-White/sitemap-harvester/internal/report"
	"github.com/Devon-White/sitemap-harvester/internal/testutil"
)

func newLocator(mock *testutil.MockTransport) *Locator {
	return NewLocator(fetcher.New("test-agent", time.Second, mock), report.Discard())
}

func TestLocateHTTPSRedirect(t *testing.T) {
	mock := testutil.NewMockTransport()
	mock.RegisterRedirect("https://example.test", http.StatusMovedPermanently, "https://www.example.test/")

	home, err := newLocator(mock).Locate(context.Background(), "example.test")
	require.NoError(t, err)
	assert.Equal(t, "https://www.example.test/", home)
	assert.Equal(t, []string{"https://example.test"}, mock.Requests())
}

func TestLocateFallsBackToHTTP(t *testing.T) {
	mock := testutil.NewMockTransport()
	mock.RegisterStatus("https://x.com", http.StatusOK)
	mock.RegisterRedirect("http://x.com", http.StatusMovedPermanently, "http://x.com/home")

	home, err := newLocator(mock).Locate(context.Background(), "x.com")
	require.NoError(t, err)
	assert.Equal(t, "http://x.com/home", home)
	assert.Equal(t, []string{"https://x.com", "http://x.com"}, mock.Requests())
}

func TestLocateRelativeLocation(t *testing.T) {
	mock := testutil.NewMockTransport()
	mock.RegisterRedirect("https://x.com", http.StatusFound, "/home")

	home, err := newLocator(mock).Locate(context.Background(), "x.com")
	require.NoError(t, err)
	assert.Equal(t, "https://x.com/home", home)
}

func TestLocateSingleHop(t *testing.T) {
	mock := testutil.NewMockTransport()
	mock.RegisterRedirect("https://x.com", http.StatusMovedPermanently, "https://www.x.com/")
	mock.RegisterRedirect("https://www.x.com/", http.StatusMovedPermanently, "https://www.x.com/en/")

	home, err := newLocator(mock).Locate(context.Background(), "x.com")
	require.NoError(t, err)
	assert.Equal(t, "https://www.x.com/", home)
	assert.Equal(t, 0, mock.Count("https://www.x.com/"))
}

func TestLocateNotFound(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *testutil.MockTransport)
	}{
		{"both serve content directly", func(m *testutil.MockTransport) {
			m.RegisterStatus("https://x.com", http.StatusOK)
			m.RegisterStatus("http://x.com", http.StatusOK)
		}},
		{"redirect without location", func(m *testutil.MockTransport) {
			m.RegisterStatus("https://x.com", http.StatusMovedPermanently)
			m.RegisterStatus("http://x.com", http.StatusFound)
		}},
		{"unresolvable host", func(m *testutil.MockTransport) {
			dnsErr := &net.DNSError{Err: "no such host", Name: "x.com", IsNotFound: true}
			m.RegisterError("https://x.com", dnsErr)
			m.RegisterError("http://x.com", dnsErr)
		}},
		{"connection refused then 404", func(m *testutil.MockTransport) {
			m.RegisterError("https://x.com", errors.New("connection refused"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testutil.NewMockTransport()
			tt.setup(mock)

			_, err := newLocator(mock).Locate(context.Background(), "x.com")
			assert.ErrorIs(t, err, ErrNotFound)
			assert.Equal(t, []string{"https://x.com", "http://x.com"}, mock.Requests())
		})
	}
}

func TestLocateAcceptDirect(t *testing.T) {
	mock := testutil.NewMockTransport()
	mock.RegisterStatus("https://x.com", http.StatusOK)

	l := newLocator(mock)
	l.AcceptDirect = true

	home, err := l.Locate(context.Background(), "x.com")
	require.NoError(t, err)
	assert.Equal(t, "https://x.com/", home)
}

func TestLocateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := testutil.NewMockTransport()
	_, err := newLocator(mock).Locate(ctx, "x.com")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, mock.Requests())
}
