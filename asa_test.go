package asa_test

import (
	"context"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	asa "github.com/lexfrei/go-asa"
	"github.com/lexfrei/go-asa/api/rest"
	"github.com/lexfrei/go-asa/internal/testutil"
	"github.com/lexfrei/go-asa/observability"
)

func newTestASA(t *testing.T, fake *testutil.FakeASA, logger observability.Logger, metrics observability.MetricsRecorder) *asa.ASA {
	t.Helper()

	device, err := asa.NewWithConfig(&rest.ClientConfig{
		Host:     fake.Host(),
		Username: "admin",
		Password: "secret",
		Logger:   logger,
		Metrics:  metrics,
	})
	require.NoError(t, err)

	return device
}

func names(objects []rest.NetworkObject) []string {
	out := make([]string, 0, len(objects))
	for _, obj := range objects {
		out = append(out, obj.Name)
	}

	return out
}

func TestFilterSinglePage(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeASA(t)
	fake.Respond(http.MethodGet, "objects/networkobjects", http.StatusOK,
		`{"items":[{"host":{"kind":"IPv4Network"},"name":"a"},{"host":{"kind":"IPv4Address"},"name":"b"}]}`)

	device := newTestASA(t, fake, nil, nil)
	ctx := context.Background()

	networks, err := device.GetNetworkObjects(ctx)
	require.NoError(t, err)
	require.Len(t, networks, 1)
	assert.JSONEq(t, `{"host":{"kind":"IPv4Network"},"name":"a"}`, string(networks[0].Raw))

	hosts, err := device.GetHostObjects(ctx)
	require.NoError(t, err)
	require.Len(t, hosts, 1)
	assert.JSONEq(t, `{"host":{"kind":"IPv4Address"},"name":"b"}`, string(hosts[0].Raw))

	ranges, err := device.GetRangeObjects(ctx)
	require.NoError(t, err)
	assert.NotNil(t, ranges)
	assert.Empty(t, ranges)
}

func TestFilterPartitionsByKind(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeASA(t)
	fake.Respond(http.MethodGet, "objects/networkobjects", http.StatusOK,
		testutil.LoadFixture(t, "networkobjects/mixed.json"))

	device := newTestASA(t, fake, nil, nil)
	ctx := context.Background()

	networks, err := device.GetNetworkObjects(ctx)
	require.NoError(t, err)
	hosts, err := device.GetHostObjects(ctx)
	require.NoError(t, err)
	ranges, err := device.GetRangeObjects(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"net-dmz"}, names(networks))
	assert.Equal(t, []string{"web-01"}, names(hosts))
	assert.Equal(t, []string{"dhcp-pool"}, names(ranges))

	// The FQDN object belongs to none of the three kinds.
	all := append(append(names(networks), names(hosts)...), names(ranges)...)
	assert.ElementsMatch(t, []string{"net-dmz", "web-01", "dhcp-pool"}, all)
	assert.NotContains(t, all, "portal")
}

func TestFilterAcrossPages(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeASA(t)
	fake.RespondPages(t, "objects/networkobjects", rest.DefaultPageLimit,
		testutil.PageBody(3, `{"host":{"kind":"IPv4Address","value":"10.0.0.1"},"name":"h1"}`),
		testutil.PageBody(3, `{"host":{"kind":"IPv4Network","value":"10.0.0.0/8"},"name":"n1"}`),
		testutil.PageBody(3, `{"host":{"kind":"IPv4Address","value":"10.0.0.2"},"name":"h2"}`),
	)

	device := newTestASA(t, fake, nil, nil)

	hosts, err := device.GetHostObjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"h1", "h2"}, names(hosts))

	requests := fake.Requests()
	require.Len(t, requests, 3)
	for _, req := range requests {
		testutil.AssertDeviceHeaders(t, req, "admin", "secret")
	}
}

func TestFilterDropsUnparseablePage(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeASA(t)
	fake.RespondPages(t, "objects/networkobjects", rest.DefaultPageLimit,
		testutil.PageBody(3, `{"host":{"kind":"IPv4Network","value":"10.1.0.0/16"},"name":"first"}`),
		`{"items":[{"host":{"kind":"IPv4Network"},"name":"good"},{"host":{"value":"1.1.1.1"},"name":"broken"}],"paging":{"pages":3}}`,
		testutil.PageBody(3, `{"host":{"kind":"IPv4Network","value":"10.3.0.0/16"},"name":"third"}`),
	)

	logger := &recordingLogger{}
	metrics := &recordingMetrics{}
	device := newTestASA(t, fake, logger, metrics)

	networks, err := device.GetNetworkObjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "third"}, names(networks), "the broken page contributes nothing")

	assert.Equal(t, []string{"failed to parse network objects page"}, logger.criticalMessages())
	assert.Empty(t, logger.errorMessages(), "parse failures are logged at critical level")
	assert.Contains(t, metrics.errorKeys(), "parse_items:MissingHostKind")
}

func TestFilterNonJSONPage(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeASA(t)
	fake.Respond(http.MethodGet, "objects/networkobjects", http.StatusUnauthorized,
		`<html><body>401 Unauthorized</body></html>`)

	logger := &recordingLogger{}
	metrics := &recordingMetrics{}
	device := newTestASA(t, fake, logger, metrics)

	hosts, err := device.GetHostObjects(context.Background())
	require.NoError(t, err, "parse failures are not surfaced")
	assert.Empty(t, hosts)

	assert.Len(t, logger.criticalMessages(), 1)
	assert.Contains(t, metrics.errorKeys(), "parse_items:NotJSONObject")
}

func TestFilterTransportError(t *testing.T) {
	t.Parallel()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	device, err := asa.NewWithConfig(&rest.ClientConfig{Host: addr, Timeout: time.Second})
	require.NoError(t, err)

	objects, err := device.GetNetworkObjects(context.Background())
	require.Error(t, err)
	assert.Nil(t, objects)
}

func TestStubsIssueNoRequests(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeASA(t)
	device := newTestASA(t, fake, nil, nil)
	ctx := context.Background()

	stubs := map[string]func() ([]*rest.Response, error){
		"GetNetworkGroupObjects": func() ([]*rest.Response, error) { return device.GetNetworkGroupObjects(ctx) },
		"GetProtocolServices":    func() ([]*rest.Response, error) { return device.GetProtocolServices(ctx) },
		"GetICMPServices":        func() ([]*rest.Response, error) { return device.GetICMPServices(ctx) },
		"GetPolicy":              func() ([]*rest.Response, error) { return device.GetPolicy(ctx, "x") },
		"GetStaticRoutes":        func() ([]*rest.Response, error) { return device.GetStaticRoutes(ctx) },
		"GetObjectNAT":           func() ([]*rest.Response, error) { return device.GetObjectNAT(ctx) },
		"GetTwiceNAT":            func() ([]*rest.Response, error) { return device.GetTwiceNAT(ctx) },
	}

	for name, call := range stubs {
		result, err := call()
		require.NoError(t, err, name)
		assert.Nil(t, result, name)
	}

	assert.Empty(t, fake.Requests())
}

func TestNewWithConfigErrors(t *testing.T) {
	t.Parallel()

	device, err := asa.NewWithConfig(nil)
	require.Error(t, err)
	assert.Nil(t, device)

	device, err = asa.NewWithConfig(&rest.ClientConfig{})
	require.Error(t, err)
	assert.ErrorIs(t, err, rest.ErrHostRequired)
	assert.Nil(t, device)
}

// MockDeviceClient is a testify mock of rest.DeviceAPIClient. Only the
// methods used by the façade are mocked; anything else panics.
type MockDeviceClient struct {
	rest.DeviceAPIClient
	mock.Mock
}

func (m *MockDeviceClient) GetNetworkObjects(ctx context.Context) ([]*rest.Response, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rest.Response), args.Error(1)
}

func TestFilterWithMockClient(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	api := &MockDeviceClient{}
	api.On("GetNetworkObjects", ctx).Return([]*rest.Response{
		{StatusCode: http.StatusOK, Body: []byte(`{"items":[{"host":{"kind":"IPv4Range","value":"10.0.0.1-10.0.0.9"},"name":"pool"}]}`)},
		nil,
		{StatusCode: http.StatusOK, Body: []byte(`{"paging":{"pages":3}}`)},
	}, nil)

	metrics := &recordingMetrics{}
	device := asa.New(api, nil, metrics)

	ranges, err := device.GetRangeObjects(ctx)
	require.NoError(t, err)
	require.Len(t, ranges, 1)
	assert.Equal(t, "pool", ranges[0].Name)
	assert.Equal(t, "10.0.0.1-10.0.0.9", ranges[0].Host.Value)

	assert.Equal(t, []string{"parse_items:NotJSONObject", "parse_items:MissingItems"}, metrics.errorKeys())
	assert.Same(t, api, device.API())
	api.AssertExpectations(t)
}

func TestFilterSkipsNilPage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	api := &MockDeviceClient{}
	api.On("GetNetworkObjects", ctx).Return([]*rest.Response{
		{StatusCode: http.StatusOK, Body: []byte(`{"items":[{"host":{"kind":"IPv4Address","value":"10.0.0.7"},"name":"h7"}]}`)},
		nil,
	}, nil)

	logger := &recordingLogger{}
	device := asa.New(api, logger, nil)

	var hosts []rest.NetworkObject
	require.NotPanics(t, func() {
		var err error
		hosts, err = device.GetHostObjects(ctx)
		require.NoError(t, err)
	})

	assert.Equal(t, []string{"h7"}, names(hosts))
	assert.Equal(t, []string{"failed to parse network objects page"}, logger.criticalMessages())
}

func TestStubsDoNotTouchClient(t *testing.T) {
	t.Parallel()

	api := &MockDeviceClient{}
	device := asa.New(api, nil, nil)

	result, err := device.GetPolicy(context.Background(), "outside")
	require.NoError(t, err)
	assert.Nil(t, result)
	api.AssertNotCalled(t, "GetNetworkObjects", mock.Anything)
}

type recordingLogger struct {
	mu       sync.Mutex
	errors   []string
	critical []string
}

func (l *recordingLogger) Debug(string, ...observability.Field) {}
func (l *recordingLogger) Info(string, ...observability.Field)  {}
func (l *recordingLogger) Warn(string, ...observability.Field)  {}

func (l *recordingLogger) Error(msg string, _ ...observability.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

func (l *recordingLogger) Critical(msg string, _ ...observability.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.critical = append(l.critical, msg)
}

//nolint:ireturn // Must satisfy observability.Logger
func (l *recordingLogger) With(...observability.Field) observability.Logger { return l }

func (l *recordingLogger) errorMessages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.errors...)
}

func (l *recordingLogger) criticalMessages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.critical...)
}

type recordingMetrics struct {
	mu     sync.Mutex
	errors []string
}

func (m *recordingMetrics) RecordHTTPRequest(string, string, int, time.Duration) {}

func (m *recordingMetrics) RecordError(operation, errorType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, operation+":"+errorType)
}

func (m *recordingMetrics) errorKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.errors...)
}
