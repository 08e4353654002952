package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/evacgrid/internal/area"
	"github.com/specialistvlad/evacgrid/internal/hcl"
	"github.com/specialistvlad/evacgrid/internal/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zishang520/socket.io/v2/socket"
)

func seedPlan(t *testing.T, dests ...string) (*planner.Session, *planner.Plan) {
	t.Helper()
	s := planner.NewSession(area.Seed())
	plan, err := planner.PlanRoutes(context.Background(), s, planner.QueryCommand{Start: "RiskArea_1", Destinations: dests})
	require.NoError(t, err)
	return s, plan
}

func TestForPlan_SeedScenario(t *testing.T) {
	s, plan := seedPlan(t, "RescueCenter_1", "RescueCenter_2", "RescueCenter_3")
	req := ForPlan(s, plan)

	assert.Len(t, req.Nodes, 6, "auto-registered destinations are not drawn")
	assert.Equal(t, Node{ID: "RiskArea_1", Kind: area.RiskArea}, req.Nodes[0])
	assert.Len(t, req.Edges, len(area.SeedEdges))
	assert.Equal(t, []string{"RiskArea_1", "Route_1", "RescueCenter_1"}, req.Highlight)
}

func TestRequest_JSONContract(t *testing.T) {
	g := area.New()
	require.NoError(t, g.AddNode("A", area.RiskArea))
	require.NoError(t, g.AddNode("B", area.RescueCenter))
	require.NoError(t, g.AddEdge("A", "B", 2.5))

	raw, err := json.Marshal(NewRequest(g, nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"nodes": [{"id": "A", "kind": "risk_area"}, {"id": "B", "kind": "rescue_center"}],
		"edges": [{"from": "A", "to": "B", "weight": 2.5}],
		"highlight": []
	}`, string(raw))

	var back Request
	require.NoError(t, json.Unmarshal(raw, &back))
	rebuilt, err := back.Graph()
	require.NoError(t, err)
	assert.Equal(t, g.Edges(), rebuilt.Edges())
}

func TestConsoleSink(t *testing.T) {
	s, plan := seedPlan(t, "RescueCenter_1", "RescueCenter_3")
	var buf bytes.Buffer

	require.NoError(t, NewConsoleSink(&buf).Publish(context.Background(), plan, ForPlan(s, plan)))

	want := "Minimal Path from RiskArea_1 to RescueCenter_1: [RiskArea_1 Route_1 RescueCenter_1] (distance 15)\n" +
		"Minimal Path from RiskArea_1 to RescueCenter_3: None (unreachable)\n" +
		"Highlighted route to RescueCenter_1: [RiskArea_1 Route_1 RescueCenter_1] (by nodes)\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("console output mismatch (-want +got):\n%s", diff)
	}
}

func TestConsoleSink_NoHighlight(t *testing.T) {
	s, plan := seedPlan(t, "Nowhere")
	var buf bytes.Buffer
	require.NoError(t, NewConsoleSink(&buf).Publish(context.Background(), plan, ForPlan(s, plan)))
	assert.Contains(t, buf.String(), "Highlighted route: None")
}

func TestHCLSink_ExportCanBeReloaded(t *testing.T) {
	s, plan := seedPlan(t, "RescueCenter_2", "RescueCenter_1")
	path := filepath.Join(t.TempDir(), "out.hcl")

	require.NoError(t, NewHCLSink(path).Publish(context.Background(), plan, ForPlan(s, plan)))

	model, err := hcl.NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, model.Nodes, 6)
	assert.Len(t, model.Edges, len(area.SeedEdges))
	q, ok := model.QueryByName("exported")
	require.True(t, ok)
	assert.Equal(t, "RiskArea_1", q.Start)
	assert.Equal(t, []string{"RescueCenter_2", "RescueCenter_1"}, q.Destinations)
}

func TestHCLSink_BadPath(t *testing.T) {
	s, plan := seedPlan(t, "RescueCenter_1")
	path := filepath.Join(t.TempDir(), "missing-dir", "out.hcl")
	err := NewHCLSink(path).Publish(context.Background(), plan, ForPlan(s, plan))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hcl sink")
}

func TestSocketIOSink_InvalidURL(t *testing.T) {
	s, plan := seedPlan(t, "RescueCenter_1")
	sink := NewSocketIOSink("not-a-url", "", 0)
	assert.Equal(t, DefaultRenderEvent, sink.Event)
	assert.Equal(t, DefaultRenderTimeout, sink.Timeout)
	assert.Equal(t, DefaultRenderNamespace, sink.Namespace)

	err := sink.Publish(context.Background(), plan, ForPlan(s, plan))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must include scheme and host")
}

func TestSocketIOSink_NoServer(t *testing.T) {
	// Grab a free port and release it so nothing is listening there.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	s, plan := seedPlan(t, "RescueCenter_1")
	sink := NewSocketIOSink("http://"+addr+"/socket.io/", "draw", 500*time.Millisecond)

	start := time.Now()
	err = sink.Publish(context.Background(), plan, ForPlan(s, plan))
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

// startRenderer serves socket.io on an in-process HTTP server. Every payload
// received on event is sent to the returned channel and, when ack is true,
// answered with the ack event.
func startRenderer(t *testing.T, event string, ack bool) (string, <-chan map[string]any) {
	t.Helper()

	received := make(chan map[string]any, 1)
	io := socket.NewServer(nil, nil)
	io.On("connection", func(clients ...any) {
		client := clients[0].(*socket.Socket)
		client.On(event, func(args ...any) {
			if len(args) > 0 {
				if payload, ok := args[0].(map[string]any); ok {
					select {
					case received <- payload:
					default:
					}
				}
			}
			if ack {
				_ = client.Emit(event + "_ack")
			}
		})
	})

	mux := http.NewServeMux()
	mux.Handle("/socket.io/", io.ServeHandler(nil))
	srv := httptest.NewServer(mux)
	t.Cleanup(func() {
		io.Close(nil)
		srv.Close()
	})
	return srv.URL + "/socket.io/", received
}

func TestSocketIOSink_DeliversRequest(t *testing.T) {
	url, received := startRenderer(t, "draw", true)
	s, plan := seedPlan(t, "RescueCenter_1", "RescueCenter_2")
	req := ForPlan(s, plan)

	sink := NewSocketIOSink(url, "draw", 5*time.Second)
	require.NoError(t, sink.Publish(context.Background(), plan, req))

	var payload map[string]any
	select {
	case payload = <-received:
	case <-time.After(5 * time.Second):
		t.Fatal("renderer never received the request")
	}

	assert.Equal(t, []any{"RiskArea_1", "Route_1", "RescueCenter_1"}, payload["highlight"])
	nodes, ok := payload["nodes"].([]any)
	require.True(t, ok)
	assert.Len(t, nodes, len(area.SeedNodes))
	edges, ok := payload["edges"].([]any)
	require.True(t, ok)
	assert.Len(t, edges, len(area.SeedEdges))
	assert.Equal(t, map[string]any{"id": "RiskArea_1", "kind": "risk_area"}, nodes[0])
}

func TestSocketIOSink_EmptyNamespaceUsesRoot(t *testing.T) {
	url, received := startRenderer(t, DefaultRenderEvent, true)
	s, plan := seedPlan(t, "RescueCenter_2")

	sink := &SocketIOSink{URL: url, Event: DefaultRenderEvent, Timeout: 5 * time.Second}
	require.NoError(t, sink.Publish(context.Background(), plan, ForPlan(s, plan)))
	assert.NotNil(t, <-received)
}

func TestSocketIOSink_NoAckTimesOut(t *testing.T) {
	url, received := startRenderer(t, "draw", false)
	s, plan := seedPlan(t, "RescueCenter_1")

	sink := NewSocketIOSink(url, "draw", 500*time.Millisecond)
	err := sink.Publish(context.Background(), plan, ForPlan(s, plan))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out after connecting while waiting for event 'draw_ack'")

	select {
	case <-received:
	case <-time.After(5 * time.Second):
		t.Fatal("request was never emitted")
	}
}

type failingSink struct{ err error }

func (f failingSink) Publish(context.Context, *planner.Plan, *Request) error { return f.err }

func TestPublishAll_RunsEverySink(t *testing.T) {
	s, plan := seedPlan(t, "RescueCenter_1")
	var buf bytes.Buffer
	boom := errors.New("boom")

	err := PublishAll(context.Background(), []Sink{failingSink{err: boom}, NewConsoleSink(&buf)}, plan, ForPlan(s, plan))
	require.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), "Highlighted route to RescueCenter_1")
}
