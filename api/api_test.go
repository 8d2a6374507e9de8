package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/scitags/rtquery/rtnl"
	"github.com/scitags/rtquery/types"
)

type fakeQuerier struct {
	err error

	families []types.Family
}

func (q *fakeQuerier) Interfaces() (*types.Set[types.InterfaceRecord], error) {
	if q.err != nil {
		return nil, q.err
	}
	s := types.NewSet[types.InterfaceRecord]()
	s.Insert(types.InterfaceRecord{Index: 1, Name: "lo", Address: types.Some("00:00:00:00:00:00")})
	s.Insert(types.InterfaceRecord{Index: 2, Name: "eth0", Address: types.Some("52:54:00:ab:cd:ef"), Broadcast: types.Some("ff:ff:ff:ff:ff:ff")})
	s.Insert(types.InterfaceRecord{Index: 9, Name: ""})
	return s, nil
}

func (q *fakeQuerier) Addresses(family types.Family) (*types.Set[types.AddressRecord], error) {
	q.families = append(q.families, family)
	if q.err != nil {
		return nil, q.err
	}
	s := types.NewSet[types.AddressRecord]()
	switch family {
	case types.V4:
		s.Insert(types.AddressRecord{Family: types.V4, Index: 2, Name: "eth0", PrefixLength: 24,
			Address: types.Some("10.0.0.1"), Local: types.Some("10.0.0.1"), Broadcast: types.Some("10.0.0.255")})
	case types.V6:
		s.Insert(types.AddressRecord{Family: types.V6, Index: 2, Name: "eth0", PrefixLength: 64, Scope: 253,
			Address: types.Some("fe80::5054:ff:feab:cdef")})
	}
	return s, nil
}

func (q *fakeQuerier) Routes(family types.Family) (*types.Set[types.RouteRecord], error) {
	q.families = append(q.families, family)
	if q.err != nil {
		return nil, q.err
	}
	s := types.NewSet[types.RouteRecord]()
	s.Insert(types.RouteRecord{Family: family, Gateway: types.Some("10.0.0.254"),
		OutputInterface: types.Some(types.Link{Index: 2, Name: "eth0"}), Priority: types.Some(uint32(100)), Table: 254})
	s.Insert(types.RouteRecord{Family: family, Destination: types.Some("10.0.0.0"), DestinationLength: 24, Table: 254})
	return s, nil
}

func newTestServer(q Querier, metrics http.Handler) *Server {
	conf := DefaultConfig
	conf.Log = false
	return New(&conf, q, metrics)
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestResponsesValidate(t *testing.T) {
	c := jsonschema.NewCompiler()

	schemas := map[string]*jsonschema.Schema{}
	for _, name := range []string{"interfaces", "addresses", "routes"} {
		sch, err := c.Compile("testdata/" + name + ".schema.json")
		if err != nil {
			t.Fatalf("error compiling the %s schema: %v", name, err)
		}
		schemas[name] = sch
	}

	tests := map[string]string{
		"/interfaces":          "interfaces",
		"/addresses?family=4":  "addresses",
		"/addresses?family=v6": "addresses",
		"/routes?family=ipv4":  "routes",
		"/routes?family=6":     "routes",
	}

	s := newTestServer(&fakeQuerier{}, nil)
	for target, schema := range tests {
		rec := get(t, s, target)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: got status %d; want %d", target, rec.Code, http.StatusOK)
			continue
		}

		inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(rec.Body.Bytes()))
		if err != nil {
			t.Errorf("%s: error unmarshalling the payload: %v", target, err)
			continue
		}

		if err := schemas[schema].Validate(inst); err != nil {
			t.Errorf("%s: error validating the payload: %v", target, err)
		}
	}
}

func TestAbsentFieldsAreNull(t *testing.T) {
	s := newTestServer(&fakeQuerier{}, nil)

	rec := get(t, s, "/routes?family=4")

	var routes []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &routes); err != nil {
		t.Fatalf("error unmarshalling the payload: %v", err)
	}

	if len(routes) != 2 {
		t.Fatalf("got %d routes; want 2", len(routes))
	}
	if routes[0]["destination"] != nil || routes[0]["gateway"] != "10.0.0.254" {
		t.Errorf("got default route %v", routes[0])
	}
	if routes[1]["outputInterface"] != nil || routes[1]["destination"] != "10.0.0.0" {
		t.Errorf("got network route %v", routes[1])
	}
}

func TestFamilyParameter(t *testing.T) {
	q := &fakeQuerier{}
	s := newTestServer(q, nil)

	for _, target := range []string{"/addresses", "/routes?family=5", "/routes?family=inet"} {
		if rec := get(t, s, target); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: got status %d; want %d", target, rec.Code, http.StatusBadRequest)
		}
	}
	if len(q.families) != 0 {
		t.Errorf("bad requests reached the querier: %v", q.families)
	}

	get(t, s, "/addresses?family=V6")
	get(t, s, "/routes?family=4")
	if len(q.families) != 2 || q.families[0] != types.V6 || q.families[1] != types.V4 {
		t.Errorf("got families %v; want [v6 v4]", q.families)
	}
}

func TestQueryErrors(t *testing.T) {
	tests := map[string]struct {
		err  error
		want int
	}{
		"dump": {
			err:  &rtnl.DumpError{Kind: rtnl.Interfaces, Op: rtnl.OpReceive, Err: errors.New("recvmsg: no buffer space available")},
			want: http.StatusServiceUnavailable,
		},
		"contract": {
			err:  &rtnl.ContractError{Kind: rtnl.Interfaces, Err: rtnl.ErrMalformedMessage},
			want: http.StatusInternalServerError,
		},
	}

	for name, test := range tests {
		s := newTestServer(&fakeQuerier{err: test.err}, nil)

		rec := get(t, s, "/interfaces")
		if rec.Code != test.want {
			t.Errorf("%s: got status %d; want %d", name, rec.Code, test.want)
		}

		var body errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Errorf("%s: error unmarshalling the payload: %v", name, err)
		}
		if body.Error != test.err.Error() {
			t.Errorf("%s: got error %q; want %q", name, body.Error, test.err.Error())
		}
	}
}

func TestMetricsRoute(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("rtquery_dumps_total 0\n"))
	})

	s := newTestServer(&fakeQuerier{}, metrics)
	if rec := get(t, s, "/metrics"); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "rtquery_dumps_total") {
		t.Errorf("got %d: %s", rec.Code, rec.Body.String())
	}

	s = newTestServer(&fakeQuerier{}, nil)
	if rec := get(t, s, "/metrics"); rec.Code != http.StatusNotFound {
		t.Errorf("got status %d without a metrics handler; want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRoot(t *testing.T) {
	s := newTestServer(&fakeQuerier{}, nil)

	var body rootResponse
	if err := json.Unmarshal(get(t, s, "/").Body.Bytes(), &body); err != nil {
		t.Fatalf("error unmarshalling the payload: %v", err)
	}

	paths := map[string]bool{}
	for _, r := range body.ApiRoutes {
		paths[r.Path] = true
	}
	for _, p := range []string{"/", "/interfaces", "/addresses", "/routes"} {
		if !paths[p] {
			t.Errorf("route %q not listed in %v", p, paths)
		}
	}
}

func TestRunReportsBindFailure(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("error reserving a port: %v", err)
	}
	defer l.Close()

	conf := DefaultConfig
	conf.Log = false
	conf.BindPort = uint16(l.Addr().(*net.TCPAddr).Port)
	s := New(&conf, &fakeQuerier{}, nil)

	done := make(chan struct{})
	defer close(done)

	errs := make(chan error, 1)
	go func() { errs <- s.Run(done) }()

	select {
	case err := <-errs:
		if err == nil {
			t.Errorf("got a clean exit on an occupied port")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run kept waiting after the listener failed")
	}
}
