package metrics

import (
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
)

func TestConfig(t *testing.T) {
	tests := map[string]struct {
		raw  string
		want Config
	}{
		"empty": {
			raw:  "{}",
			want: DefaultConfig,
		},
		"partial": {
			raw:  "goCollectors: true",
			want: Config{Log: true, Namespace: "rtquery", GoCollectors: true},
		},
		"populated": {
			raw:  "log: false\nnamespace: node\ngoCollectors: true",
			want: Config{Log: false, Namespace: "node", GoCollectors: true},
		},
	}

	for name, test := range tests {
		var got Config
		if err := yaml.Unmarshal([]byte(test.raw), &got); err != nil {
			t.Fatalf("%s: error parsing: %v", name, err)
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("%s: configuration mismatch (-want +got):\n%s", name, diff)
		}
	}
}
