package bench

import (
	"strings"
	"testing"
)

func TestKeyFormat(t *testing.T) {
	tests := []struct {
		i    int
		want string
	}{
		{0, "key_00000000"},
		{5, "key_00000005"},
		{42, "key_00000042"},
		{999999, "key_00999999"},
		{99999999, "key_99999999"},
	}

	for _, tt := range tests {
		if got := string(Key(tt.i)); got != tt.want {
			t.Errorf("Key(%d) = %q, want %q", tt.i, got, tt.want)
		}
	}
}

func TestValuePatternsEmbedIndex(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"value", string(Value(5)),
			"value_00000005_with_some_additional_data_to_make_it_realistic"},
		{"update", string(UpdateValue(5)), "updated_value_00000005"},
		{"mixed", string(MixedValue(5)), "mixed_value_00000005"},
		{"bulk", string(BulkValue(5)), "bulk_value_00000005"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s value = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

// The bulk-insert keyspace must be disjoint from the main keyspace: the two
// phases run against independent engine instances and must never collide
// even if pointed at the same path by mistake.
func TestBulkKeyPrefixDisjoint(t *testing.T) {
	if got := string(BulkKey(5)); got != "bulk_key_00000005" {
		t.Errorf("BulkKey(5) = %q", got)
	}

	if strings.HasPrefix(string(BulkKey(1)), string(Key(1))[:4]) {
		t.Error("bulk keys must not share the main key prefix")
	}
}
