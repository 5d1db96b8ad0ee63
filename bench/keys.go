package bench

import "fmt"

// The key layout is stable across phases so that the random read, update and
// delete phases can address records written by the sequential-write phase.
// The bulk-insert phase uses a disjoint prefix because it runs against its
// own engine instance and keyspace.

// Key returns the zero-padded key for record index i: Key(5) is
// "key_00000005".
func Key(i int) []byte {
	return []byte(fmt.Sprintf("key_%08d", i))
}

// Value returns the synthetic value written by the sequential-write phase.
func Value(i int) []byte {
	return []byte(fmt.Sprintf(
		"value_%08d_with_some_additional_data_to_make_it_realistic", i))
}

// UpdateValue returns the distinct value pattern used by the random-update
// phase.
func UpdateValue(i int) []byte {
	return []byte(fmt.Sprintf("updated_value_%08d", i))
}

// MixedValue returns the value pattern used by mixed-workload puts.
func MixedValue(i int) []byte {
	return []byte(fmt.Sprintf("mixed_value_%08d", i))
}

// BulkKey returns the key for record index i in the bulk-insert keyspace.
func BulkKey(i int) []byte {
	return []byte(fmt.Sprintf("bulk_key_%08d", i))
}

// BulkValue returns the value written by the bulk-insert phase.
func BulkValue(i int) []byte {
	return []byte(fmt.Sprintf("bulk_value_%08d", i))
}
