// Package roundtrip holds the Go target's output for
// testdata/schemas/shapes.json and containers.json. Its tests run the generated serializers and
// deserializers against the compactbinary runtime.
package roundtrip
