// Package errpath provides visitor driven decoding with error paths. It
// defines a generic data model of [Deserializer] backends and [Visitor]
// consumers, plus a decorator layer that records where inside the input a
// decode failure happened, as a [Path] like `dependencies.serde.version`.
//
// The [NewDeserializer] decorator wraps any backend together with a
// [Track]; once decoding fails, [Track.Path] names the offending value.
// The [Decoder] type builds on this to [Unmarshal] data onto go types
// (structs, slices, maps, etc) similar to [json.Unmarshal], reporting
// failures as an [*Error] that couples the path with the cause.
//
// Two backends ship with the package: [JSONSource] and [YAMLSource].
package errpath
