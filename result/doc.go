// Package result formats measurements as sortable key=value lines.
//
// A Result collects key/value pairs, either added directly or
// flattened out of a phase document, and prints them as a single line
// beginning with RESULT, the format consumed by line-oriented plotting
// tools:
//
//	r := result.New()
//	r.Add("algorithm", "test")
//	r.Add("time", 3.142)
//	r.Add("memory", 1337)
//	r.Sort()
//	fmt.Println(r.String())
//	// RESULT algorithm=test memory=1337 time=3.142
//
// AddDocument unfolds a document's metrics and data objects and
// recurses into children, joining nested keys with dots:
//
//	r.AddDocument(p.GatherData())
//	// RESULT data.sum=-497952 metrics.memory.peak=1000000 metrics.time=10.44 ...
//
// Values are not escaped; keys or string values containing spaces,
// '=' or newlines will break the line format.
package result
