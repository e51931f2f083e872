package result

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/wesleyorama2/stint/phase"
)

// DefaultPrefix starts every result line.
const DefaultPrefix = "RESULT"

type pair struct {
	key   string
	value string
}

// Result collects key/value pairs and renders them as one result line.
type Result struct {
	pairs []pair
}

// New creates an empty result.
func New() *Result {
	return &Result{}
}

// Add records a key/value pair. Booleans render as true/false,
// integers in decimal, floats in their shortest round-trip form
// (3.125 stays 3.125), strings verbatim. Any other value is rendered
// as its JSON encoding.
func (r *Result) Add(key string, value any) {
	r.pairs = append(r.pairs, pair{key: key, value: formatValue(value)})
}

// AddDocument flattens a phase document into pairs. The metrics and
// data objects are unfolded with dot-joined keys; each child document
// is namespaced by its name and flattened recursively. The document's
// own name contributes no pair, matching its role as the line's
// implicit subject.
func (r *Result) AddDocument(doc phase.Document) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return
	}
	r.addScope("", gjson.ParseBytes(raw))
}

func (r *Result) addScope(prefix string, doc gjson.Result) {
	if metrics := doc.Get("metrics"); metrics.Exists() {
		r.addTree(joinKey(prefix, "metrics"), metrics)
	}
	if data := doc.Get("data"); data.Exists() {
		r.addTree(joinKey(prefix, "data"), data)
	}
	doc.Get("children").ForEach(func(_, child gjson.Result) bool {
		r.addScope(joinKey(prefix, child.Get("name").String()), child)
		return true
	})
}

func (r *Result) addTree(prefix string, value gjson.Result) {
	if value.IsObject() || value.IsArray() {
		value.ForEach(func(key, child gjson.Result) bool {
			r.addTree(joinKey(prefix, key.String()), child)
			return true
		})
		return
	}
	v := value.Raw
	if value.Type == gjson.String {
		v = value.String()
	}
	r.pairs = append(r.pairs, pair{key: prefix, value: v})
}

// Sort orders the stored pairs by key. Pairs with equal keys keep
// their insertion order.
func (r *Result) Sort() {
	sort.SliceStable(r.pairs, func(i, j int) bool {
		return r.pairs[i].key < r.pairs[j].key
	})
}

// Line renders the pairs behind the given prefix, without a trailing
// newline.
func (r *Result) Line(prefix string) string {
	var sb strings.Builder
	sb.WriteString(prefix)
	for _, p := range r.pairs {
		sb.WriteByte(' ')
		sb.WriteString(p.key)
		sb.WriteByte('=')
		sb.WriteString(p.value)
	}
	return sb.String()
}

// String renders the pairs behind the default RESULT prefix.
func (r *Result) String() string {
	return r.Line(DefaultPrefix)
}

// Fprint writes the result line to w, followed by a newline.
func (r *Result) Fprint(w io.Writer) error {
	_, err := fmt.Fprintln(w, r.String())
	return err
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func formatValue(value any) string {
	switch v := value.(type) {
	case bool:
		return strconv.FormatBool(v)
	case string:
		return v
	case int:
		return strconv.FormatInt(int64(v), 10)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(raw)
	}
}
