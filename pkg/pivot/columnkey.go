package pivot

import "strings"

const (
	keySeparator   = "/"
	totalMarker    = "#total"
	grandTotalSlot = "[#grand-total]"
)

// fragmentEscaper backslash-escapes the characters that delimit fragments,
// so distinct dimension paths never share an id or column key.
var fragmentEscaper = strings.NewReplacer(
	`\`, `\\`,
	"[", `\[`,
	"]", `\]`,
	":", `\:`,
	"/", `\/`,
	"{", `\{`,
	"}", `\}`,
)

func groupFragment(dim, key string) string {
	return "[" + fragmentEscaper.Replace(dim) + ":" + fragmentEscaper.Replace(key) + "]"
}

func totalFragment(dim, key string) string {
	return groupFragment(dim, key) + totalMarker
}

// columnKeys tracks the column-axis path while the builder descends.
// There is one slot per column dimension plus one for the grand total.
// A slot is set before a subtree is emitted and cleared after it, so a
// key never carries fragments of a sibling branch.
type columnKeys struct {
	slots []string
}

func newColumnKeys(depth int) *columnKeys {
	return &columnKeys{slots: make([]string, depth+1)}
}

func (k *columnKeys) set(level int, fragment string) {
	k.slots[level] = fragment
}

func (k *columnKeys) clear(level int) {
	k.slots[level] = ""
}

func (k *columnKeys) grandTotal() {
	k.slots[len(k.slots)-1] = grandTotalSlot
}

func (k *columnKeys) clearGrandTotal() {
	k.clear(len(k.slots) - 1)
}

// path joins the set slots.
func (k *columnKeys) path() string {
	var b strings.Builder
	for _, s := range k.slots {
		if s == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(keySeparator)
		}
		b.WriteString(s)
	}
	return b.String()
}

// key returns the column key of measure under the current path.
func (k *columnKeys) key(measure string) string {
	m := "{" + fragmentEscaper.Replace(measure) + "}"
	if p := k.path(); p != "" {
		return p + keySeparator + m
	}
	return m
}
