package document

// Kind tells what a chunk payload was cut from.
type Kind string

const (
	KindText  Kind = "text"
	KindTable Kind = "table"
)

// Chunk is a bounded piece of a document carrying its header breadcrumb.
type Chunk struct {
	Index      int      // Emission order within the document, from 0
	Kind       Kind     // Prose fragment or table part
	Breadcrumb []string // Rendered header lines, e.g. ["# Report", "## Revenue"]
	Body       string   // Payload without breadcrumb or terminator
	Text       string   // Breadcrumb prefix + Body + terminator, the chunk as written to sinks
	StartLine  int      // 1-based source line where the originating prose run or table begins
}
