package input

type Options struct {
	// ReadStdin takes the raw JSON body from stdin when no data item is given.
	ReadStdin bool
}

// Input is a parsed "request" command line.
type Input struct {
	Method string
	// Target is a path appended to the base URL, or an absolute URL when
	// OutURL is set.
	Target        string
	OutURL        bool
	Parameters    []Field
	Header        []Field
	Fields        []Field
	RawJSONFields []Field
	Raw           []byte // body read from stdin
}

type Field struct {
	Name   string
	Value  string
	IsFile bool
}
