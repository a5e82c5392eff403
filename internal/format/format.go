package format

import (
	"regexp"
	"strings"
)

// Kind tags which variant a Response holds.
type Kind int

const (
	PlainText Kind = iota
	Segments
)

// SegmentKind tags a single rendered run.
type SegmentKind int

const (
	TextSegment SegmentKind = iota
	LinkSegment
)

// Segment is a run of text, or a hyperlink with its display text in Value.
type Segment struct {
	Kind  SegmentKind
	Value string
	Href  string
}

// Response is either plain text or an ordered list of segments.
type Response struct {
	Kind     Kind
	Text     string
	Segments []Segment
}

// Plain wraps text as a PlainText response.
func Plain(text string) Response {
	return Response{Kind: PlainText, Text: text}
}

// IsLinkified reports whether at least one link segment is present.
func (r Response) IsLinkified() bool {
	for _, s := range r.Segments {
		if s.Kind == LinkSegment {
			return true
		}
	}
	return false
}

// String returns the text as it is displayed, link segments showing their Value.
func (r Response) String() string {
	if r.Kind == PlainText {
		return r.Text
	}
	var b strings.Builder
	for _, s := range r.Segments {
		b.WriteString(s.Value)
	}
	return b.String()
}

// Prepend puts prefix in front of the response without re-running the matchers on it.
func (r Response) Prepend(prefix string) Response {
	if prefix == "" {
		return r
	}
	if r.Kind == PlainText {
		return Plain(prefix + r.Text)
	}
	segs := make([]Segment, 0, len(r.Segments)+1)
	segs = append(segs, Segment{Kind: TextSegment, Value: prefix})
	segs = append(segs, r.Segments...)
	return Response{Kind: Segments, Segments: segs}
}

// matcher is one link notation. The first matcher that finds anything in a string
// consumes the whole string.
type matcher struct {
	name string
	re   *regexp.Regexp
	link func(text string, loc []int) Segment
}

var matchers = []matcher{
	{
		name: "certification",
		re:   regexp.MustCompile(`\(Link\)\[(https?://[^\]]+)\]`),
		link: func(text string, loc []int) Segment {
			return Segment{Kind: LinkSegment, Value: "Link", Href: text[loc[2]:loc[3]]}
		},
	},
	{
		name: "social",
		re:   regexp.MustCompile(`(@[\w./-]+|/in/[\w./-]+)\s+\[(https?://[^\]]+)\]`),
		link: func(text string, loc []int) Segment {
			return Segment{Kind: LinkSegment, Value: text[loc[2]:loc[3]], Href: text[loc[4]:loc[5]]}
		},
	},
	{
		name: "url",
		re:   regexp.MustCompile(`https?://[^\s]+`),
		link: func(text string, loc []int) Segment {
			url := text[loc[0]:loc[1]]
			return Segment{Kind: LinkSegment, Value: url, Href: url}
		},
	},
}

// FormatResponse turns raw text into segments using the first link notation that
// matches anywhere in it. Only that notation is linkified; text with no link at all
// comes back as PlainText, unchanged.
func FormatResponse(text string) Response {
	for _, m := range matchers {
		locs := m.re.FindAllStringSubmatchIndex(text, -1)
		if len(locs) == 0 {
			continue
		}
		return split(text, locs, m.link)
	}
	return Plain(text)
}

func split(text string, locs [][]int, link func(string, []int) Segment) Response {
	segs := make([]Segment, 0, 2*len(locs)+1)
	last := 0
	for _, loc := range locs {
		if loc[0] > last {
			segs = append(segs, Segment{Kind: TextSegment, Value: text[last:loc[0]]})
		}
		segs = append(segs, link(text, loc))
		last = loc[1]
	}
	if last < len(text) {
		segs = append(segs, Segment{Kind: TextSegment, Value: text[last:]})
	}
	return Response{Kind: Segments, Segments: segs}
}
