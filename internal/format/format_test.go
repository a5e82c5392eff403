package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func link(value, href string) Segment {
	return Segment{Kind: LinkSegment, Value: value, Href: href}
}

func text(value string) Segment {
	return Segment{Kind: TextSegment, Value: value}
}

func TestFormatResponse_NoLinksIsIdentity(t *testing.T) {
	inputs := []string{
		"",
		"plain words",
		"Skills:\n- Go\n- Python",
		"an email like mark@example.com is not a handle",
		"(Link) without a url",
	}
	for _, in := range inputs {
		got := FormatResponse(in)
		assert.Equal(t, PlainText, got.Kind, in)
		assert.Equal(t, in, got.Text)
		assert.Nil(t, got.Segments)
	}
}

func TestFormatResponse_CertificationLink(t *testing.T) {
	got := FormatResponse("(Link)[https://x.com/a]")
	require.Equal(t, Segments, got.Kind)
	assert.Equal(t, []Segment{link("Link", "https://x.com/a")}, got.Segments)
}

func TestFormatResponse_SocialHandle(t *testing.T) {
	got := FormatResponse("@markg [https://twitter.com/markg]")
	require.Equal(t, Segments, got.Kind)
	assert.Equal(t, []Segment{link("@markg", "https://twitter.com/markg")}, got.Segments)
}

func TestFormatResponse_LinkedInPath(t *testing.T) {
	got := FormatResponse("LinkedIn: /in/mark-gatere [https://linkedin.com/in/mark-gatere]\n")
	assert.Equal(t, []Segment{
		text("LinkedIn: "),
		link("/in/mark-gatere", "https://linkedin.com/in/mark-gatere"),
		text("\n"),
	}, got.Segments)
}

func TestFormatResponse_BareURL(t *testing.T) {
	got := FormatResponse("Visit https://example.com now")
	assert.Equal(t, []Segment{
		text("Visit "),
		link("https://example.com", "https://example.com"),
		text(" now"),
	}, got.Segments)
}

func TestFormatResponse_MultipleMatchesKeepOrder(t *testing.T) {
	got := FormatResponse("a (Link)[https://a.io] b (Link)[https://b.io]")
	assert.Equal(t, []Segment{
		text("a "),
		link("Link", "https://a.io"),
		text(" b "),
		link("Link", "https://b.io"),
	}, got.Segments)
}

func TestFormatResponse_HighestPriorityNotationOnly(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Segment
	}{
		{
			name: "certification wins over bare url",
			in:   "AWS (Link)[https://aws.io/c] see https://example.com",
			want: []Segment{
				text("AWS "),
				link("Link", "https://aws.io/c"),
				text(" see https://example.com"),
			},
		},
		{
			name: "social wins over bare url",
			in:   "@mark [https://github.com/mark] and https://blog.dev",
			want: []Segment{
				link("@mark", "https://github.com/mark"),
				text(" and https://blog.dev"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatResponse(tt.in)
			assert.Equal(t, tt.want, got.Segments)
		})
	}
}

func TestFormatResponse_TruncatedNotationStaysText(t *testing.T) {
	// Mid-reveal prefixes of a certification link must not produce a link.
	full := "(Link)[https://x.com/a]"
	for i := 0; i < len(full); i++ {
		got := FormatResponse(full[:i])
		assert.Equal(t, full[:i], got.String())
		for _, s := range got.Segments {
			assert.False(t, s.Kind == LinkSegment && s.Value == "Link", full[:i])
		}
	}
	assert.True(t, FormatResponse(full).IsLinkified())
}

func TestResponse_StringAndPrepend(t *testing.T) {
	r := FormatResponse("Visit https://example.com now")
	assert.Equal(t, "Visit https://example.com now", r.String())

	framed := r.Prepend("bash: foo: command not found\n\n")
	require.Equal(t, Segments, framed.Kind)
	assert.Equal(t, text("bash: foo: command not found\n\n"), framed.Segments[0])
	assert.Len(t, framed.Segments, 4)
	assert.Len(t, r.Segments, 3)

	plain := Plain("hi").Prepend(">> ")
	assert.Equal(t, PlainText, plain.Kind)
	assert.Equal(t, ">> hi", plain.Text)

	assert.Equal(t, r, r.Prepend(""))
}
