package editor

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var markTags = map[MarkKind]string{
	MarkBold:      "strong",
	MarkItalic:    "em",
	MarkUnderline: "u",
	MarkHighlight: "mark",
}

var tagMarks = map[atom.Atom]MarkKind{
	atom.Strong: MarkBold,
	atom.B:      MarkBold,
	atom.Em:     MarkItalic,
	atom.I:      MarkItalic,
	atom.U:      MarkUnderline,
	atom.Mark:   MarkHighlight,
}

var blockTags = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Li: true, atom.Ul: true, atom.Ol: true,
	atom.Blockquote: true, atom.Pre: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
}

// RenderHTML renders plain text and marks as one <p> per line.
func RenderHTML(content string, marks []Mark) string {
	if content == "" {
		return ""
	}
	runes := []rune(content)
	marks = normalizeMarks(marks, len(runes))

	var b strings.Builder
	start := 0
	for i := 0; i <= len(runes); i++ {
		if i < len(runes) && runes[i] != '\n' {
			continue
		}
		b.WriteString("<p>")
		renderLine(&b, runes, marks, start, i)
		b.WriteString("</p>")
		start = i + 1
	}
	return b.String()
}

func renderLine(b *strings.Builder, runes []rune, marks []Mark, from, to int) {
	cuts := []int{from, to}
	for _, m := range marks {
		if m.From > from && m.From < to {
			cuts = append(cuts, m.From)
		}
		if m.To > from && m.To < to {
			cuts = append(cuts, m.To)
		}
	}
	slices.Sort(cuts)
	cuts = slices.Compact(cuts)

	for i := 0; i+1 < len(cuts); i++ {
		a, z := cuts[i], cuts[i+1]
		var open []string
		for _, kind := range markKinds {
			if covered(marks, kind, a, z) {
				open = append(open, markTags[kind])
			}
		}
		for _, tag := range open {
			b.WriteString("<" + tag + ">")
		}
		b.WriteString(html.EscapeString(string(runes[a:z])))
		for j := len(open) - 1; j >= 0; j-- {
			b.WriteString("</" + open[j] + ">")
		}
	}
}

func covered(marks []Mark, kind MarkKind, from, to int) bool {
	for _, m := range marks {
		if m.Kind == kind && m.From <= from && to <= m.To {
			return true
		}
	}
	return false
}

// ParseHTML turns editor HTML back into plain text and marks. Block elements
// become lines; unknown inline elements keep their text and drop formatting.
func ParseHTML(src string) (string, []Mark, error) {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return "", nil, fmt.Errorf("parse html: %w", err)
	}
	body := findElement(root, atom.Body)
	if body == nil {
		return "", nil, nil
	}

	p := &htmlParser{}
	p.blocks(body)
	return string(p.text), normalizeMarks(p.marks, len(p.text)), nil
}

type htmlParser struct {
	text    []rune
	marks   []Mark
	started bool
}

func (p *htmlParser) blocks(parent *html.Node) {
	var inline []*html.Node
	flush := func() {
		for len(inline) > 0 && blank(inline[:1]) {
			inline = inline[1:]
		}
		for len(inline) > 0 && blank(inline[len(inline)-1:]) {
			inline = inline[:len(inline)-1]
		}
		if len(inline) > 0 {
			p.paragraph(inline)
		}
		inline = nil
	}

	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || !blockTags[c.DataAtom] {
			inline = append(inline, c)
			continue
		}
		flush()
		if hasBlockChild(c) {
			p.blocks(c)
			continue
		}
		var children []*html.Node
		for n := c.FirstChild; n != nil; n = n.NextSibling {
			children = append(children, n)
		}
		p.paragraph(children)
	}
	flush()
}

func (p *htmlParser) paragraph(nodes []*html.Node) {
	if p.started {
		p.text = append(p.text, '\n')
	}
	p.started = true
	for _, n := range nodes {
		p.inline(n, nil)
	}
}

func (p *htmlParser) inline(n *html.Node, active []MarkKind) {
	switch n.Type {
	case html.TextNode:
		start := len(p.text)
		p.text = append(p.text, []rune(n.Data)...)
		for _, kind := range active {
			p.marks = append(p.marks, Mark{Kind: kind, From: start, To: len(p.text)})
		}
	case html.ElementNode:
		if n.DataAtom == atom.Br {
			p.text = append(p.text, '\n')
			return
		}
		if kind, ok := tagMarks[n.DataAtom]; ok && !slices.Contains(active, kind) {
			active = append(slices.Clone(active), kind)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			p.inline(c, active)
		}
	}
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func hasBlockChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && blockTags[c.DataAtom] {
			return true
		}
	}
	return false
}

func blank(nodes []*html.Node) bool {
	for _, n := range nodes {
		switch {
		case n.Type == html.CommentNode:
		case n.Type == html.TextNode && strings.TrimSpace(n.Data) == "":
		default:
			return false
		}
	}
	return true
}
