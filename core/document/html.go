package document

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// classPrefix is the CSS class prefix every rendered block div carries:
// "format-scene-header-1", "format-action", and so on.
const classPrefix = "format-"

// BlocksToHTML renders blocks into the editor's HTML fragment surface. An
// adjacent SceneHeader1 immediately followed by SceneHeader2 is wrapped into
// a single scene-header-top-line composite div so the editor can style the
// pair as one visual unit. Empty text renders as a bare line break.
func BlocksToHTML(blocks []Block) string {
	var b strings.Builder
	for i := 0; i < len(blocks); i++ {
		blk := blocks[i]
		if blk.FormatID == SceneHeader1 && i+1 < len(blocks) && blocks[i+1].FormatID == SceneHeader2 {
			b.WriteString(fmt.Sprintf(`<div class="%s%s">`, classPrefix, SceneHeaderTopLine))
			writeBlockDiv(&b, blocks[i])
			writeBlockDiv(&b, blocks[i+1])
			b.WriteString("</div>")
			i++
			continue
		}
		writeBlockDiv(&b, blk)
	}
	return b.String()
}

func writeBlockDiv(b *strings.Builder, blk Block) {
	fmt.Fprintf(b, `<div class="%s%s">`, classPrefix, blk.FormatID)
	if blk.Text == "" {
		b.WriteString("<br>")
	} else {
		b.WriteString(html.EscapeString(blk.Text))
	}
	b.WriteString("</div>")
}

// HTMLToBlocks parses the editor's HTML fragment surface back into blocks.
// A scene-header-top-line wrapper yields exactly two blocks, one per child
// div, in order. Any div whose text contains embedded newlines explodes
// into one block per non-empty line, all carrying that div's formatId. A
// class outside the known taxonomy is treated as action. Tags other than
// the known block divs are flattened and searched for block divs; text that
// sits outside every format-* div yields no block.
func HTMLToBlocks(fragment string) ([]Block, error) {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("document: parse html fragment: %w", err)
	}

	var out []Block
	for _, n := range nodes {
		out = append(out, walkNode(n)...)
	}
	return out, nil
}

// walkNode visits n looking for format-* divs. Non-div elements are
// flattened: their children are visited in place as if the wrapper weren't
// there. Text nodes reached outside any format-* div yield no block.
func walkNode(n *html.Node) []Block {
	if n.Type != html.ElementNode {
		return nil
	}
	if class, ok := formatClass(n); ok {
		if class == SceneHeaderTopLine {
			return walkWrapperChildren(n)
		}
		return blocksFromDiv(n, class)
	}
	var out []Block
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, walkNode(c)...)
	}
	return out
}

// walkWrapperChildren expects exactly the two scene-header child divs of a
// top-line wrapper and returns their blocks in order; any other child div
// found inside the wrapper is still honored using the general rule so a
// malformed wrapper never silently loses content.
func walkWrapperChildren(wrapper *html.Node) []Block {
	var out []Block
	for c := wrapper.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if class, ok := formatClass(c); ok && class != SceneHeaderTopLine {
			out = append(out, blocksFromDiv(c, class)...)
		}
	}
	return out
}

// blocksFromDiv renders one block div's text into one or more Blocks,
// splitting on embedded newlines.
func blocksFromDiv(n *html.Node, class FormatID) []Block {
	text := collectText(n)
	lines := strings.Split(text, "\n")
	var out []Block
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		out = append(out, Block{FormatID: class, Text: line})
	}
	if len(out) == 0 {
		out = append(out, Block{FormatID: class, Text: ""})
	}
	return out
}

// collectText concatenates all text node descendants of n, treating <br>
// elements as newlines.
func collectText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		switch node.Type {
		case html.TextNode:
			b.WriteString(node.Data)
		case html.ElementNode:
			if node.DataAtom == atom.Br {
				b.WriteString("\n")
				return
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// formatClass extracts the FormatID carried by a div's "format-*" class,
// defaulting any div with a class attribute but no known format- class to
// Action per the editor's forward-compatibility rule. Elements that are not
// divs, or divs with no class attribute at all, are not format nodes.
func formatClass(n *html.Node) (FormatID, bool) {
	if n.DataAtom != atom.Div {
		return "", false
	}
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, cls := range strings.Fields(attr.Val) {
			if !strings.HasPrefix(cls, classPrefix) {
				continue
			}
			id := FormatID(strings.TrimPrefix(cls, classPrefix))
			if id.Valid() {
				return id, true
			}
			return Action, true
		}
		return Action, true
	}
	return "", false
}
