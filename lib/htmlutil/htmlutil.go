package htmlutil

import (
	"bytes"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"covidwatch-backend/lib/textutil"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText renders a node's text the way it reads on the page:
// non-printable runes removed, whitespace collapsed, ends trimmed.
func CleanText(node *html.Node) string {
	text := removeNonPrintable(GetText(node))
	return textutil.CollapseWhitespace(text)
}

// RowCells returns the cleaned text of every <td> in a table row,
// in document order.
func RowCells(row *goquery.Selection) []string {
	var cells []string
	row.Find("td").Each(func(_ int, cell *goquery.Selection) {
		if len(cell.Nodes) == 0 {
			return
		}
		cells = append(cells, CleanText(cell.Nodes[0]))
	})
	return cells
}
