package htmlutil

import (
	"bytes"

	"golang.org/x/net/html"
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

func IsElement(node *html.Node, tag string) bool {
	return node != nil && node.Type == html.ElementNode && node.Data == tag
}

// NextMatch returns the first node strictly after start in document
// order for which match returns true, or nil. This is the typed
// replacement for "find the next <table> somewhere after this marker"
// lookups, which the clerk markup relies on heavily.
func NextMatch(start *html.Node, match func(*html.Node) bool) *html.Node {
	for node := successor(start); node != nil; node = successor(node) {
		if match(node) {
			return node
		}
	}
	return nil
}

// NextSiblingMatch returns the first following sibling of start
// matching match, skipping text and comment nodes along the way.
func NextSiblingMatch(start *html.Node, match func(*html.Node) bool) *html.Node {
	for node := start.NextSibling; node != nil; node = node.NextSibling {
		if match(node) {
			return node
		}
	}
	return nil
}

// preorder successor over the whole document.
func successor(node *html.Node) *html.Node {
	if node.FirstChild != nil {
		return node.FirstChild
	}
	for node != nil {
		if node.NextSibling != nil {
			return node.NextSibling
		}
		node = node.Parent
	}
	return nil
}
