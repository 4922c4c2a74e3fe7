package html_util

import (
	"bufio"
	"strings"

	"golang.org/x/net/html"
)

func GetNodeAttr(node *html.Node, attrName string) *html.Attribute {
	var result *html.Attribute

	for i := range node.Attr {
		attr := &node.Attr[i]
		if attr.Key == attrName {
			result = attr
			break
		}
	}

	return result
}

// GetNodeAttrVal returns value of specified attribute. If such attribute cannot
// be found, this function will return `defaultValue` instead.
func GetNodeAttrVal(node *html.Node, attrName string, defaultValue string) (string, bool) {
	if attr := GetNodeAttr(node, attrName); attr != nil {
		return attr.Val, true
	} else {
		return defaultValue, false
	}
}

// SetNodeAttr updates value of specified attribute, adding a new attribute
// entry when the node carries no attribute of that name yet.
func SetNodeAttr(node *html.Node, attrName string, value string) {
	if attr := GetNodeAttr(node, attrName); attr != nil {
		attr.Val = value
		return
	}

	node.Attr = append(node.Attr, html.Attribute{Key: attrName, Val: value})
}

func RemoveNodeAttr(node *html.Node, attrName string) {
	for i := range node.Attr {
		if node.Attr[i].Key == attrName {
			node.Attr = append(node.Attr[:i], node.Attr[i+1:]...)
			return
		}
	}
}

// CheckHasClass reports whether `class` attribute of a node contains the given
// name as one of its whitespace separated entries.
func CheckHasClass(node *html.Node, name string) bool {
	classStr, ok := GetNodeAttrVal(node, "class", "")
	if !ok {
		return false
	}

	scan := bufio.NewScanner(strings.NewReader(classStr))
	scan.Split(bufio.ScanWords)

	for scan.Scan() {
		if scan.Text() == name {
			return true
		}
	}

	return false
}

// CheckIsDisplayNone reports whether a node is hidden through an inline
// `display: none` style, the way typesetting engines hide assistive copies
// of rendered output.
func CheckIsDisplayNone(node *html.Node) bool {
	style := GetNodeAttr(node, "style")
	if style == nil {
		return false
	}

	isDisplayNone := false
	statements := strings.Split(style.Val, ";")
	for _, statement := range statements {
		parts := strings.SplitN(statement, ":", 2)
		if len(parts) != 2 {
			continue
		} else if strings.TrimSpace(strings.ToLower(parts[0])) != "display" {
			continue
		} else {
			isDisplayNone = strings.TrimSpace(parts[1]) == "none"
		}
	}

	return isDisplayNone
}

// FindHTMLTag looks up the first element with given tag name under `root` in
// pre-order. Tag name is matched against node data, so that foreign elements
// such as MathML tags, which have no atom value, can be found too.
func FindHTMLTag(root *html.Node, tagName string) *html.Node {
	if root.Type == html.ElementNode && root.Data == tagName {
		return root
	}

	var result *html.Node
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		result = FindHTMLTag(child, tagName)
		if result != nil {
			break
		}
	}

	return result
}

type NodeMatchArgs struct {
	Type  map[html.NodeType]bool
	Tag   map[string]bool // a list of allowed tag names, matched against node data
	Class map[string]bool // node should contain specified classes
	Attr  map[string]bool // node should have specified attributes

	MatchFunc func(*html.Node, *NodeMatchArgs) bool // custom matching function to use in addition to tag meta data rules.
	SkipFunc  func(*html.Node) bool                 // subtrees rooted at a matching node are excluded from traversal entirely.
}

func CheckNodeIsMatch(node *html.Node, args *NodeMatchArgs) bool {
	if args.Type != nil {
		if _, ok := args.Type[node.Type]; !ok {
			return false
		}
	}

	if args.Tag != nil {
		if _, ok := args.Tag[node.Data]; !ok {
			return false
		}
	}

	if args.Class != nil {
		for k := range args.Class {
			if !CheckHasClass(node, k) {
				return false
			}
		}
	}

	if args.Attr != nil {
		attrSet := map[string]bool{}
		for _, attr := range node.Attr {
			attrSet[attr.Key] = true
		}

		for name := range args.Attr {
			if !attrSet[name] {
				return false
			}
		}
	}

	if args.MatchFunc != nil {
		if !args.MatchFunc(node, args) {
			return false
		}
	}

	return true
}

// CollectMatchingNodes gathers all nodes matching given arguments in document
// order, that is pre-order of the tree. Children of a matching node are not
// visited, neither is any subtree rejected by `args.SkipFunc`.
func CollectMatchingNodes(root *html.Node, args *NodeMatchArgs) []*html.Node {
	var matches []*html.Node

	var walk func(node *html.Node)
	walk = func(node *html.Node) {
		if args.SkipFunc != nil && args.SkipFunc(node) {
			return
		}

		if CheckNodeIsMatch(node, args) {
			matches = append(matches, node)
			return
		}

		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)

	return matches
}

// CloneTree makes a deep copy of a subtree. Parent and sibling pointers of the
// copied root are left empty.
func CloneTree(node *html.Node) *html.Node {
	cloned := &html.Node{
		Type:      node.Type,
		DataAtom:  node.DataAtom,
		Data:      node.Data,
		Namespace: node.Namespace,
	}

	if len(node.Attr) > 0 {
		cloned.Attr = make([]html.Attribute, len(node.Attr))
		copy(cloned.Attr, node.Attr)
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		cloned.AppendChild(CloneTree(child))
	}

	return cloned
}

// DetachNode removes a node from its parent. Nodes without parent are left
// untouched.
func DetachNode(node *html.Node) {
	if node.Parent != nil {
		node.Parent.RemoveChild(node)
	}
}

// ReplaceWithRaw swaps a node's whole subtree for a raw text node, which gets
// rendered verbatim with no entity escaping applied.
func ReplaceWithRaw(node *html.Node, payload string) {
	parent := node.Parent
	if parent == nil {
		return
	}

	raw := &html.Node{
		Type: html.RawNode,
		Data: payload,
	}

	parent.InsertBefore(raw, node)
	parent.RemoveChild(node)
}

// ExtractText extracts all text node content under given node as a slice.
func ExtractText(node *html.Node) []string {
	content := []string{}

	child := node.FirstChild
	for child != nil {
		if child.FirstChild != nil {
			child = child.FirstChild
			continue
		}

		if child.Type == html.TextNode {
			content = append(content, child.Data)
		}

		if child.NextSibling != nil {
			child = child.NextSibling
		} else {
			parent := child.Parent
			child = nil

			for parent != nil && parent != node {
				if parent.NextSibling != nil {
					child = parent.NextSibling
					break
				}

				parent = parent.Parent
			}
		}
	}

	return content
}
