package matcher

import (
	"fmt"
	"strings"
)

type (
	//Matchable represents a URI matchable within a namespace i.e. HTTP method
	Matchable interface {
		URI() string
		Namespaces() []string
	}

	//Matcher represents a segment trie based URI matcher
	Matcher struct {
		matchables []Matchable
		roots      map[string]*node
	}

	node struct {
		children map[string]*node
		wildcard *node
		matched  []int
	}
)

func newNode() *node {
	return &node{children: map[string]*node{}}
}

func (n *node) add(index int, uri string) {
	if uri == "" {
		n.matched = append(n.matched, index)
		return
	}
	segment, remaining := splitSegment(uri)
	child, ok := n.children[segment]
	if segment != "" && (segment[0] == '{' || segment == "*") {
		if n.wildcard == nil {
			n.wildcard = newNode()
		}
		child = n.wildcard
	} else if !ok {
		child = newNode()
		n.children[segment] = child
	}
	child.add(index, remaining)
}

func (n *node) match(uri string) *node {
	if uri == "" {
		return n
	}
	segment, remaining := splitSegment(uri)
	if child, ok := n.children[segment]; ok {
		if matched := child.match(remaining); matched != nil && len(matched.matched) > 0 {
			return matched
		}
	}
	if n.wildcard != nil {
		return n.wildcard.match(remaining)
	}
	return nil
}

//MatchOne returns a single matchable for supplied namespace and URI,
//matching is case sensitive and a trailing slash is never normalized
func (m *Matcher) MatchOne(namespace, URI string) (Matchable, error) {
	if strings.HasSuffix(trimQuery(URI), "/") {
		return nil, m.unmatchedErr(URI)
	}
	root, ok := m.roots[namespace]
	if !ok {
		return nil, m.unmatchedErr(URI)
	}
	matched := root.match(asRelative(URI))
	if matched == nil || len(matched.matched) == 0 {
		return nil, m.unmatchedErr(URI)
	}
	if len(matched.matched) > 1 {
		return nil, fmt.Errorf("matched more than one route for %v", URI)
	}
	return m.matchables[matched.matched[0]], nil
}

func (m *Matcher) unmatchedErr(URI string) error {
	return fmt.Errorf("couldn't match URI %v", URI)
}

func splitSegment(uri string) (string, string) {
	if index := strings.IndexByte(uri, '/'); index != -1 {
		return uri[:index], uri[index+1:]
	}
	return uri, ""
}

func trimQuery(route string) string {
	if index := strings.IndexByte(route, '?'); index != -1 {
		return route[:index]
	}
	return route
}

func asRelative(route string) string {
	route = trimQuery(route)
	var i int
	for ; i < len(route) && route[i] == '/'; i++ {
	}
	return route[i:]
}

//New creates a matcher
func New(matchables []Matchable) *Matcher {
	result := &Matcher{
		matchables: matchables,
		roots:      map[string]*node{},
	}
	for i, matchable := range matchables {
		uri := asRelative(matchable.URI())
		for _, namespace := range matchable.Namespaces() {
			root, ok := result.roots[namespace]
			if !ok {
				root = newNode()
				result.roots[namespace] = root
			}
			root.add(i, uri)
		}
	}
	return result
}
