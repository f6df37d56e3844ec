package models

import (
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BuildQuestionTree assembles the stored flat question list of one topic into
// nested trees, ordered by Order at every level.
// #DATA_ASSUMPTION: Each question has at most one parent, so a node reachable from a root is never part of a cycle
// #BUSINESS_RULE: Dangling parents, cross-topic parents, self references and cycles are rejected with ErrMalformedTree
func BuildQuestionTree(topicID primitive.ObjectID, flat []Question) ([]Question, error) {
	byID := make(map[primitive.ObjectID]*Question, len(flat))
	for i := range flat {
		q := &flat[i]
		if q.TopicID != topicID {
			return nil, fmt.Errorf("%w: question %s belongs to topic %s", ErrMalformedTree, q.ID.Hex(), q.TopicID.Hex())
		}
		if _, dup := byID[q.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate question %s", ErrMalformedTree, q.ID.Hex())
		}
		byID[q.ID] = q
	}

	children := make(map[primitive.ObjectID][]*Question, len(flat))
	var roots []*Question
	for i := range flat {
		q := &flat[i]
		if q.ParentQuestionID == nil {
			roots = append(roots, q)
			continue
		}
		parentID := *q.ParentQuestionID
		if parentID == q.ID {
			return nil, fmt.Errorf("%w: question %s is its own parent", ErrMalformedTree, q.ID.Hex())
		}
		if _, ok := byID[parentID]; !ok {
			return nil, fmt.Errorf("%w: question %s references missing parent %s", ErrMalformedTree, q.ID.Hex(), parentID.Hex())
		}
		children[parentID] = append(children[parentID], q)
	}

	visited := 0
	var assemble func(nodes []*Question) []Question
	assemble = func(nodes []*Question) []Question {
		sortByOrder(nodes)
		out := make([]Question, 0, len(nodes))
		for _, n := range nodes {
			visited++
			node := *n
			node.Subquestions = assemble(children[n.ID])
			out = append(out, node)
		}
		return out
	}
	tree := assemble(roots)

	if visited != len(flat) {
		return nil, fmt.Errorf("%w: %d question(s) are part of a parent cycle", ErrMalformedTree, len(flat)-visited)
	}
	return tree, nil
}

// FlattenQuestionTree returns every node of a tree in pre-order, with
// ParentQuestionID set from the nesting and Subquestions cleared.
func FlattenQuestionTree(tree []Question) []Question {
	var out []Question
	var walk func(nodes []Question, parent *primitive.ObjectID)
	walk = func(nodes []Question, parent *primitive.ObjectID) {
		for _, n := range nodes {
			node := n
			node.ParentQuestionID = parent
			node.Subquestions = nil
			out = append(out, node)
			id := n.ID
			walk(n.Subquestions, &id)
		}
	}
	walk(tree, nil)
	return out
}

// FindQuestion searches a tree for a question and returns it with its parent
func FindQuestion(tree []Question, id primitive.ObjectID) (question, parent *Question) {
	var search func(nodes []Question, p *Question) (*Question, *Question)
	search = func(nodes []Question, p *Question) (*Question, *Question) {
		for i := range nodes {
			if nodes[i].ID == id {
				return &nodes[i], p
			}
			if q, qp := search(nodes[i].Subquestions, &nodes[i]); q != nil {
				return q, qp
			}
		}
		return nil, nil
	}
	return search(tree, nil)
}

// CountQuestions returns the number of nodes in a tree
func CountQuestions(tree []Question) int {
	n := 0
	for i := range tree {
		n += 1 + CountQuestions(tree[i].Subquestions)
	}
	return n
}

func sortByOrder(nodes []*Question) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Order != nodes[j].Order {
			return nodes[i].Order < nodes[j].Order
		}
		return nodes[i].ID.Hex() < nodes[j].ID.Hex()
	})
}
