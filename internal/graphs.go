// This file contains thin wrappers around the graph module
// for the graph structures of the prediction and the standings.
package internal

import (
	"context"
	"errors"

	"github.com/dominikbraun/graph"
)

type GraphNode interface {
	// A unique key that is used as the node hash
	Key() string
}

func getNodeKey[T GraphNode](node T) string {
	return node.Key()
}

// A MergeGraph has the scenarios of one compaction pass as its
// nodes. An undirected edge connects two scenarios that are
// about the same matches and differ in exactly one winner.
// The index of that result is stored as the edge data.
type MergeGraph struct {
	graph.Graph[string, *Scenario]
	scenarios []*Scenario
}

func NewMergeGraph(scenarios []*Scenario) *MergeGraph {
	g := &MergeGraph{
		Graph:     graph.New(getNodeKey[*Scenario]),
		scenarios: scenarios,
	}
	for _, s := range scenarios {
		// Duplicates are ignored, the scenarios form a set
		_ = g.AddVertex(s)
	}
	return g
}

// Adds an edge between every mergeable pair of scenarios.
//
// Instead of comparing all pairs each scenario looks up the
// scenarios that have one of its winners flipped.
func (g *MergeGraph) Connect(ctx context.Context) error {
	for i, s := range g.scenarios {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		key := s.Key()
		for r := range s.results {
			flippedKey := s.Flipped(r).Key()
			if flippedKey < key {
				// The pair is connected from the other side
				continue
			}
			if _, err := g.Vertex(flippedKey); err != nil {
				continue
			}
			err := g.AddEdge(key, flippedKey, graph.EdgeData(r))
			if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
				return err
			}
		}
	}
	return nil
}

// Returns one merged scenario per edge
func (g *MergeGraph) Merged() ([]*Scenario, error) {
	edges, err := g.Edges()
	if err != nil {
		return nil, err
	}

	merged := make([]*Scenario, 0, len(edges))
	for _, e := range edges {
		source, err := g.Vertex(e.Source)
		if err != nil {
			return nil, err
		}
		diff := e.Properties.Data.(int)
		merged = append(merged, source.Without(diff))
	}
	return merged, nil
}

// Returns the keys of all scenarios that have at least one edge
func (g *MergeGraph) Consumed() ([]string, error) {
	adjacencyMap, err := g.AdjacencyMap()
	if err != nil {
		return nil, err
	}

	consumed := make([]string, 0, len(adjacencyMap))
	for key, neighbours := range adjacencyMap {
		if len(neighbours) > 0 {
			consumed = append(consumed, key)
		}
	}
	return consumed, nil
}

// A ResultGraph records the direct encounters between teams.
// A directed edge goes from the winner to the loser and its
// weight is the number of times the winner beat the loser.
type ResultGraph struct {
	graph.Graph[string, string]
}

func NewResultGraph(teams []string) *ResultGraph {
	g := &ResultGraph{
		Graph: graph.New(graph.StringHash, graph.Directed(), graph.Weighted()),
	}
	for _, t := range teams {
		_ = g.AddVertex(t)
	}
	return g
}

// Counts one more win of winner over loser
func (g *ResultGraph) AddResult(winner, loser string) error {
	edge, err := g.Edge(winner, loser)
	if errors.Is(err, graph.ErrEdgeNotFound) {
		return g.AddEdge(winner, loser, graph.EdgeWeight(1))
	}
	if err != nil {
		return err
	}
	return g.UpdateEdge(winner, loser, graph.EdgeWeight(edge.Properties.Weight+1))
}

// Returns how often winner beat loser
func (g *ResultGraph) Wins(winner, loser string) int {
	edge, err := g.Edge(winner, loser)
	if err != nil {
		return 0
	}
	return edge.Properties.Weight
}
