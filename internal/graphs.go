// This file contains thin wrappers around the graph module
// for managing graph structures in the tournament data.
package internal

import (
	"iter"
	"maps"
	"slices"

	"github.com/dominikbraun/graph"
)

type GraphNode interface {
	// A unique ID that is used as the node hash
	Id() int
}

func getNodeId[T GraphNode](node T) int {
	return node.Id()
}

// The path a team takes from one match to the next
const (
	PathWinner = "winner"
	PathLoser  = "loser"
)

const pathAttribute = "path"

type DependencyGraph[T GraphNode] struct {
	graph.Graph[int, T]
}

// Adds the nodes when they are missing and connects them.
// The path is stored as an edge attribute.
func (g *DependencyGraph[T]) Link(source, target T, path string) error {
	for _, node := range []T{source, target} {
		err := g.Graph.AddVertex(node)
		if err != nil && err != graph.ErrVertexAlreadyExists {
			return err
		}
	}

	err := g.Graph.AddEdge(source.Id(), target.Id(), graph.EdgeAttribute(pathAttribute, path))
	if err == graph.ErrEdgeAlreadyExists {
		return nil
	}
	return err
}

func (g *DependencyGraph[T]) BreadthSearchIter(start T) iter.Seq2[T, int] {
	iterator := func(yield func(v T, depth int) bool) {
		visitor := func(key, depth int) bool {
			v, _ := g.Vertex(key)
			return !yield(v, depth)
		}
		graph.BFSWithDepth(g.Graph, start.Id(), visitor)
	}
	return iterator
}

// Returns the nodes that are on the outgoing edges of the given
// source node (the dependants) and the path of each edge.
func (g *DependencyGraph[T]) GetDependants(source T) ([]T, []string) {
	// The bracket grows round by round so the map is not cached
	adjacencyMap, err := g.Graph.AdjacencyMap()
	if err != nil {
		return nil, nil
	}
	return g.collect(adjacencyMap[source.Id()], true)
}

// Returns the nodes that are on the incoming edges of the given
// target node (the dependencies) and the path of each edge.
func (g *DependencyGraph[T]) GetDependencies(target T) ([]T, []string) {
	predecessorMap, err := g.Graph.PredecessorMap()
	if err != nil {
		return nil, nil
	}
	return g.collect(predecessorMap[target.Id()], false)
}

func (g *DependencyGraph[T]) collect(edges map[int]graph.Edge[int], outgoing bool) ([]T, []string) {
	keys := slices.Sorted(maps.Keys(edges))

	nodes := make([]T, 0, len(edges))
	paths := make([]string, 0, len(edges))
	for _, k := range keys {
		e := edges[k]
		key := e.Target
		if !outgoing {
			key = e.Source
		}
		node, err := g.Vertex(key)
		if err != nil {
			continue
		}
		nodes = append(nodes, node)
		paths = append(paths, e.Properties.Attributes[pathAttribute])
	}
	return nodes, paths
}

// The EliminationGraph has all matches of the bracket as its
// nodes. The edges between the nodes model the path that the
// teams take towards the final like a conventional tournament
// tree. Semifinal losers reach the 3rd place match on a loser edge.
type EliminationGraph struct {
	DependencyGraph[*Match]
}

func NewEliminationGraph() *EliminationGraph {
	dependencyGraph := DependencyGraph[*Match]{
		Graph: graph.New(getNodeId[*Match], graph.Directed(), graph.Acyclic()),
	}
	return &EliminationGraph{DependencyGraph: dependencyGraph}
}
