// Package overlay maps operational status and path queries onto the visual
// state of nodes and links. It never reads or writes positions.
//
// Every operation tolerates ids that are not in the graph: status pushes and
// path queries race against topology reloads, so a miss is logged at debug
// level and otherwise ignored.
package overlay

import (
	"strings"

	"topomap/internal/domain"
	"topomap/internal/graph"
	"topomap/internal/logger"
)

func parse(status string) (domain.Status, bool) {
	if strings.TrimSpace(status) == "" {
		return "", false
	}
	return domain.ParseStatus(status)
}

// SetNodeStatus updates the status of a node. It reports whether the node
// was found and the status was valid.
func SetNodeStatus(m *graph.Model, id, status string) bool {
	s, ok := parse(status)
	if !ok {
		logger.Logger.Warnw("Ignoring invalid node status",
			logger.FieldNodeID, id,
			logger.FieldStatus, status)
		return false
	}
	node, err := m.FindNode(id)
	if err != nil {
		logger.Logger.Debugw("Status for unknown node", logger.FieldNodeID, id)
		return false
	}
	node.Status = s
	return true
}

// SetLinkStatus updates the status of the first link joining source and
// target, in either orientation.
func SetLinkStatus(m *graph.Model, source, target, status string) bool {
	s, ok := parse(status)
	if !ok {
		logger.Logger.Warnw("Ignoring invalid link status",
			logger.FieldSourceID, source,
			logger.FieldTargetID, target,
			logger.FieldStatus, status)
		return false
	}
	link, err := m.FindLink(source, target)
	if err != nil {
		logger.Logger.Debugw("Status for unknown link",
			logger.FieldSourceID, source,
			logger.FieldTargetID, target)
		return false
	}
	link.Status = s
	return true
}

// ClearHighlight removes every highlight mark
func ClearHighlight(m *graph.Model) {
	nodes := m.Nodes()
	for i := range nodes {
		nodes[i].Highlighted = false
	}
	links := m.Links()
	for i := range links {
		links[i].Highlighted = false
	}
}

// HighlightPath clears all marks, then marks each known node of ids and
// every link joining two consecutive ids, in either orientation. Unknown
// ids are skipped; the path continues with the next id. It returns the
// number of nodes and links marked.
func HighlightPath(m *graph.Model, ids []string) (nodes, links int) {
	ClearHighlight(m)

	for _, id := range ids {
		node, err := m.FindNode(id)
		if err != nil {
			logger.Logger.Debugw("Skipping unknown node in path", logger.FieldNodeID, id)
			continue
		}
		if !node.Highlighted {
			node.Highlighted = true
			nodes++
		}
	}

	all := m.Links()
	for i := 1; i < len(ids); i++ {
		a, b := ids[i-1], ids[i]
		for k := range all {
			if all[k].Connects(a, b) && !all[k].Highlighted {
				all[k].Highlighted = true
				links++
			}
		}
	}
	return nodes, links
}

// Highlighted returns the ids of highlighted nodes and links
func Highlighted(m *graph.Model) (nodeIDs, linkIDs []string) {
	for _, n := range m.Nodes() {
		if n.Highlighted {
			nodeIDs = append(nodeIDs, n.ID)
		}
	}
	for _, l := range m.Links() {
		if l.Highlighted {
			linkIDs = append(linkIDs, l.ID())
		}
	}
	return nodeIDs, linkIDs
}
