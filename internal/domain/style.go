package domain

import "strings"

// Rendering constants shared by every surface that draws a frame
const (
	NodeRadius       = 8.0
	LabelOffsetY     = -12.0
	ArrowRefX        = 15.0
	DefaultNodeColor = "#999"
)

var nodeTypeColors = map[NodeType]string{
	NodeTypeCellTower: "#3498db",
	NodeTypeRouter:    "#2ecc71",
	NodeTypeSwitch:    "#e67e22",
	NodeTypeServer:    "#9b59b6",
	NodeTypeGateway:   "#f1c40f",
}

var nodeTypeIcons = map[NodeType]string{
	NodeTypeCellTower: "fa-broadcast-tower",
	NodeTypeRouter:    "fa-router",
	NodeTypeSwitch:    "fa-network-wired",
	NodeTypeServer:    "fa-server",
	NodeTypeGateway:   "fa-door-open",
}

var domainColors = map[NetworkDomain]string{
	DomainRAN:       "#3498db",
	DomainTransport: "#2ecc71",
	DomainCore:      "#9b59b6",
	DomainInternet:  "#e67e22",
}

// Color returns the fill color for a node type
func (t NodeType) Color() string {
	if c, ok := nodeTypeColors[t]; ok {
		return c
	}
	return DefaultNodeColor
}

// Icon returns the icon name for a node type
func (t NodeType) Icon() string {
	return nodeTypeIcons[t]
}

// Color returns the legend color for a network domain
func (d NetworkDomain) Color() string {
	if c, ok := domainColors[d]; ok {
		return c
	}
	return DefaultNodeColor
}

// NodeClass returns the CSS class a renderer applies for a node status
func (s Status) NodeClass() string {
	return "node-status-" + string(s)
}

// LinkClass returns the CSS class a renderer applies for a link status
func (s Status) LinkClass() string {
	return "link link-status-" + string(s)
}

// LegendEntry is one row of the diagram legend
type LegendEntry struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// Legend lists domain colors and node type colors in display order
type Legend struct {
	Domains   []LegendEntry `json:"domains"`
	NodeTypes []LegendEntry `json:"node_types"`
}

// NewLegend builds the standard legend
func NewLegend() Legend {
	legend := Legend{}
	for _, d := range DomainOrder {
		legend.Domains = append(legend.Domains, LegendEntry{
			Key:   string(d),
			Label: strings.ToUpper(string(d)),
			Color: d.Color(),
		})
	}
	for _, t := range []NodeType{NodeTypeCellTower, NodeTypeRouter, NodeTypeSwitch, NodeTypeServer, NodeTypeGateway} {
		legend.NodeTypes = append(legend.NodeTypes, LegendEntry{
			Key:   string(t),
			Label: strings.Replace(string(t), "_", " ", 1),
			Color: t.Color(),
		})
	}
	return legend
}
