package domain

// FallbackTopology returns the sample network substituted when the initial
// topology load fails: three cell towers feeding an edge router, two transport
// switches, a core router, an application server and an internet gateway.
// The result is freshly allocated on every call.
func FallbackTopology() *Topology {
	return &Topology{
		Nodes: []NodeRecord{
			{ID: "ct1", Name: "Cell Tower A1", Type: string(NodeTypeCellTower), Domain: string(DomainRAN), Status: string(StatusHealthy)},
			{ID: "ct2", Name: "Cell Tower A2", Type: string(NodeTypeCellTower), Domain: string(DomainRAN), Status: string(StatusWarning)},
			{ID: "ct3", Name: "Cell Tower B1", Type: string(NodeTypeCellTower), Domain: string(DomainRAN), Status: string(StatusCritical)},
			{ID: "r1", Name: "Edge Router 1", Type: string(NodeTypeRouter), Domain: string(DomainTransport), Status: string(StatusHealthy)},
			{ID: "r2", Name: "Core Router 1", Type: string(NodeTypeRouter), Domain: string(DomainCore), Status: string(StatusHealthy)},
			{ID: "sw1", Name: "Switch 1", Type: string(NodeTypeSwitch), Domain: string(DomainTransport), Status: string(StatusHealthy)},
			{ID: "sw2", Name: "Switch 2", Type: string(NodeTypeSwitch), Domain: string(DomainTransport), Status: string(StatusWarning)},
			{ID: "s1", Name: "Application Server", Type: string(NodeTypeServer), Domain: string(DomainCore), Status: string(StatusHealthy)},
			{ID: "gw1", Name: "Internet Gateway", Type: string(NodeTypeGateway), Domain: string(DomainInternet), Status: string(StatusHealthy)},
		},
		Links: []LinkRecord{
			{Source: "ct1", Target: "r1", Status: string(StatusHealthy)},
			{Source: "ct2", Target: "r1", Status: string(StatusHealthy)},
			{Source: "ct3", Target: "r1", Status: string(StatusCritical)},
			{Source: "r1", Target: "sw1", Status: string(StatusHealthy)},
			{Source: "r1", Target: "sw2", Status: string(StatusWarning)},
			{Source: "sw1", Target: "r2", Status: string(StatusHealthy)},
			{Source: "sw2", Target: "r2", Status: string(StatusWarning)},
			{Source: "r2", Target: "s1", Status: string(StatusHealthy)},
			{Source: "r2", Target: "gw1", Status: string(StatusHealthy)},
		},
	}
}
