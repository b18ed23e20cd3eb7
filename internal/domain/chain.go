package domain

import "sort"

// ChainTopology synthesizes links for an element inventory that carries no
// connection data. Elements are chained in record order within each domain,
// then the last element of each domain is joined to the first element of the
// next domain in DomainOrder (unknown domains sort last, by name).
func ChainTopology(elements []NodeRecord) *Topology {
	topo := NewTopology()
	byDomain := make(map[string][]NodeRecord)
	var domains []string

	for _, e := range elements {
		topo.AddNode(e)
		if _, seen := byDomain[e.Domain]; !seen {
			domains = append(domains, e.Domain)
		}
		byDomain[e.Domain] = append(byDomain[e.Domain], e)
	}

	sort.SliceStable(domains, func(i, j int) bool {
		ri, rj := NetworkDomain(domains[i]).Rank(), NetworkDomain(domains[j]).Rank()
		if ri != rj {
			return ri < rj
		}
		return domains[i] < domains[j]
	})

	for _, d := range domains {
		members := byDomain[d]
		for i := 0; i+1 < len(members); i++ {
			topo.AddLink(LinkRecord{Source: members[i].ID, Target: members[i+1].ID})
		}
	}

	for i := 0; i+1 < len(domains); i++ {
		from := byDomain[domains[i]]
		to := byDomain[domains[i+1]]
		topo.AddLink(LinkRecord{Source: from[len(from)-1].ID, Target: to[0].ID})
	}

	return topo
}
